package bus

import (
	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/packet"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// RequestCanCreateUser asks whether the account may create another
// character.
type RequestCanCreateUser struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CCanCreateUser
}

func (m RequestCanCreateUser) Target() Target { return TargetGlobal }
func (m RequestCanCreateUser) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestCanCreateUser) Opcode() opcode.Opcode   { return opcode.CCanCreateUser }
func (m RequestCanCreateUser) WirePacket() interface{} { return m.Packet }

// RequestChangeUserLobbySlotID reorders a batch of characters on the
// selection screen.
type RequestChangeUserLobbySlotID struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CChangeUserLobbySlotID
}

func (m RequestChangeUserLobbySlotID) Target() Target { return TargetGlobal }
func (m RequestChangeUserLobbySlotID) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestChangeUserLobbySlotID) Opcode() opcode.Opcode   { return opcode.CChangeUserLobbySlotID }
func (m RequestChangeUserLobbySlotID) WirePacket() interface{} { return m.Packet }

// RequestCheckUserName asks whether a proposed character name is free.
type RequestCheckUserName struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CCheckUserName
}

func (m RequestCheckUserName) Target() Target { return TargetGlobal }
func (m RequestCheckUserName) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestCheckUserName) Opcode() opcode.Opcode   { return opcode.CCheckUserName }
func (m RequestCheckUserName) WirePacket() interface{} { return m.Packet }

// RequestCreateUser requests creation of a new character.
type RequestCreateUser struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CCreateUser
}

func (m RequestCreateUser) Target() Target { return TargetGlobal }
func (m RequestCreateUser) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestCreateUser) Opcode() opcode.Opcode   { return opcode.CCreateUser }
func (m RequestCreateUser) WirePacket() interface{} { return m.Packet }

// RequestDeleteUser requests deletion of a character.
type RequestDeleteUser struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CDeleteUser
}

func (m RequestDeleteUser) Target() Target { return TargetGlobal }
func (m RequestDeleteUser) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestDeleteUser) Opcode() opcode.Opcode   { return opcode.CDeleteUser }
func (m RequestDeleteUser) WirePacket() interface{} { return m.Packet }

// RequestGetUserList requests the account's character list.
type RequestGetUserList struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CGetUserList
}

func (m RequestGetUserList) Target() Target { return TargetGlobal }
func (m RequestGetUserList) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestGetUserList) Opcode() opcode.Opcode   { return opcode.CGetUserList }
func (m RequestGetUserList) WirePacket() interface{} { return m.Packet }

// RequestSetVisibleRange configures the client's view distance.
type RequestSetVisibleRange struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CSetVisibleRange
}

func (m RequestSetVisibleRange) Target() Target { return TargetGlobal }
func (m RequestSetVisibleRange) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestSetVisibleRange) Opcode() opcode.Opcode   { return opcode.CSetVisibleRange }
func (m RequestSetVisibleRange) WirePacket() interface{} { return m.Packet }

// RequestSelectUser requests entry into the world as the given character.
type RequestSelectUser struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.CSelectUser
}

func (m RequestSelectUser) Target() Target { return TargetGlobal }
func (m RequestSelectUser) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestSelectUser) Opcode() opcode.Opcode   { return opcode.CSelectUser }
func (m RequestSelectUser) WirePacket() interface{} { return m.Packet }

// ResponseLoginArbiter answers CLoginArbiter.
type ResponseLoginArbiter struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	Packet                  packet.SLoginArbiter
}

func (m ResponseLoginArbiter) Target() Target { return TargetConnection }
func (m ResponseLoginArbiter) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseLoginArbiter) Opcode() opcode.Opcode   { return opcode.SLoginArbiter }
func (m ResponseLoginArbiter) WirePacket() interface{} { return m.Packet }
