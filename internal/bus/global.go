package bus

import (
	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/packet"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// RequestLoginArbiter authenticates a connection. No account/user
// credentials are required yet, since this message establishes them.
type RequestLoginArbiter struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.CLoginArbiter
}

func (m RequestLoginArbiter) Target() Target { return TargetGlobal }
func (m RequestLoginArbiter) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestLoginArbiter) Opcode() opcode.Opcode   { return opcode.CLoginArbiter }
func (m RequestLoginArbiter) WirePacket() interface{} { return m.Packet }

// RequestCheckVersion carries the client's reported module versions.
type RequestCheckVersion struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.CCheckVersion
}

func (m RequestCheckVersion) Target() Target { return TargetGlobal }
func (m RequestCheckVersion) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestCheckVersion) Opcode() opcode.Opcode   { return opcode.CCheckVersion }
func (m RequestCheckVersion) WirePacket() interface{} { return m.Packet }

// RequestPong answers a server ping.
type RequestPong struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.CPong
}

func (m RequestPong) Target() Target { return TargetGlobal }
func (m RequestPong) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m RequestPong) Opcode() opcode.Opcode   { return opcode.CPong }
func (m RequestPong) WirePacket() interface{} { return m.Packet }

// ResponseCanCreateUser answers RequestCanCreateUser.
type ResponseCanCreateUser struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SCanCreateUser
}

func (m ResponseCanCreateUser) Target() Target { return TargetConnection }
func (m ResponseCanCreateUser) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseCanCreateUser) Opcode() opcode.Opcode   { return opcode.SCanCreateUser }
func (m ResponseCanCreateUser) WirePacket() interface{} { return m.Packet }

// ResponseCheckUserName answers RequestCheckUserName.
type ResponseCheckUserName struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SCheckUserName
}

func (m ResponseCheckUserName) Target() Target { return TargetConnection }
func (m ResponseCheckUserName) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseCheckUserName) Opcode() opcode.Opcode   { return opcode.SCheckUserName }
func (m ResponseCheckUserName) WirePacket() interface{} { return m.Packet }

// ResponseCheckVersion answers RequestCheckVersion.
type ResponseCheckVersion struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SCheckVersion
}

func (m ResponseCheckVersion) Target() Target { return TargetConnection }
func (m ResponseCheckVersion) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseCheckVersion) Opcode() opcode.Opcode   { return opcode.SCheckVersion }
func (m ResponseCheckVersion) WirePacket() interface{} { return m.Packet }

// ResponseCreateUser answers RequestCreateUser.
type ResponseCreateUser struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SCreateUser
}

func (m ResponseCreateUser) Target() Target { return TargetConnection }
func (m ResponseCreateUser) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseCreateUser) Opcode() opcode.Opcode   { return opcode.SCreateUser }
func (m ResponseCreateUser) WirePacket() interface{} { return m.Packet }

// ResponseDeleteUser answers RequestDeleteUser.
type ResponseDeleteUser struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SDeleteUser
}

func (m ResponseDeleteUser) Target() Target { return TargetConnection }
func (m ResponseDeleteUser) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseDeleteUser) Opcode() opcode.Opcode   { return opcode.SDeleteUser }
func (m ResponseDeleteUser) WirePacket() interface{} { return m.Packet }

// ResponseGetUserList answers RequestGetUserList.
type ResponseGetUserList struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SGetUserList
}

func (m ResponseGetUserList) Target() Target { return TargetConnection }
func (m ResponseGetUserList) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseGetUserList) Opcode() opcode.Opcode   { return opcode.SGetUserList }
func (m ResponseGetUserList) WirePacket() interface{} { return m.Packet }

// ResponseLoadHint carries the loading hint sent after ResponseLoadTopo.
type ResponseLoadHint struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SLoadHint
}

func (m ResponseLoadHint) Target() Target { return TargetConnection }
func (m ResponseLoadHint) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseLoadHint) Opcode() opcode.Opcode   { return opcode.SLoadHint }
func (m ResponseLoadHint) WirePacket() interface{} { return m.Packet }

// ResponseLoadTopo tells the client which zone to load.
type ResponseLoadTopo struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SLoadTopo
}

func (m ResponseLoadTopo) Target() Target { return TargetConnection }
func (m ResponseLoadTopo) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseLoadTopo) Opcode() opcode.Opcode   { return opcode.SLoadTopo }
func (m ResponseLoadTopo) WirePacket() interface{} { return m.Packet }

// ResponseLoadingScreenControlInfo enables or disables the custom loading
// screen.
type ResponseLoadingScreenControlInfo struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SLoadingScreenControlInfo
}

func (m ResponseLoadingScreenControlInfo) Target() Target { return TargetConnection }
func (m ResponseLoadingScreenControlInfo) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseLoadingScreenControlInfo) Opcode() opcode.Opcode {
	return opcode.SLoadingScreenControlInfo
}
func (m ResponseLoadingScreenControlInfo) WirePacket() interface{} { return m.Packet }

// ResponseLoginAccountInfo carries the account's server-visible identity.
type ResponseLoginAccountInfo struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SLoginAccountInfo
}

func (m ResponseLoginAccountInfo) Target() Target { return TargetConnection }
func (m ResponseLoginAccountInfo) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseLoginAccountInfo) Opcode() opcode.Opcode   { return opcode.SLoginAccountInfo }
func (m ResponseLoginAccountInfo) WirePacket() interface{} { return m.Packet }

// ResponsePing is sent periodically to keep the connection's liveness
// timer fresh; the client must answer with RequestPong.
type ResponsePing struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SPing
}

func (m ResponsePing) Target() Target { return TargetConnection }
func (m ResponsePing) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponsePing) Opcode() opcode.Opcode   { return opcode.SPing }
func (m ResponsePing) WirePacket() interface{} { return m.Packet }

// ResponseRemainPlayTime reports the account's subscription/play-time
// status.
type ResponseRemainPlayTime struct {
	ConnectionGlobalWorldID wire.EntityID
	Packet                  packet.SRemainPlayTime
}

func (m ResponseRemainPlayTime) Target() Target { return TargetConnection }
func (m ResponseRemainPlayTime) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseRemainPlayTime) Opcode() opcode.Opcode   { return opcode.SRemainPlayTime }
func (m ResponseRemainPlayTime) WirePacket() interface{} { return m.Packet }
