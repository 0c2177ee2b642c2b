package bus

import (
	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/packet"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// ResponseLogin carries the spawned character's live state to the client.
// It requires both an account id and a user id, since it is only ever sent
// once a character has been selected.
type ResponseLogin struct {
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	UserID                  int32
	Packet                  packet.SLogin
}

func (m ResponseLogin) Target() Target { return TargetConnection }
func (m ResponseLogin) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}
func (m ResponseLogin) Opcode() opcode.Opcode   { return opcode.SLogin }
func (m ResponseLogin) WirePacket() interface{} { return m.Packet }
