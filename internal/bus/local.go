package bus

import (
	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/packet"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// RequestLoadTopoFin is sent by a connection to its local world once the
// client has finished loading the zone.
type RequestLoadTopoFin struct {
	ConnectionGlobalWorldID wire.EntityID
	ConnectionLocalWorldID  wire.EntityID
	Packet                  packet.CLoadTopoFin
}

func (m RequestLoadTopoFin) Target() Target { return TargetLocal }
func (m RequestLoadTopoFin) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionLocalWorldID, true
}
func (m RequestLoadTopoFin) Opcode() opcode.Opcode   { return opcode.CLoadTopoFin }
func (m RequestLoadTopoFin) WirePacket() interface{} { return m.Packet }

// ResponseSpawnMe tells a connection to place its avatar into the local
// world's scene.
type ResponseSpawnMe struct {
	ConnectionGlobalWorldID wire.EntityID
	ConnectionLocalWorldID  wire.EntityID
	Packet                  packet.SSpawnMe
}

func (m ResponseSpawnMe) Target() Target { return TargetConnection }
func (m ResponseSpawnMe) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionLocalWorldID, true
}
func (m ResponseSpawnMe) Opcode() opcode.Opcode   { return opcode.SSpawnMe }
func (m ResponseSpawnMe) WirePacket() interface{} { return m.Packet }
