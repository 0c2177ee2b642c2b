// Package bus defines the messages passed between connections, the global
// world and local worlds. A message always carries a target: the global
// world, a local world, both, or a single connection. Messages that arrive
// FROM the client are requests; messages that go TO the client are
// responses, both carried across the same channels as their packet-less
// system counterparts.
package bus

import (
	"errors"
	"fmt"

	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// Target identifies which runtime component(s) a Message is destined for.
type Target int

const (
	TargetGlobalLocal Target = iota // both the global world and a local world
	TargetGlobal
	TargetLocal
	TargetConnection
)

var (
	// ErrUnauthorizedPacket is returned by NewFromPacket when a packet
	// requires connection/account/user credentials the caller did not
	// supply.
	ErrUnauthorizedPacket = errors.New("bus: packet requires credentials the connection does not have")
	// ErrNoMessageMapping is returned by NewFromPacket when the opcode has
	// no known message mapping.
	ErrNoMessageMapping = errors.New("bus: no message mapping for opcode")
)

// Message is implemented by every value carried over the message channels
// connecting connections, the global world and local worlds.
type Message interface {
	// Target reports which component(s) this message is routed to.
	Target() Target
	// ConnectionID reports the id by which the routing component addresses
	// the connection this message concerns, if any.
	ConnectionID() (wire.EntityID, bool)
}

// PacketMessage is implemented by messages that carry a client or server
// packet and therefore have an opcode and an encodable payload.
type PacketMessage interface {
	Message
	Opcode() opcode.Opcode
	WirePacket() interface{}
}

func wrapEncodeErr(name string, err error) error {
	return fmt.Errorf("bus: encoding %s: %w", name, err)
}

// Data returns the wire payload for any PacketMessage, encoding its packet
// through the wire codec.
func Data(m PacketMessage) ([]byte, error) {
	data, err := wire.Encode(m.WirePacket())
	if err != nil {
		return nil, wrapEncodeErr(string(m.Opcode()), err)
	}
	return data, nil
}
