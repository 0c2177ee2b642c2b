package session

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/udisondev/la2go/internal/bus"
)

// txPump drains a connection's session channel, writing packet messages to
// the socket and applying control messages (account binding, local world
// handoff, connection drop) to session state. It exits once sessionCh is
// closed, which happens once the RX pump has stopped.
func (s *Server) txPump(c *Connection) {
	for msg := range c.sessionCh {
		if err := s.handleOutbound(c, msg); err != nil {
			if errors.Is(err, errDropConnection) {
				continue
			}
			s.log.Warn("session: outbound message failed", "remote", c.ip, "error", err)
		}
	}
}

func (s *Server) handleOutbound(c *Connection, msg bus.Message) error {
	switch m := msg.(type) {
	case bus.DropConnection:
		c.conn.Close()
		return errDropConnection

	case bus.RegisterConnectionFinished:
		c.setGlobalWorldID(m.ConnectionGlobalWorldID)
		return nil

	case bus.RegisterLocalWorld:
		c.setLocalWorld(m.ConnectionLocalWorldID, m.LocalWorldChannel)
		return nil

	case bus.ResponseLoginArbiter:
		if m.Packet.Success {
			c.setAccountID(m.AccountID)
		}
		return s.writePacket(c, m)

	case bus.PacketMessage:
		return s.writePacket(c, m)

	default:
		s.log.Warn("session: unroutable outbound message", "type", fmt.Sprintf("%T", msg))
		return nil
	}
}

// writePacket encodes m's payload through the wire codec, frames it with
// its resolved wire opcode and length, encrypts it with the connection's
// server cipher, and writes it.
func (s *Server) writePacket(c *Connection, m bus.PacketMessage) error {
	payload, err := bus.Data(m)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", m.Opcode(), err)
	}

	wireOp, ok := s.opcodes.Wire(m.Opcode())
	if !ok {
		return fmt.Errorf("no wire opcode for %s", m.Opcode())
	}

	n := 4 + len(payload)
	frame := s.sendPool.Get(n)
	defer s.sendPool.Put(frame)

	binary.LittleEndian.PutUint16(frame[0:2], uint16(n))
	binary.LittleEndian.PutUint16(frame[2:4], wireOp)
	copy(frame[4:], payload)

	c.crypt.CryptServerData(frame)

	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("writing frame for %s: %w: %v", m.Opcode(), ErrIO, err)
	}
	return nil
}
