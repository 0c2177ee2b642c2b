package session

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/udisondev/la2go/internal/bus"
)

// rxPump reads and routes frames until ctx is cancelled or the stream ends.
func (s *Server) rxPump(ctx context.Context, c *Connection) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.receiveFrame(c); err != nil {
			return err
		}
	}
}

// receiveFrame reads one frame off the wire. The length prefix is decrypted
// in its own Apply call before its value is known, then the remaining
// header+payload bytes are decrypted in a second call that continues the
// same keystream — the two-byte length prefix is itself ciphertext, so
// there is no way to know how much more to read until it is decrypted.
func (s *Server) receiveFrame(c *Connection) error {
	var lenBuf [2]byte
	if _, err := io.ReadFull(c.conn, lenBuf[:]); err != nil {
		return wrapReadErr(err)
	}
	c.crypt.CryptClientData(lenBuf[:])

	length := binary.LittleEndian.Uint16(lenBuf[:])
	if length < 4 || int(length) > maxFrameSize {
		return ErrCryptDesync
	}

	body := s.readPool.Get(int(length) - 2)
	defer s.readPool.Put(body)

	if _, err := io.ReadFull(c.conn, body); err != nil {
		return wrapReadErr(err)
	}
	c.crypt.CryptClientData(body)

	wireOp := binary.LittleEndian.Uint16(body[:2])
	name, ok := s.opcodes.Name(wireOp)
	if !ok {
		s.log.Warn("session: unknown wire opcode, dropping frame", "wire_opcode", wireOp, "remote", c.ip)
		return nil
	}

	msg, err := bus.NewFromPacket(c.GlobalWorldID(), c.LocalWorldID(), c.AccountID(), nil, name, body[2:])
	if err != nil {
		s.log.Warn("session: dropping frame", "opcode", name, "remote", c.ip, "error", err)
		return nil
	}

	s.routeInbound(c, msg)
	return nil
}

// routeInbound sends msg to the global world's input channel, except for
// local-targeted messages (only RequestLoadTopoFin today), which go
// straight to the local world channel this connection switched over to.
func (s *Server) routeInbound(c *Connection, msg bus.Message) {
	ch := s.globalInput
	if msg.Target() == bus.TargetLocal {
		localCh := c.LocalWorldChannel()
		if localCh == nil {
			s.log.Warn("session: local-targeted message before spawn handoff, dropping", "remote", c.ip)
			return
		}
		ch = localCh
	}

	select {
	case ch <- msg:
	default:
		s.log.Warn("session: target channel full, dropping message", "remote", c.ip)
	}
}

func wrapReadErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrConnectionClosed
	}
	return fmt.Errorf("%w: %v", ErrIO, err)
}
