package session

import (
	"crypto/rand"
	"fmt"
	"io"
	"net"

	"github.com/udisondev/la2go/internal/crypt"
)

// magicWord is written, unencrypted, as the first four bytes of every new
// connection.
var magicWord = [4]byte{0x01, 0x00, 0x00, 0x00}

// performHandshake runs the raw key exchange that precedes Pike framing:
// magic word, C1, S1, C2, S2, in that strict order, all unencrypted, then
// derives the connection's CryptSession from the four key blocks.
func performHandshake(conn net.Conn) (*crypt.CryptSession, error) {
	if _, err := conn.Write(magicWord[:]); err != nil {
		return nil, fmt.Errorf("writing magic word: %w: %v", ErrIO, err)
	}

	var c1, c2, s1, s2 [128]byte

	if _, err := io.ReadFull(conn, c1[:]); err != nil {
		return nil, fmt.Errorf("reading client key 1: %w: %v", ErrIO, err)
	}

	if _, err := rand.Read(s1[:]); err != nil {
		return nil, fmt.Errorf("generating server key 1: %w", err)
	}
	if _, err := conn.Write(s1[:]); err != nil {
		return nil, fmt.Errorf("writing server key 1: %w: %v", ErrIO, err)
	}

	if _, err := io.ReadFull(conn, c2[:]); err != nil {
		return nil, fmt.Errorf("reading client key 2: %w: %v", ErrIO, err)
	}

	if _, err := rand.Read(s2[:]); err != nil {
		return nil, fmt.Errorf("generating server key 2: %w", err)
	}
	if _, err := conn.Write(s2[:]); err != nil {
		return nil, fmt.Errorf("writing server key 2: %w: %v", ErrIO, err)
	}

	return crypt.NewCryptSession([2][128]byte{c1, c2}, [2][128]byte{s1, s2}), nil
}
