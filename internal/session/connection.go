package session

import (
	"net"
	"sync"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/crypt"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// Connection holds one game client's per-session state: its socket, its
// derived CryptSession, the entity ids the worlds address it by, and the
// channel the worlds push outgoing messages onto. Fields that are only
// ever touched from the owning pump's goroutine (conn, crypt) are left
// unguarded; fields that cross between the RX pump, the TX pump and the
// accept goroutine go through mu.
type Connection struct {
	conn  net.Conn
	ip    string
	crypt *crypt.CryptSession

	sessionCh chan bus.Message

	mu                sync.Mutex
	globalWorldID     wire.EntityID
	accountID         *int64
	localWorldID      *wire.EntityID
	localWorldChannel chan<- bus.Message
}

func newConnection(conn net.Conn, ip string, cs *crypt.CryptSession, sessionCh chan bus.Message) *Connection {
	return &Connection{conn: conn, ip: ip, crypt: cs, sessionCh: sessionCh}
}

// GlobalWorldID returns the entity id the global world assigned this
// connection when it registered.
func (c *Connection) GlobalWorldID() wire.EntityID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.globalWorldID
}

func (c *Connection) setGlobalWorldID(id wire.EntityID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.globalWorldID = id
}

// AccountID returns the account id bound to this connection by a
// successful login, or nil before that.
func (c *Connection) AccountID() *int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accountID
}

func (c *Connection) setAccountID(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountID = &id
}

// LocalWorldID returns the local world entity id this connection switched
// over to, or nil before the spawn handoff completes.
func (c *Connection) LocalWorldID() *wire.EntityID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localWorldID
}

// LocalWorldChannel returns the channel local-targeted inbound messages
// should be sent on, or nil before the spawn handoff completes.
func (c *Connection) LocalWorldChannel() chan<- bus.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localWorldChannel
}

func (c *Connection) setLocalWorld(id wire.EntityID, ch chan<- bus.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.localWorldID = &id
	c.localWorldChannel = ch
}
