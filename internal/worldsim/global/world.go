// Package global implements the Global World: the single ECS-like runtime
// that owns connections, accounts, character selection and the handoff of
// users into Local Worlds. There is exactly one Global World per server.
package global

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/protocol/wire"
	"github.com/udisondev/la2go/internal/store"
)

// Status is the Global World's own run state.
type Status int

const (
	StatusRunning Status = iota
	StatusShutdownInProgress
	StatusStopped
)

const tickBudget = 50 * time.Millisecond

// World is the Global World. It is driven by a single goroutine (Run);
// every storage below is therefore unsynchronized map access, matching
// spec.md's "treat each world as an island" guidance.
type World struct {
	// Input is the Global World's inbound message channel. Connections
	// and Local Worlds send messages here; capacity matches spec.md's
	// default of 1024.
	Input chan bus.Message

	connections  map[wire.EntityID]*Connection
	accountIndex map[int64]wire.EntityID
	userSpawns   map[wire.EntityID]*UserSpawn
	settings     map[wire.EntityID]*Settings
	localWorlds  map[wire.EntityID]*LocalWorldHandle

	ids        entityAllocator
	deletions  []wire.EntityID
	status     Status
	inbox      inbox

	accounts store.AccountStore
	tickets  store.TicketStore
	users    store.UserStore

	cfg config.GameConfig
	log *slog.Logger

	// newLocalWorld spawns a Local World for a zone and returns its
	// registration handle; injected so tests can stub it out and
	// Multiverse can wire it to the real local-world task launcher.
	newLocalWorld func(zoneID int32) (id wire.EntityID, channel chan<- bus.Message, err error)
}

// New builds an idle Global World. newLocalWorld is the callback used to
// launch a Local World for a zone; it must be non-nil before Run is called.
func New(cfg config.GameConfig, accounts store.AccountStore, tickets store.TicketStore, users store.UserStore, log *slog.Logger, newLocalWorld func(int32) (wire.EntityID, chan<- bus.Message, error)) *World {
	return &World{
		Input:        make(chan bus.Message, 1024),
		connections:  make(map[wire.EntityID]*Connection),
		accountIndex: make(map[int64]wire.EntityID),
		userSpawns:   make(map[wire.EntityID]*UserSpawn),
		settings:     make(map[wire.EntityID]*Settings),
		localWorlds:  make(map[wire.EntityID]*LocalWorldHandle),
		accounts:     accounts,
		tickets:      tickets,
		users:        users,
		cfg:          cfg,
		log:          log,
		newLocalWorld: newLocalWorld,
	}
}

// Run executes the fixed-tick schedule until ctx is cancelled or the world
// has processed a ShutdownSignal to completion.
func (w *World) Run(ctx context.Context) error {
	for {
		start := time.Now()

		w.messageReceiverTick()
		w.connectionManagerTick()
		w.userManagerTick()
		w.settingsManagerTick()
		w.localWorldManagerTick()
		w.userSpawnerTick()
		w.sweepDeletions()

		if w.status == StatusShutdownInProgress {
			w.shutdownLocalWorlds()
			w.status = StatusStopped
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if elapsed := time.Since(start); elapsed < tickBudget {
			time.Sleep(tickBudget - elapsed)
		}
	}
}

func (w *World) shutdownLocalWorlds() {
	for _, lw := range w.localWorlds {
		select {
		case lw.Channel <- bus.ShutdownSignal{Forced: true}:
		default:
		}
	}
}

// markForDeletion schedules a connection entity for removal at the next
// sweep, matching spec.md's "a sweep deletes entities marked for deletion
// between systems" rule.
func (w *World) markForDeletion(id wire.EntityID) {
	if c, ok := w.connections[id]; ok {
		c.MarkedForDeletion = true
	}
	w.deletions = append(w.deletions, id)
}

func (w *World) sweepDeletions() {
	if len(w.deletions) == 0 {
		return
	}
	for _, id := range w.deletions {
		if c, ok := w.connections[id]; ok && c.Account != nil {
			delete(w.accountIndex, c.Account.AccountID)
		}
		delete(w.connections, id)
		delete(w.settings, id)
		if us, ok := w.userSpawns[id]; ok && us.LocalWorldChannel != nil {
			us.LocalWorldChannel <- bus.UserDespawn{ConnectionLocalWorldID: us.ConnectionLocalWorldID}
			if lw, ok := w.localWorlds[us.LocalWorldID]; ok {
				delete(lw.Users, id)
				if len(lw.Users) == 0 {
					lw.Deadline = time.Now().Add(time.Duration(w.cfg.IdleLocalWorldGrace) * time.Second)
				}
			}
		}
		delete(w.userSpawns, id)
	}
	w.deletions = w.deletions[:0]
}

func (w *World) send(c *Connection, msg bus.Message) {
	if c == nil || c.BackChannel == nil {
		return
	}
	select {
	case c.BackChannel <- msg:
	default:
		w.log.Warn("dropping message to full connection channel", "connection", c.ID)
	}
}
