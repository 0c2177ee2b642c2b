// Package worldsim owns the Global World task and the registry of Local
// World tasks it spawns on demand, one per zone.
package worldsim

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/protocol/wire"
	"github.com/udisondev/la2go/internal/store"
	"github.com/udisondev/la2go/internal/worldsim/global"
	"github.com/udisondev/la2go/internal/worldsim/local"
)

// Multiverse supervises the Global World and every Local World currently
// alive, running each on its own goroutine under a shared errgroup so that
// a single failing world can tear the whole runtime down.
type Multiverse struct {
	Global *global.World

	log *slog.Logger

	mu          sync.Mutex
	ids         localWorldAllocator
	group       *errgroup.Group
	groupCtx    context.Context
	localWorlds map[wire.EntityID]*local.World
}

// New builds a Multiverse around a freshly constructed Global World, wired
// so that Global's requests to stand up a Local World land on spawnLocalWorld.
func New(cfg config.GameConfig, accounts store.AccountStore, tickets store.TicketStore, users store.UserStore, log *slog.Logger) *Multiverse {
	m := &Multiverse{
		log:         log,
		localWorlds: make(map[wire.EntityID]*local.World),
	}
	m.Global = global.New(cfg, accounts, tickets, users, log, m.spawnLocalWorld)
	return m
}

// Run starts the Global World and blocks until it, and every Local World it
// spawned along the way, report a clean stop or ctx is cancelled.
func (m *Multiverse) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	m.mu.Lock()
	m.group = g
	m.groupCtx = gctx
	m.mu.Unlock()

	g.Go(func() error { return m.Global.Run(gctx) })

	return g.Wait()
}

// InputChannel is where sessions and other producers feed the Global World.
func (m *Multiverse) InputChannel() chan<- bus.Message {
	return m.Global.Input
}

// spawnLocalWorld is the Global World's newLocalWorld callback: it creates a
// Local World for zoneID, launches it under the same errgroup the Global
// World runs in, and hands Global back an id and channel to address it by.
// Local World ids are drawn from their own allocator, separate from the
// Global World's connection ids; both count up from 1, so the same value
// can name a connection and a Local World, each kept in its own map.
func (m *Multiverse) spawnLocalWorld(zoneID int32) (wire.EntityID, chan<- bus.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.group == nil {
		return wire.EntityID{}, nil, errMultiverseNotRunning
	}

	id := m.ids.new()
	w := local.New(zoneID, id, m.Global.Input, m.log)
	m.localWorlds[id] = w

	m.group.Go(func() error {
		err := w.Run(m.groupCtx)
		m.mu.Lock()
		delete(m.localWorlds, id)
		m.mu.Unlock()
		return err
	})

	return id, w.Input, nil
}
