package local

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// Status is a Local World's own run state.
type Status int

const (
	StatusRunning Status = iota
	StatusShutdownInProgress
	StatusStopped
)

const tickBudget = 50 * time.Millisecond

// World is a Local World: one per zone, driven by a single goroutine.
type World struct {
	ZoneID int32

	// GlobalWorldID is the entity id the global world uses to address this
	// local world's LocalWorldHandle; it is stamped onto every
	// LocalWorldLoaded report so global knows which handle to update.
	GlobalWorldID wire.EntityID

	// Input is the Local World's inbound message channel, populated by
	// the global world and by sessions that hold a direct local-world
	// channel (see bus.RegisterLocalWorld).
	Input chan bus.Message

	// GlobalChannel is where this world reports spawn progress back to
	// the global world.
	GlobalChannel chan<- bus.Message

	connections map[wire.EntityID]*Connection
	userSpawns  map[wire.EntityID]*UserSpawn

	ids       entityAllocator
	deletions []wire.EntityID
	status    Status
	loaded    bool

	inbox inbox

	log *slog.Logger
}

type inbox struct {
	prepareUserSpawn  []bus.PrepareUserSpawn
	userReadyToConnect []bus.UserReadyToConnect
	loadTopoFin       []bus.RequestLoadTopoFin
	userDespawn       []bus.UserDespawn
}

// New builds an idle Local World for the given zone. globalWorldID is the
// entity id global assigned this world's LocalWorldHandle, echoed back on
// the LocalWorldLoaded report so global knows which handle finished.
func New(zoneID int32, globalWorldID wire.EntityID, globalChannel chan<- bus.Message, log *slog.Logger) *World {
	return &World{
		ZoneID:        zoneID,
		GlobalWorldID: globalWorldID,
		Input:         make(chan bus.Message, 1024),
		GlobalChannel: globalChannel,
		connections:   make(map[wire.EntityID]*Connection),
		userSpawns:    make(map[wire.EntityID]*UserSpawn),
		log:           log,
	}
}

// Run executes the fixed-tick schedule until the world processes a
// ShutdownSignal to completion or ctx is cancelled. Zone data has no
// external assets to load, so the world reports itself loaded on its
// first tick.
func (w *World) Run(ctx context.Context) error {
	for {
		start := time.Now()

		if !w.loaded {
			w.loaded = true
			w.sendToGlobal(bus.LocalWorldLoaded{Successful: true, GlobalWorldID: w.GlobalWorldID})
		}

		w.messageReceiverTick()
		w.userGatewayTick()
		w.sweepDeletions()

		if w.status == StatusShutdownInProgress {
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

func (w *World) messageReceiverTick() {
	for {
		select {
		case msg, ok := <-w.Input:
			if !ok {
				w.status = StatusShutdownInProgress
				return
			}
			w.route(msg)
		default:
			return
		}
	}
}

func (w *World) route(msg bus.Message) {
	switch m := msg.(type) {
	case bus.ShutdownSignal:
		w.status = StatusShutdownInProgress
	case bus.PrepareUserSpawn:
		w.inbox.prepareUserSpawn = append(w.inbox.prepareUserSpawn, m)
	case bus.UserReadyToConnect:
		w.inbox.userReadyToConnect = append(w.inbox.userReadyToConnect, m)
	case bus.RequestLoadTopoFin:
		w.inbox.loadTopoFin = append(w.inbox.loadTopoFin, m)
	case bus.UserDespawn:
		w.inbox.userDespawn = append(w.inbox.userDespawn, m)
	default:
		w.log.Warn("local world: unroutable message", "zone", w.ZoneID, "type", m)
	}
}

func (w *World) markForDeletion(id wire.EntityID) {
	if us, ok := w.userSpawns[id]; ok {
		us.MarkedForDeletion = true
	}
	w.deletions = append(w.deletions, id)
}

func (w *World) sweepDeletions() {
	if len(w.deletions) == 0 {
		return
	}
	for _, id := range w.deletions {
		delete(w.userSpawns, id)
		delete(w.connections, id)
	}
	w.deletions = w.deletions[:0]
}

func (w *World) sendToGlobal(msg bus.Message) {
	select {
	case w.GlobalChannel <- msg:
	default:
		w.log.Warn("local world: global channel full, dropping message", "zone", w.ZoneID)
	}
}

func (w *World) sendToConnection(id wire.EntityID, msg bus.Message) {
	c, ok := w.connections[id]
	if !ok || c.BackChannel == nil {
		return
	}
	select {
	case c.BackChannel <- msg:
	default:
		w.log.Warn("local world: connection channel full, dropping message", "connection", id)
	}
}
