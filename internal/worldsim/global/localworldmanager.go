package global

import (
	"time"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// localWorldManagerTick places waiting UserSpawns into a LocalWorldHandle
// for their zone (creating one on demand), promotes them once that handle
// reports successful load, and retires local worlds that have sat idle
// past their grace deadline.
func (w *World) localWorldManagerTick() {
	w.assignPendingSpawns()
	w.consumeLocalWorldLoaded()
	w.sweepIdleLocalWorlds()
}

func (w *World) assignPendingSpawns() {
	for _, us := range w.userSpawns {
		if us.Status != UserSpawnRequesting {
			continue
		}

		handle := w.findLocalWorldForZone(us.ZoneID)
		if handle == nil {
			id, channel, err := w.newLocalWorld(us.ZoneID)
			if err != nil {
				w.log.Warn("local_world_manager: failed to start local world", "zone", us.ZoneID, "error", err)
				us.Status = UserSpawnSpawnFailed
				continue
			}
			handle = &LocalWorldHandle{
				ID:      id,
				ZoneID:  us.ZoneID,
				Channel: channel,
				Users:   make(map[wire.EntityID]struct{}),
			}
			w.localWorlds[id] = handle
		}

		handle.Users[us.ConnectionID] = struct{}{}
		handle.Deadline = time.Time{}
		us.LocalWorldID = handle.ID
		us.LocalWorldChannel = handle.Channel

		if handle.Ready {
			us.Status = UserSpawnCanSpawn
		} else {
			us.Status = UserSpawnWaiting
		}
	}
}

func (w *World) findLocalWorldForZone(zoneID int32) *LocalWorldHandle {
	for _, h := range w.localWorlds {
		if h.ZoneID == zoneID {
			return h
		}
	}
	return nil
}

func (w *World) consumeLocalWorldLoaded() {
	for _, m := range w.inbox.localWorldLoaded {
		handle, ok := w.localWorlds[m.GlobalWorldID]
		if !ok {
			continue
		}
		if !m.Successful {
			for connID := range handle.Users {
				if us, ok := w.userSpawns[connID]; ok {
					us.Status = UserSpawnSpawnFailed
				}
			}
			delete(w.localWorlds, handle.ID)
			continue
		}

		handle.Ready = true
		for connID := range handle.Users {
			if us, ok := w.userSpawns[connID]; ok && us.Status == UserSpawnWaiting {
				us.Status = UserSpawnCanSpawn
			}
		}
	}
	w.inbox.localWorldLoaded = w.inbox.localWorldLoaded[:0]
}

func (w *World) sweepIdleLocalWorlds() {
	now := time.Now()
	for id, h := range w.localWorlds {
		if len(h.Users) > 0 || h.Deadline.IsZero() || now.Before(h.Deadline) {
			continue
		}
		select {
		case h.Channel <- bus.ShutdownSignal{Forced: false}:
		default:
		}
		delete(w.localWorlds, id)
	}
}
