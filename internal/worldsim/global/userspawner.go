package global

import (
	"context"
	"time"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/protocol/packet"
)

// spawnZone and spawnLocation are the fixed entry point used by every
// character; no open-world zone transitions are implemented.
const spawnZone int32 = 5

var spawnLocation = model.Vec3{X: 16260, Y: 1253, Z: -4410}

func (w *World) userSpawnerTick() {
	w.handleSelectUser()
	w.promoteReadySpawns()
	w.consumeUserSpawnPrepared()
	w.consumeUserSpawned()

	w.inbox.selectUser = w.inbox.selectUser[:0]
	w.inbox.userSpawnPrepared = w.inbox.userSpawnPrepared[:0]
	w.inbox.userSpawned = w.inbox.userSpawned[:0]
}

// handleSelectUser is step 1 of the spawn handoff table: verify
// ownership, refuse a second spawn attempt, and open a UserSpawn entity.
func (w *World) handleSelectUser() {
	for _, m := range w.inbox.selectUser {
		if _, already := w.userSpawns[m.ConnectionGlobalWorldID]; already {
			w.log.Warn("select_user: connection already has a spawn in progress", "connection", m.ConnectionGlobalWorldID)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		u, err := w.users.GetByID(ctx, m.Packet.DatabaseID)
		cancel()
		if err != nil || u.AccountID != m.AccountID {
			w.log.Warn("select_user: ownership check failed", "account", m.AccountID, "user", m.Packet.DatabaseID, "error", err)
			continue
		}

		w.userSpawns[m.ConnectionGlobalWorldID] = &UserSpawn{
			ConnectionID: m.ConnectionGlobalWorldID,
			UserID:       u.DatabaseID,
			AccountID:    m.AccountID,
			Name:         u.Name,
			TemplateID:   u.TemplateID,
			Appearance:   u.Appearance,
			ZoneID:       0,
			Status:       UserSpawnRequesting,
			IsAlive:      true,
		}
	}
}

// promoteReadySpawns is step 3: act on UserSpawn entities the local world
// manager has already routed to a LocalWorldHandle.
func (w *World) promoteReadySpawns() {
	for _, us := range w.userSpawns {
		switch us.Status {
		case UserSpawnCanSpawn:
			var channel chan<- bus.Message
			if c, ok := w.connections[us.ConnectionID]; ok {
				channel = c.BackChannel
			}
			us.LocalWorldChannel <- bus.PrepareUserSpawn{
				UserInitializer: bus.UserInitializer{
					ConnectionGlobalWorldID: us.ConnectionID,
					ConnectionChannel:       channel,
					AccountID:               us.AccountID,
					UserID:                  us.UserID,
					IsAlive:                 us.IsAlive,
				},
			}
			us.Status = UserSpawnWaiting
		case UserSpawnSpawnFailed:
			// A failed spawn is logged and the attempt dropped; nothing
			// is sent to the client, and the world keeps running.
			w.log.Error("user_spawner: spawn failed, dropping attempt", "connection", us.ConnectionID)
			delete(w.userSpawns, us.ConnectionID)
		}
	}
}

// consumeUserSpawnPrepared is step 4: the local world has created its
// side of the spawn; hand the connection over and push the login/load
// sequence.
func (w *World) consumeUserSpawnPrepared() {
	for _, m := range w.inbox.userSpawnPrepared {
		us, ok := w.userSpawns[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}

		us.ConnectionLocalWorldID = m.ConnectionLocalWorldID

		w.send(c, bus.RegisterLocalWorld{
			ConnectionLocalWorldID: m.ConnectionLocalWorldID,
			LocalWorldChannel:      us.LocalWorldChannel,
		})
		w.send(c, bus.ResponseLogin{
			ConnectionGlobalWorldID: c.ID,
			AccountID:               us.AccountID,
			UserID:                  us.UserID,
			Packet: packet.SLogin{
				Name:       us.Name,
				TemplateID: us.TemplateID,
				DatabaseID: us.UserID,
				Alive:      us.IsAlive,
				Appearance: us.Appearance,
				Visible:    true,
			},
		})
		w.send(c, bus.ResponseLoadTopo{
			ConnectionGlobalWorldID: c.ID,
			Packet: packet.SLoadTopo{
				Zone:                 spawnZone,
				Location:             spawnLocation,
				DisableLoadingScreen: false,
			},
		})
		w.send(c, bus.ResponseLoadHint{ConnectionGlobalWorldID: c.ID, Packet: packet.SLoadHint{Unk1: 0}})

		us.LocalWorldChannel <- bus.UserReadyToConnect{ConnectionLocalWorldID: m.ConnectionLocalWorldID}
	}
}

// consumeUserSpawned is step 5: the local world finished placing the
// avatar in its scene.
func (w *World) consumeUserSpawned() {
	for _, m := range w.inbox.userSpawned {
		if us, ok := w.userSpawns[m.ConnectionGlobalWorldID]; ok {
			us.Status = UserSpawnSpawned
		}
	}
}
