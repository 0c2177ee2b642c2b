package local

import (
	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/protocol/packet"
)

var spawnLocation = model.Vec3{X: 16260, Y: 1253, Z: -4410}

var spawnRotation = model.AngleFromDegrees(342)

// userGatewayTick is the single system a Local World runs: the gateway
// users pass through when spawning into or leaving this zone.
func (w *World) userGatewayTick() {
	w.handlePrepareUserSpawn()
	w.handleUserReadyToConnect()
	w.handleLoadTopoFin()
	w.handleUserDespawn()

	w.inbox.prepareUserSpawn = w.inbox.prepareUserSpawn[:0]
	w.inbox.userReadyToConnect = w.inbox.userReadyToConnect[:0]
	w.inbox.loadTopoFin = w.inbox.loadTopoFin[:0]
	w.inbox.userDespawn = w.inbox.userDespawn[:0]
}

func (w *World) handlePrepareUserSpawn() {
	for _, m := range w.inbox.prepareUserSpawn {
		init := m.UserInitializer
		id := w.ids.new()

		w.userSpawns[id] = &UserSpawn{
			ID:                      id,
			ConnectionGlobalWorldID: init.ConnectionGlobalWorldID,
			AccountID:               init.AccountID,
			UserID:                  init.UserID,
			Status:                  UserSpawnWaiting,
			IsAlive:                 true,
		}
		w.connections[id] = &Connection{BackChannel: init.ConnectionChannel}

		w.sendToGlobal(bus.UserSpawnPrepared{
			ConnectionGlobalWorldID: init.ConnectionGlobalWorldID,
			ConnectionLocalWorldID:  id,
		})
	}
}

func (w *World) handleUserReadyToConnect() {
	for _, m := range w.inbox.userReadyToConnect {
		if us, ok := w.userSpawns[m.ConnectionLocalWorldID]; ok {
			us.Status = UserSpawnCanSpawn
		} else {
			w.log.Warn("user_ready_to_connect: unknown local spawn", "local_id", m.ConnectionLocalWorldID)
		}
	}
}

func (w *World) handleLoadTopoFin() {
	for _, m := range w.inbox.loadTopoFin {
		us, ok := w.userSpawns[m.ConnectionLocalWorldID]
		if !ok {
			w.log.Warn("load_topo_fin: unknown local spawn", "local_id", m.ConnectionLocalWorldID)
			continue
		}
		if us.Status != UserSpawnCanSpawn {
			w.log.Warn("load_topo_fin: received too early", "local_id", m.ConnectionLocalWorldID, "status", us.Status)
			continue
		}

		w.sendToConnection(us.ID, bus.ResponseSpawnMe{
			ConnectionGlobalWorldID: us.ConnectionGlobalWorldID,
			ConnectionLocalWorldID:  us.ID,
			Packet: packet.SSpawnMe{
				UserID:   us.ID,
				Location: spawnLocation,
				Rotation: spawnRotation,
				IsAlive:  us.IsAlive,
				IsLord:   false,
			},
		})
		w.sendToGlobal(bus.UserSpawned{ConnectionGlobalWorldID: us.ConnectionGlobalWorldID})
		us.Status = UserSpawnSpawned
	}
}

func (w *World) handleUserDespawn() {
	for _, m := range w.inbox.userDespawn {
		us, ok := w.userSpawns[m.ConnectionLocalWorldID]
		if !ok {
			continue
		}
		if us.Status != UserSpawnSpawned {
			w.log.Warn("user_despawn: user isn't spawned yet", "local_id", m.ConnectionLocalWorldID)
			continue
		}
		w.markForDeletion(us.ID)
	}
}
