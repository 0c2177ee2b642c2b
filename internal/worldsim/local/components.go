// Package local implements a Local World: a per-zone runtime whose only
// job, for now, is the spawn/despawn gateway users pass through when
// entering or leaving the zone.
package local

import (
	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// Connection is a local world's view of a session: just enough to push
// messages to it directly, without routing back through the global world.
type Connection struct {
	BackChannel chan<- bus.Message
}

// UserSpawnStatus tracks a user's progress through this zone's gateway.
type UserSpawnStatus int

const (
	UserSpawnWaiting UserSpawnStatus = iota
	UserSpawnCanSpawn
	UserSpawnSpawned
)

// UserSpawn is the local-side half of a user's spawn attempt, keyed by its
// own local-world entity id (distinct from the global Connection id).
type UserSpawn struct {
	ID                      wire.EntityID
	ConnectionGlobalWorldID wire.EntityID
	AccountID               int64
	UserID                  int32
	Status                  UserSpawnStatus
	IsAlive                 bool
	MarkedForDeletion       bool
}
