package global

import (
	"time"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// Connection is the per-session entity every message from a network
// session is attached to.
type Connection struct {
	ID                wire.EntityID
	BackChannel       chan<- bus.Message
	IsVersionChecked  bool
	Account           *Account
	LastPong          time.Time
	WaitingForPong    bool
	MarkedForDeletion bool
	CreatedAt         time.Time
}

// Account is attached to a Connection once its login ticket has been
// validated. At most one live Connection may hold an Account with a given
// AccountID at any time.
type Account struct {
	AccountID int64
	Region    model.Region
}

// UserSpawnStatus tracks a user's progress through the spawn handoff
// between the global world and a local world.
type UserSpawnStatus int

const (
	UserSpawnRequesting UserSpawnStatus = iota
	UserSpawnWaiting
	UserSpawnCanSpawn
	UserSpawnSpawnFailed
	UserSpawnSpawned
)

// UserSpawn tracks one connection's attempt to enter the world as a
// chosen character, keyed by the owning Connection's entity id.
type UserSpawn struct {
	ConnectionID           wire.EntityID
	UserID                 int32
	AccountID              int64
	Name                   string
	TemplateID             model.TemplateID
	Appearance             model.Customization
	ZoneID                 int32
	Status                 UserSpawnStatus
	LocalWorldID           wire.EntityID
	LocalWorldChannel      chan<- bus.Message
	ConnectionLocalWorldID wire.EntityID
	Location               model.Vec3
	IsAlive                bool
	MarkedForDeletion      bool
}

// Settings holds per-connection client preferences.
type Settings struct {
	ConnectionID wire.EntityID
	VisibleRange int32
}

// LocalWorldHandle is the global world's view of a running local world:
// its channel, the zone it serves, and the set of users currently placed
// in it.
type LocalWorldHandle struct {
	ID       wire.EntityID
	ZoneID   int32
	Channel  chan<- bus.Message
	Users    map[wire.EntityID]struct{} // keyed by Connection entity id
	Deadline time.Time                  // zero means "not idle"
	Ready    bool                       // true once LocalWorldLoaded{successful:true} arrived
}
