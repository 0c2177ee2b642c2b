package bus

import "github.com/udisondev/la2go/internal/protocol/wire"

// UserInitializer carries the data a local world needs to spawn a user's
// avatar, handed from the global world to the local world during the
// spawn handoff.
type UserInitializer struct {
	ConnectionGlobalWorldID wire.EntityID
	ConnectionChannel       chan<- Message
	AccountID               int64
	UserID                  int32
	IsAlive                 bool
}

// ShutdownSignal tells an ECS (global or local world) to shut down.
type ShutdownSignal struct {
	Forced bool
}

func (m ShutdownSignal) Target() Target                     { return TargetGlobalLocal }
func (m ShutdownSignal) ConnectionID() (wire.EntityID, bool) { return wire.EntityID{}, false }

// DropConnection tells a connection it will be closed once this message is
// received.
type DropConnection struct {
	ConnectionGlobalWorldID wire.EntityID
}

func (m DropConnection) Target() Target { return TargetConnection }
func (m DropConnection) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}

// RegisterConnection registers a new connection with the global world.
type RegisterConnection struct {
	ConnectionChannel chan<- Message
}

func (m RegisterConnection) Target() Target                     { return TargetGlobal }
func (m RegisterConnection) ConnectionID() (wire.EntityID, bool) { return wire.EntityID{}, false }

// RegisterConnectionFinished returns the connection's newly assigned
// global-world entity id.
type RegisterConnectionFinished struct {
	ConnectionGlobalWorldID wire.EntityID
}

func (m RegisterConnectionFinished) Target() Target { return TargetConnection }
func (m RegisterConnectionFinished) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}

// RegisterLocalWorld connects a connection to a local world.
type RegisterLocalWorld struct {
	ConnectionLocalWorldID wire.EntityID
	LocalWorldChannel      chan<- Message
}

func (m RegisterLocalWorld) Target() Target { return TargetConnection }
func (m RegisterLocalWorld) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionLocalWorldID, true
}

// LocalWorldLoaded reports whether a local world finished loading its
// zone data back to the global world.
type LocalWorldLoaded struct {
	Successful     bool
	GlobalWorldID  wire.EntityID
}

func (m LocalWorldLoaded) Target() Target { return TargetGlobal }
func (m LocalWorldLoaded) ConnectionID() (wire.EntityID, bool) {
	return m.GlobalWorldID, true
}

// PrepareUserSpawn carries the spawn request from the global world to a
// local world.
type PrepareUserSpawn struct {
	UserInitializer UserInitializer
}

func (m PrepareUserSpawn) Target() Target                     { return TargetLocal }
func (m PrepareUserSpawn) ConnectionID() (wire.EntityID, bool) { return wire.EntityID{}, false }

// UserSpawnPrepared reports that the local world is ready for the
// connection to switch over to it.
type UserSpawnPrepared struct {
	ConnectionGlobalWorldID wire.EntityID
	ConnectionLocalWorldID  wire.EntityID
}

func (m UserSpawnPrepared) Target() Target { return TargetGlobal }
func (m UserSpawnPrepared) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}

// UserReadyToConnect tells the local world the connection has switched
// over and is ready to receive ResponseSpawnMe.
type UserReadyToConnect struct {
	ConnectionLocalWorldID wire.EntityID
}

func (m UserReadyToConnect) Target() Target { return TargetLocal }
func (m UserReadyToConnect) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionLocalWorldID, true
}

// UserSpawned reports to the global world that the user has been fully
// spawned into the local world.
type UserSpawned struct {
	ConnectionGlobalWorldID wire.EntityID
}

func (m UserSpawned) Target() Target { return TargetGlobal }
func (m UserSpawned) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionGlobalWorldID, true
}

// UserDespawn tells a local world to remove the user's avatar from its
// scene.
type UserDespawn struct {
	ConnectionLocalWorldID wire.EntityID
}

func (m UserDespawn) Target() Target { return TargetLocal }
func (m UserDespawn) ConnectionID() (wire.EntityID, bool) {
	return m.ConnectionLocalWorldID, true
}
