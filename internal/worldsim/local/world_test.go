package local

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

func TestRunReportsLoadedOnFirstTick(t *testing.T) {
	globalCh := make(chan bus.Message, 8)
	w := New(5, wire.EntityID{9}, globalCh, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case msg := <-globalCh:
		loaded, ok := msg.(bus.LocalWorldLoaded)
		require.True(t, ok, "expected LocalWorldLoaded, got %T", msg)
		require.True(t, loaded.Successful)
		require.Equal(t, wire.EntityID{9}, loaded.GlobalWorldID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for LocalWorldLoaded")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("local world did not stop after cancellation")
	}
}

func TestSpawnHandoff(t *testing.T) {
	globalCh := make(chan bus.Message, 8)
	sessionCh := make(chan bus.Message, 8)
	w := New(5, wire.EntityID{9}, globalCh, slog.Default())

	globalConnID := wire.EntityID{1, 1, 1, 1, 1, 1, 1, 1}

	w.Input <- bus.PrepareUserSpawn{
		UserInitializer: bus.UserInitializer{
			ConnectionGlobalWorldID: globalConnID,
			ConnectionChannel:       sessionCh,
			AccountID:               42,
			UserID:                  7,
			IsAlive:                 true,
		},
	}
	w.messageReceiverTick()
	w.userGatewayTick()

	prepared := (<-globalCh).(bus.UserSpawnPrepared)
	require.Equal(t, globalConnID, prepared.ConnectionGlobalWorldID)
	localID := prepared.ConnectionLocalWorldID
	require.Equal(t, UserSpawnWaiting, w.userSpawns[localID].Status)

	w.Input <- bus.UserReadyToConnect{ConnectionLocalWorldID: localID}
	w.messageReceiverTick()
	w.userGatewayTick()
	require.Equal(t, UserSpawnCanSpawn, w.userSpawns[localID].Status)

	w.Input <- bus.RequestLoadTopoFin{ConnectionGlobalWorldID: globalConnID, ConnectionLocalWorldID: localID}
	w.messageReceiverTick()
	w.userGatewayTick()

	spawnMe := (<-sessionCh).(bus.ResponseSpawnMe)
	require.Equal(t, localID, spawnMe.Packet.UserID)
	spawned := (<-globalCh).(bus.UserSpawned)
	require.Equal(t, globalConnID, spawned.ConnectionGlobalWorldID)
	require.Equal(t, UserSpawnSpawned, w.userSpawns[localID].Status)

	w.Input <- bus.UserDespawn{ConnectionLocalWorldID: localID}
	w.messageReceiverTick()
	w.userGatewayTick()
	w.sweepDeletions()

	_, stillThere := w.userSpawns[localID]
	require.False(t, stillThere)
}

func TestLoadTopoFinTooEarlyIsIgnored(t *testing.T) {
	globalCh := make(chan bus.Message, 8)
	sessionCh := make(chan bus.Message, 8)
	w := New(5, wire.EntityID{9}, globalCh, slog.Default())

	w.Input <- bus.PrepareUserSpawn{UserInitializer: bus.UserInitializer{ConnectionChannel: sessionCh}}
	w.messageReceiverTick()
	w.userGatewayTick()
	prepared := (<-globalCh).(bus.UserSpawnPrepared)

	w.Input <- bus.RequestLoadTopoFin{ConnectionLocalWorldID: prepared.ConnectionLocalWorldID}
	w.messageReceiverTick()
	w.userGatewayTick()

	select {
	case <-sessionCh:
		t.Fatal("expected no SSpawnMe before UserReadyToConnect")
	default:
	}
}
