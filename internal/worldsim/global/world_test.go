package global

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/packet"
	"github.com/udisondev/la2go/internal/protocol/wire"
	"github.com/udisondev/la2go/internal/store"
)

type fakeAccounts struct {
	byID map[int64]store.Account
}

func (f *fakeAccounts) GetByID(_ context.Context, id int64) (store.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return store.Account{}, store.ErrNotFound
	}
	return a, nil
}
func (f *fakeAccounts) GetByLogin(_ context.Context, login string) (store.Account, error) {
	for _, a := range f.byID {
		if a.Login == login {
			return a, nil
		}
	}
	return store.Account{}, store.ErrNotFound
}
func (f *fakeAccounts) Create(_ context.Context, login, hash string) (store.Account, error) {
	id := int64(len(f.byID) + 1)
	a := store.Account{ID: id, Login: login, PasswordHash: hash}
	f.byID[id] = a
	return a, nil
}

type fakeTickets struct {
	byValue map[string]store.Ticket
}

func (f *fakeTickets) Issue(_ context.Context, accountID int64, value []byte) error {
	f.byValue[string(value)] = store.Ticket{AccountID: accountID, Value: value, IssuedAt: time.Now()}
	return nil
}
func (f *fakeTickets) Redeem(_ context.Context, value []byte, maxAge time.Duration) (store.Ticket, error) {
	t, ok := f.byValue[string(value)]
	if !ok {
		return store.Ticket{}, store.ErrNotFound
	}
	delete(f.byValue, string(value))
	if time.Since(t.IssuedAt) > maxAge {
		return store.Ticket{}, store.ErrNotFound
	}
	return t, nil
}

type fakeUsers struct {
	byID map[int32]store.User
	next int32
}

func (f *fakeUsers) ListByAccount(_ context.Context, accountID int64) ([]store.User, error) {
	var out []store.User
	for _, u := range f.byID {
		if u.AccountID == accountID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LobbySlot < out[j].LobbySlot })
	return out, nil
}
func (f *fakeUsers) GetByID(_ context.Context, id int32) (store.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}
func (f *fakeUsers) NameTaken(_ context.Context, name string) (bool, error) {
	for _, u := range f.byID {
		if u.Name == name {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeUsers) Create(_ context.Context, u store.User) (store.User, error) {
	f.next++
	u.DatabaseID = f.next
	f.byID[u.DatabaseID] = u
	return u, nil
}
func (f *fakeUsers) Delete(_ context.Context, id int32) error {
	delete(f.byID, id)
	return nil
}
func (f *fakeUsers) SetLobbySlots(_ context.Context, slots map[int32]int32) error {
	for id, slot := range slots {
		u := f.byID[id]
		u.LobbySlot = slot
		f.byID[id] = u
	}
	return nil
}

func newTestWorld() (*World, *fakeAccounts, *fakeTickets, *fakeUsers) {
	accounts := &fakeAccounts{byID: map[int64]store.Account{1: {ID: 1, Login: "acc"}}}
	tickets := &fakeTickets{byValue: map[string]store.Ticket{}}
	users := &fakeUsers{byID: map[int32]store.User{}}

	w := New(config.Default().Game, accounts, tickets, users, slog.Default(), func(zoneID int32) (wire.EntityID, chan<- bus.Message, error) {
		return wire.EntityID{9, 9, 9, 9, 9, 9, 9, 9}, make(chan bus.Message, 16), nil
	})
	return w, accounts, tickets, users
}

func registerConnection(t *testing.T, w *World) (wire.EntityID, chan bus.Message) {
	t.Helper()
	ch := make(chan bus.Message, 16)
	w.Input <- bus.RegisterConnection{ConnectionChannel: ch}
	w.messageReceiverTick()
	w.connectionManagerTick()

	msg := <-ch
	fin, ok := msg.(bus.RegisterConnectionFinished)
	require.True(t, ok)
	return fin.ConnectionGlobalWorldID, ch
}

func TestCheckVersionSuccess(t *testing.T) {
	w, _, _, _ := newTestWorld()
	id, ch := registerConnection(t, w)

	w.Input <- bus.RequestCheckVersion{
		ConnectionGlobalWorldID: id,
		Packet:                  packet.CCheckVersion{Version: []packet.VersionEntry{{Index: 0, Value: 1}, {Index: 1, Value: 2}}},
	}
	w.messageReceiverTick()
	w.connectionManagerTick()

	resp := (<-ch).(bus.ResponseCheckVersion)
	require.True(t, resp.Packet.OK)
	require.True(t, w.connections[id].IsVersionChecked)
}

func TestCheckVersionFailureDropsConnection(t *testing.T) {
	w, _, _, _ := newTestWorld()
	id, ch := registerConnection(t, w)

	w.Input <- bus.RequestCheckVersion{
		ConnectionGlobalWorldID: id,
		Packet:                  packet.CCheckVersion{Version: []packet.VersionEntry{{Index: 0, Value: 1}}},
	}
	w.messageReceiverTick()
	w.connectionManagerTick()

	resp := (<-ch).(bus.ResponseCheckVersion)
	require.False(t, resp.Packet.OK)
	require.True(t, w.connections[id].MarkedForDeletion)

	w.sweepDeletions()
	_, stillThere := w.connections[id]
	require.False(t, stillThere)
}

func TestLoginArbiterSuccessSequence(t *testing.T) {
	w, _, tickets, _ := newTestWorld()
	id, ch := registerConnection(t, w)

	require.NoError(t, tickets.Issue(context.Background(), 1, []byte("valid-ticket")))

	w.Input <- bus.RequestLoginArbiter{
		ConnectionGlobalWorldID: id,
		Packet:                  packet.CLoginArbiter{MasterAccountName: "acc", Ticket: []byte("valid-ticket"), Region: model.RegionEurope},
	}
	w.messageReceiverTick()
	w.connectionManagerTick()

	checkVersion := (<-ch).(bus.ResponseCheckVersion)
	require.True(t, checkVersion.Packet.OK)
	loadingScreen := (<-ch).(bus.ResponseLoadingScreenControlInfo)
	require.False(t, loadingScreen.Packet.CustomScreenEnabled)
	playTime := (<-ch).(bus.ResponseRemainPlayTime)
	require.Equal(t, uint32(6), playTime.Packet.AccountType)
	arbiter := (<-ch).(bus.ResponseLoginArbiter)
	require.True(t, arbiter.Packet.Success)
	require.Equal(t, int32(65538), arbiter.Packet.Status)
	accountInfo := (<-ch).(bus.ResponseLoginAccountInfo)
	require.Equal(t, int64(1), accountInfo.Packet.AccountID)

	require.NotNil(t, w.connections[id].Account)
	require.Equal(t, id, w.accountIndex[1])
}

func TestLoginArbiterRejectsSecondConnectionForSameAccount(t *testing.T) {
	w, _, tickets, _ := newTestWorld()
	id1, ch1 := registerConnection(t, w)
	id2, ch2 := registerConnection(t, w)

	require.NoError(t, tickets.Issue(context.Background(), 1, []byte("t1")))
	require.NoError(t, tickets.Issue(context.Background(), 1, []byte("t2")))

	w.Input <- bus.RequestLoginArbiter{ConnectionGlobalWorldID: id1, Packet: packet.CLoginArbiter{Ticket: []byte("t1")}}
	w.messageReceiverTick()
	w.connectionManagerTick()
	for range []int{0, 1, 2, 3, 4} {
		<-ch1
	}

	w.Input <- bus.RequestLoginArbiter{ConnectionGlobalWorldID: id2, Packet: packet.CLoginArbiter{Ticket: []byte("t2")}}
	w.messageReceiverTick()
	w.connectionManagerTick()

	resp := (<-ch2).(bus.ResponseLoginArbiter)
	require.False(t, resp.Packet.Success)
	require.True(t, w.connections[id2].MarkedForDeletion)
}

func TestPingPongLiveness(t *testing.T) {
	w, _, tickets, _ := newTestWorld()
	id, ch := registerConnection(t, w)
	require.NoError(t, tickets.Issue(context.Background(), 1, []byte("t")))
	w.Input <- bus.RequestLoginArbiter{ConnectionGlobalWorldID: id, Packet: packet.CLoginArbiter{Ticket: []byte("t")}}
	w.messageReceiverTick()
	w.connectionManagerTick()
	for range []int{0, 1, 2, 3, 4} {
		<-ch
	}

	w.connections[id].LastPong = time.Now().Add(-20 * time.Second)
	w.connectionManagerTick()
	ping := (<-ch).(bus.ResponsePing)
	require.Equal(t, opcode.SPing, ping.Opcode())
	require.True(t, w.connections[id].WaitingForPong)

	w.connections[id].LastPong = time.Now().Add(-31 * time.Second)
	w.connectionManagerTick()
	require.True(t, w.connections[id].MarkedForDeletion)
}

func TestUserListPagination(t *testing.T) {
	w, _, _, users := newTestWorld()
	id, ch := registerConnection(t, w)
	w.connections[id].Account = &Account{AccountID: 1}

	for i := 0; i < 7; i++ {
		u, err := users.Create(context.Background(), store.User{AccountID: 1, Name: "n", LobbySlot: int32(i + 1)})
		require.NoError(t, err)
		_ = u
	}

	w.Input <- bus.RequestGetUserList{ConnectionGlobalWorldID: id, AccountID: 1}
	w.messageReceiverTick()
	w.userManagerTick()

	page1 := (<-ch).(bus.ResponseGetUserList)
	require.True(t, page1.Packet.First)
	require.True(t, page1.Packet.More)
	require.Len(t, page1.Packet.Characters, 5)

	page2 := (<-ch).(bus.ResponseGetUserList)
	require.False(t, page2.Packet.First)
	require.False(t, page2.Packet.More)
	require.Len(t, page2.Packet.Characters, 2)
}

func TestUserListEmptyAccountSendsOneEmptyPage(t *testing.T) {
	w, _, _, _ := newTestWorld()
	id, ch := registerConnection(t, w)
	w.connections[id].Account = &Account{AccountID: 1}

	w.Input <- bus.RequestGetUserList{ConnectionGlobalWorldID: id, AccountID: 1}
	w.messageReceiverTick()
	w.userManagerTick()

	page := (<-ch).(bus.ResponseGetUserList)
	require.True(t, page.Packet.First)
	require.False(t, page.Packet.More)
	require.Empty(t, page.Packet.Characters)
}

func TestCheckUserNameValidity(t *testing.T) {
	w, _, _, users := newTestWorld()
	id, ch := registerConnection(t, w)
	w.connections[id].Account = &Account{AccountID: 1}
	_, err := users.Create(context.Background(), store.User{AccountID: 1, Name: "Taken"})
	require.NoError(t, err)

	w.Input <- bus.RequestCheckUserName{ConnectionGlobalWorldID: id, AccountID: 1, Packet: packet.CCheckUserName{Name: "Taken"}}
	w.Input <- bus.RequestCheckUserName{ConnectionGlobalWorldID: id, AccountID: 1, Packet: packet.CCheckUserName{Name: "Free1"}}
	w.Input <- bus.RequestCheckUserName{ConnectionGlobalWorldID: id, AccountID: 1, Packet: packet.CCheckUserName{Name: "bad name!"}}
	w.messageReceiverTick()
	w.userManagerTick()

	require.False(t, (<-ch).(bus.ResponseCheckUserName).Packet.OK)
	require.True(t, (<-ch).(bus.ResponseCheckUserName).Packet.OK)
	require.False(t, (<-ch).(bus.ResponseCheckUserName).Packet.OK)
}

func TestCreateAndDeleteUserRenumbersLobbySlots(t *testing.T) {
	w, _, _, users := newTestWorld()
	id, ch := registerConnection(t, w)
	w.connections[id].Account = &Account{AccountID: 1}

	for i := 0; i < 3; i++ {
		w.Input <- bus.RequestCreateUser{ConnectionGlobalWorldID: id, AccountID: 1, Packet: packet.CCreateUser{Name: string(rune('A' + i))}}
	}
	w.messageReceiverTick()
	w.userManagerTick()
	for i := 0; i < 3; i++ {
		require.True(t, (<-ch).(bus.ResponseCreateUser).Packet.OK)
	}

	all, err := users.ListByAccount(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, all, 3)

	w.Input <- bus.RequestDeleteUser{ConnectionGlobalWorldID: id, AccountID: 1, Packet: packet.CDeleteUser{DatabaseID: all[0].DatabaseID}}
	w.messageReceiverTick()
	w.userManagerTick()
	require.True(t, (<-ch).(bus.ResponseDeleteUser).Packet.OK)

	remaining, err := users.ListByAccount(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	slots := []int32{remaining[0].LobbySlot, remaining[1].LobbySlot}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	require.Equal(t, []int32{1, 2}, slots)
}

func TestUserSpawnHandoff(t *testing.T) {
	w, _, _, users := newTestWorld()
	id, ch := registerConnection(t, w)
	w.connections[id].Account = &Account{AccountID: 1}

	u, err := users.Create(context.Background(), store.User{AccountID: 1, Name: "Hero"})
	require.NoError(t, err)

	w.Input <- bus.RequestSelectUser{ConnectionGlobalWorldID: id, AccountID: 1, Packet: packet.CSelectUser{DatabaseID: u.DatabaseID}}
	w.messageReceiverTick()
	w.userSpawnerTick()
	w.localWorldManagerTick()

	us := w.userSpawns[id]
	require.NotNil(t, us)
	require.Equal(t, UserSpawnWaiting, us.Status)
	localWorldChannel := us.LocalWorldChannel
	localWorldID := us.LocalWorldID

	w.Input <- bus.LocalWorldLoaded{Successful: true, GlobalWorldID: localWorldID}
	w.messageReceiverTick()
	w.localWorldManagerTick()
	require.Equal(t, UserSpawnCanSpawn, us.Status)

	w.userSpawnerTick()
	prepared := (<-localWorldChannel).(bus.PrepareUserSpawn)
	require.Equal(t, u.DatabaseID, prepared.UserInitializer.UserID)
	require.Equal(t, UserSpawnWaiting, us.Status)

	w.Input <- bus.UserSpawnPrepared{ConnectionGlobalWorldID: id, ConnectionLocalWorldID: wire.EntityID{1}}
	w.messageReceiverTick()
	w.userSpawnerTick()

	register := (<-ch).(bus.RegisterLocalWorld)
	require.Equal(t, wire.EntityID{1}, register.ConnectionLocalWorldID)
	login := (<-ch).(bus.ResponseLogin)
	require.Equal(t, "Hero", login.Packet.Name)
	loadTopo := (<-ch).(bus.ResponseLoadTopo)
	require.Equal(t, spawnZone, loadTopo.Packet.Zone)
	_ = (<-ch).(bus.ResponseLoadHint)
	ready := (<-localWorldChannel).(bus.UserReadyToConnect)
	require.Equal(t, wire.EntityID{1}, ready.ConnectionLocalWorldID)

	w.Input <- bus.UserSpawned{ConnectionGlobalWorldID: id}
	w.messageReceiverTick()
	w.userSpawnerTick()
	require.Equal(t, UserSpawnSpawned, w.userSpawns[id].Status)
}
