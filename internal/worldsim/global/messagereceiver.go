package global

import "github.com/udisondev/la2go/internal/bus"

// inbox holds the messages drained from World.Input this tick, sorted by
// which system consumes them. Each system clears its own slice once
// processed.
type inbox struct {
	registerConnections []bus.RegisterConnection
	checkVersion        []bus.RequestCheckVersion
	loginArbiter        []bus.RequestLoginArbiter
	pong                []bus.RequestPong

	canCreateUser   []bus.RequestCanCreateUser
	changeLobbySlot []bus.RequestChangeUserLobbySlotID
	checkUserName   []bus.RequestCheckUserName
	createUser      []bus.RequestCreateUser
	deleteUser      []bus.RequestDeleteUser
	getUserList     []bus.RequestGetUserList

	setVisibleRange []bus.RequestSetVisibleRange

	selectUser        []bus.RequestSelectUser
	userSpawnPrepared []bus.UserSpawnPrepared
	userSpawned       []bus.UserSpawned
	localWorldLoaded  []bus.LocalWorldLoaded
}

// messageReceiverTick drains the input channel into the per-system inboxes.
// It never blocks: the channel is read until empty, not until a deadline.
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
	case bus.RegisterConnection:
		w.inbox.registerConnections = append(w.inbox.registerConnections, m)
	case bus.RequestCheckVersion:
		w.inbox.checkVersion = append(w.inbox.checkVersion, m)
	case bus.RequestLoginArbiter:
		w.inbox.loginArbiter = append(w.inbox.loginArbiter, m)
	case bus.RequestPong:
		w.inbox.pong = append(w.inbox.pong, m)
	case bus.RequestCanCreateUser:
		w.inbox.canCreateUser = append(w.inbox.canCreateUser, m)
	case bus.RequestChangeUserLobbySlotID:
		w.inbox.changeLobbySlot = append(w.inbox.changeLobbySlot, m)
	case bus.RequestCheckUserName:
		w.inbox.checkUserName = append(w.inbox.checkUserName, m)
	case bus.RequestCreateUser:
		w.inbox.createUser = append(w.inbox.createUser, m)
	case bus.RequestDeleteUser:
		w.inbox.deleteUser = append(w.inbox.deleteUser, m)
	case bus.RequestGetUserList:
		w.inbox.getUserList = append(w.inbox.getUserList, m)
	case bus.RequestSetVisibleRange:
		w.inbox.setVisibleRange = append(w.inbox.setVisibleRange, m)
	case bus.RequestSelectUser:
		w.inbox.selectUser = append(w.inbox.selectUser, m)
	case bus.UserSpawnPrepared:
		w.inbox.userSpawnPrepared = append(w.inbox.userSpawnPrepared, m)
	case bus.UserSpawned:
		w.inbox.userSpawned = append(w.inbox.userSpawned, m)
	case bus.LocalWorldLoaded:
		w.inbox.localWorldLoaded = append(w.inbox.localWorldLoaded, m)
	default:
		w.log.Warn("global world: unroutable message", "type", m)
	}
}
