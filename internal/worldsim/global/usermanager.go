package global

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/protocol/packet"
	"github.com/udisondev/la2go/internal/store"
)

var validUserName = regexp.MustCompile(`^[A-Za-z0-9]+$`)

const userListPageSize = 5

func (w *World) userManagerTick() {
	w.handleCanCreateUser()
	w.handleChangeUserLobbySlot()
	w.handleCheckUserName()
	w.handleCreateUser()
	w.handleDeleteUser()
	w.handleGetUserList()

	w.inbox.canCreateUser = w.inbox.canCreateUser[:0]
	w.inbox.changeLobbySlot = w.inbox.changeLobbySlot[:0]
	w.inbox.checkUserName = w.inbox.checkUserName[:0]
	w.inbox.createUser = w.inbox.createUser[:0]
	w.inbox.deleteUser = w.inbox.deleteUser[:0]
	w.inbox.getUserList = w.inbox.getUserList[:0]
}

func (w *World) handleCanCreateUser() {
	for _, m := range w.inbox.canCreateUser {
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		users, err := w.users.ListByAccount(ctx, m.AccountID)
		cancel()
		ok2 := err == nil && len(users) < w.cfg.MaxUsersPerAccount
		if err != nil {
			w.log.Warn("can_create_user: store error", "account", m.AccountID, "error", err)
		}
		w.send(c, bus.ResponseCanCreateUser{ConnectionGlobalWorldID: c.ID, Packet: packet.SCanCreateUser{OK: ok2}})
	}
}

func (w *World) handleChangeUserLobbySlot() {
	for _, m := range w.inbox.changeLobbySlot {
		if err := w.changeUserLobbySlot(m.AccountID, m.Packet.Entries); err != nil {
			w.log.Warn("change_user_lobby_slot failed", "account", m.AccountID, "error", err)
		}
	}
}

// changeUserLobbySlot sorts the requested batch by its requested slot and
// writes ranks 1..len(entries) to exactly the users named in the batch.
// Users absent from the batch keep their current slot untouched.
func (w *World) changeUserLobbySlot(accountID int64, entries []packet.ChangeUserLobbySlotEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	users, err := w.users.ListByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	owned := make(map[int32]bool, len(users))
	for _, u := range users {
		owned[u.DatabaseID] = true
	}

	sorted := append([]packet.ChangeUserLobbySlotEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slot < sorted[j].Slot })

	slots := make(map[int32]int32, len(sorted))
	for i, e := range sorted {
		if !owned[e.DatabaseID] {
			return fmt.Errorf("user %d doesn't belong to account %d: %w", e.DatabaseID, accountID, errNotOwner)
		}
		slots[e.DatabaseID] = int32(i + 1)
	}
	return w.users.SetLobbySlots(ctx, slots)
}

func (w *World) handleCheckUserName() {
	for _, m := range w.inbox.checkUserName {
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		w.send(c, bus.ResponseCheckUserName{ConnectionGlobalWorldID: c.ID, Packet: packet.SCheckUserName{OK: w.isValidFreeName(m.Packet.Name)}})
	}
}

func (w *World) isValidFreeName(name string) bool {
	if !validUserName.MatchString(name) {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	taken, err := w.users.NameTaken(ctx, name)
	if err != nil {
		w.log.Warn("check_user_name: store error", "name", name, "error", err)
		return false
	}
	return !taken
}

func (w *World) handleCreateUser() {
	for _, m := range w.inbox.createUser {
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		ok2, err := w.tryCreateUser(m.AccountID, m.Packet)
		if err != nil {
			w.log.Warn("create_user failed", "account", m.AccountID, "error", err)
		}
		w.send(c, bus.ResponseCreateUser{ConnectionGlobalWorldID: c.ID, Packet: packet.SCreateUser{OK: ok2}})
	}
}

func (w *World) tryCreateUser(accountID int64, p packet.CCreateUser) (bool, error) {
	if !w.isValidFreeName(p.Name) {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	existing, err := w.users.ListByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	if len(existing) >= w.cfg.MaxUsersPerAccount {
		return false, nil
	}

	_, err = w.users.Create(ctx, store.User{
		AccountID:      accountID,
		Name:           p.Name,
		TemplateID:     p.TemplateID,
		Level:          1,
		Appearance:     p.Appearance,
		LobbySlot:      int32(len(existing)) + 1,
		Laurel:         -1,
		RestBonusXP:    419,
		IsNewCharacter: true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (w *World) handleDeleteUser() {
	for _, m := range w.inbox.deleteUser {
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		ok2, err := w.tryDeleteUser(m.AccountID, m.Packet.DatabaseID)
		if err != nil {
			w.log.Warn("delete_user failed", "account", m.AccountID, "error", err)
		}
		w.send(c, bus.ResponseDeleteUser{ConnectionGlobalWorldID: c.ID, Packet: packet.SDeleteUser{OK: ok2}})
	}
}

func (w *World) tryDeleteUser(accountID int64, databaseID int32) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	users, err := w.users.ListByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	owns := false
	for _, u := range users {
		if u.DatabaseID == databaseID {
			owns = true
			break
		}
	}
	if !owns {
		return false, errNotOwner
	}

	if err := w.users.Delete(ctx, databaseID); err != nil {
		return false, err
	}

	remaining, err := w.users.ListByAccount(ctx, accountID)
	if err != nil {
		return true, err
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].LobbySlot < remaining[j].LobbySlot })
	slots := make(map[int32]int32, len(remaining))
	for i, u := range remaining {
		slots[u.DatabaseID] = int32(i + 1)
	}
	if len(slots) > 0 {
		if err := w.users.SetLobbySlots(ctx, slots); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (w *World) handleGetUserList() {
	for _, m := range w.inbox.getUserList {
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		w.sendUserListPages(c, m.AccountID)
	}
}

func (w *World) sendUserListPages(c *Connection, accountID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	users, err := w.users.ListByAccount(ctx, accountID)
	if err != nil {
		w.log.Warn("get_user_list: store error", "account", accountID, "error", err)
		w.send(c, bus.ResponseGetUserList{ConnectionGlobalWorldID: c.ID, Packet: packet.SGetUserList{First: true, More: false}})
		return
	}
	sort.Slice(users, func(i, j int) bool { return users[i].LobbySlot < users[j].LobbySlot })

	if len(users) == 0 {
		w.send(c, bus.ResponseGetUserList{ConnectionGlobalWorldID: c.ID, Packet: packet.SGetUserList{First: true, More: false}})
		return
	}

	for start := 0; start < len(users); start += userListPageSize {
		end := start + userListPageSize
		if end > len(users) {
			end = len(users)
		}
		page := make([]packet.SGetUserListCharacter, 0, end-start)
		for _, u := range users[start:end] {
			page = append(page, packet.SGetUserListCharacter{
				Name:       u.Name,
				DatabaseID: u.DatabaseID,
				Race:       u.Race,
				Class:      u.Class,
				Gender:     u.Gender,
				Level:      u.Level,
				WorldID:    0,
				Appearance: u.Appearance,
				IsDeleting: u.IsDeleting,
				LobbySlot:  u.LobbySlot,
			})
		}
		w.send(c, bus.ResponseGetUserList{
			ConnectionGlobalWorldID: c.ID,
			Packet: packet.SGetUserList{
				Characters:    page,
				MaxCharacters: int32(w.cfg.MaxUsersPerAccount),
				First:         start == 0,
				More:          end < len(users),
			},
		})
	}
}
