package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/la2go/internal/store"
)

// UserStore is a pgx-backed store.UserStore.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) ListByAccount(ctx context.Context, accountID int64) ([]store.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT database_id, account_id, name, template_id, gender, race, class, level,
		        appearance, lobby_slot, laurel, rest_bonus_xp, is_new_character, is_deleting
		 FROM users WHERE account_id = $1 ORDER BY lobby_slot`, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing users for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var users []store.User
	for rows.Next() {
		var u store.User
		var appearance []byte
		if err := rows.Scan(&u.DatabaseID, &u.AccountID, &u.Name, &u.TemplateID, &u.Gender,
			&u.Race, &u.Class, &u.Level, &appearance, &u.LobbySlot, &u.Laurel, &u.RestBonusXP,
			&u.IsNewCharacter, &u.IsDeleting); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		copy(u.Appearance[:], appearance)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *UserStore) GetByID(ctx context.Context, databaseID int32) (store.User, error) {
	var u store.User
	var appearance []byte
	err := s.pool.QueryRow(ctx,
		`SELECT database_id, account_id, name, template_id, gender, race, class, level,
		        appearance, lobby_slot, laurel, rest_bonus_xp, is_new_character, is_deleting
		 FROM users WHERE database_id = $1`, databaseID,
	).Scan(&u.DatabaseID, &u.AccountID, &u.Name, &u.TemplateID, &u.Gender, &u.Race, &u.Class,
		&u.Level, &appearance, &u.LobbySlot, &u.Laurel, &u.RestBonusXP, &u.IsNewCharacter,
		&u.IsDeleting)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.User{}, store.ErrNotFound
		}
		return store.User{}, fmt.Errorf("querying user %d: %w", databaseID, err)
	}
	copy(u.Appearance[:], appearance)
	return u, nil
}

func (s *UserStore) NameTaken(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(name) = lower($1))`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking name %q: %w", name, err)
	}
	return exists, nil
}

func (s *UserStore) Create(ctx context.Context, u store.User) (store.User, error) {
	var id int32
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (account_id, name, template_id, gender, race, class, level,
		                     appearance, lobby_slot, laurel, rest_bonus_xp, is_new_character,
		                     is_deleting)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, false)
		 RETURNING database_id`,
		u.AccountID, u.Name, u.TemplateID, u.Gender, u.Race, u.Class, u.Level,
		u.Appearance[:], u.LobbySlot, u.Laurel, u.RestBonusXP, u.IsNewCharacter,
	).Scan(&id)
	if err != nil {
		return store.User{}, fmt.Errorf("creating user %q: %w", u.Name, err)
	}
	u.DatabaseID = id
	return u, nil
}

func (s *UserStore) Delete(ctx context.Context, databaseID int32) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE database_id = $1`, databaseID)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", databaseID, err)
	}
	return nil
}

func (s *UserStore) SetLobbySlots(ctx context.Context, slots map[int32]int32) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning lobby slot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for databaseID, slot := range slots {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET lobby_slot = $1 WHERE database_id = $2`, slot, databaseID,
		); err != nil {
			return fmt.Errorf("setting lobby slot for user %d: %w", databaseID, err)
		}
	}
	return tx.Commit(ctx)
}
