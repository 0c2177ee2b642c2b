// Package postgres implements internal/store's interfaces against
// PostgreSQL via pgx, following the connection-pool-per-store shape of
// udisondev-la2go's internal/db package.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/la2go/internal/store"
)

// AccountStore is a pgx-backed store.AccountStore.
type AccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore wraps an existing pool.
func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) GetByID(ctx context.Context, id int64) (store.Account, error) {
	var acc store.Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, login, password_hash FROM accounts WHERE id = $1`, id,
	).Scan(&acc.ID, &acc.Login, &acc.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Account{}, store.ErrNotFound
		}
		return store.Account{}, fmt.Errorf("querying account %d: %w", id, err)
	}
	return acc, nil
}

func (s *AccountStore) GetByLogin(ctx context.Context, login string) (store.Account, error) {
	login = strings.ToLower(login)
	var acc store.Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, login, password_hash FROM accounts WHERE login = $1`, login,
	).Scan(&acc.ID, &acc.Login, &acc.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Account{}, store.ErrNotFound
		}
		return store.Account{}, fmt.Errorf("querying account %q: %w", login, err)
	}
	return acc, nil
}

func (s *AccountStore) Create(ctx context.Context, login, passwordHash string) (store.Account, error) {
	login = strings.ToLower(login)
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO accounts (login, password_hash) VALUES ($1, $2) RETURNING id`,
		login, passwordHash,
	).Scan(&id)
	if err != nil {
		return store.Account{}, fmt.Errorf("creating account %q: %w", login, err)
	}
	return store.Account{ID: id, Login: login, PasswordHash: passwordHash}, nil
}
