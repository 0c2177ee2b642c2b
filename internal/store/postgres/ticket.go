package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/la2go/internal/store"
)

// TicketStore is a pgx-backed store.TicketStore. Each account holds at
// most one live ticket: issuing a new one overwrites the previous row via
// an upsert, and redeeming deletes the row so it cannot be replayed.
type TicketStore struct {
	pool *pgxpool.Pool
}

func NewTicketStore(pool *pgxpool.Pool) *TicketStore {
	return &TicketStore{pool: pool}
}

func (s *TicketStore) Issue(ctx context.Context, accountID int64, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tickets (account_id, value, issued_at) VALUES ($1, $2, $3)
		 ON CONFLICT (account_id) DO UPDATE SET value = EXCLUDED.value, issued_at = EXCLUDED.issued_at`,
		accountID, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("issuing ticket for account %d: %w", accountID, err)
	}
	return nil
}

func (s *TicketStore) Redeem(ctx context.Context, value []byte, maxAge time.Duration) (store.Ticket, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return store.Ticket{}, fmt.Errorf("beginning ticket redeem tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var t store.Ticket
	err = tx.QueryRow(ctx,
		`SELECT account_id, value, issued_at FROM tickets WHERE value = $1 FOR UPDATE`, value,
	).Scan(&t.AccountID, &t.Value, &t.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Ticket{}, store.ErrNotFound
		}
		return store.Ticket{}, fmt.Errorf("querying ticket: %w", err)
	}

	if time.Since(t.IssuedAt) > maxAge {
		return store.Ticket{}, store.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tickets WHERE value = $1`, value); err != nil {
		return store.Ticket{}, fmt.Errorf("consuming ticket: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return store.Ticket{}, fmt.Errorf("committing ticket redeem: %w", err)
	}
	return t, nil
}
