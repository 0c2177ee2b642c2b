package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/la2go/internal/store"
)

// LocationStore is a pgx-backed store.LocationStore.
type LocationStore struct {
	pool *pgxpool.Pool
}

func NewLocationStore(pool *pgxpool.Pool) *LocationStore {
	return &LocationStore{pool: pool}
}

func (s *LocationStore) Get(ctx context.Context, userID int32) (store.Location, error) {
	var loc store.Location
	loc.UserID = userID
	err := s.pool.QueryRow(ctx,
		`SELECT zone, x, y, z FROM locations WHERE user_id = $1`, userID,
	).Scan(&loc.Zone, &loc.Pos.X, &loc.Pos.Y, &loc.Pos.Z)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Location{}, store.ErrNotFound
		}
		return store.Location{}, fmt.Errorf("querying location for user %d: %w", userID, err)
	}
	return loc, nil
}

func (s *LocationStore) Save(ctx context.Context, loc store.Location) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO locations (user_id, zone, x, y, z) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET zone = EXCLUDED.zone, x = EXCLUDED.x, y = EXCLUDED.y, z = EXCLUDED.z`,
		loc.UserID, loc.Zone, loc.Pos.X, loc.Pos.Y, loc.Pos.Z,
	)
	if err != nil {
		return fmt.Errorf("saving location for user %d: %w", loc.UserID, err)
	}
	return nil
}
