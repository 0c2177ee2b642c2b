// Package store declares the persistence interfaces the global world's
// systems use to read and write accounts, characters, login tickets and
// saved locations. Concrete implementations live in internal/store/postgres;
// the systems themselves only depend on these interfaces, never on pgx.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/udisondev/la2go/internal/model"
)

// ErrNotFound is returned when a lookup finds no matching row.
var ErrNotFound = errors.New("store: not found")

// Account is the persisted identity a ticket authenticates against.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
}

// AccountStore looks up accounts by login.
type AccountStore interface {
	GetByID(ctx context.Context, id int64) (Account, error)
	GetByLogin(ctx context.Context, login string) (Account, error)
	Create(ctx context.Context, login, passwordHash string) (Account, error)
}

// Ticket is a single-use credential minted by the web frontend and
// consumed by LoginArbiter.
type Ticket struct {
	AccountID int64
	Value     []byte
	IssuedAt  time.Time
}

// TicketStore issues and consumes login tickets. A ticket may only be
// redeemed once and only within its validity window.
type TicketStore interface {
	// Issue stores a fresh ticket for accountID, replacing any previous
	// unused ticket for that account.
	Issue(ctx context.Context, accountID int64, value []byte) error
	// Redeem atomically consumes the ticket matching value if it exists,
	// is unused, and is no older than maxAge; it returns ErrNotFound
	// otherwise.
	Redeem(ctx context.Context, value []byte, maxAge time.Duration) (Ticket, error)
}

// User is a persisted character belonging to an account.
type User struct {
	DatabaseID     int32
	AccountID      int64
	Name           string
	TemplateID     model.TemplateID
	Gender         model.Gender
	Race           model.Race
	Class          model.Class
	Level          int32
	Appearance     model.Customization
	LobbySlot      int32
	Laurel         int32
	RestBonusXP    int32
	IsNewCharacter bool
	IsDeleting     bool
	DeleteRemainAt time.Time
}

// UserStore provides account-scoped character CRUD.
type UserStore interface {
	ListByAccount(ctx context.Context, accountID int64) ([]User, error)
	GetByID(ctx context.Context, databaseID int32) (User, error)
	NameTaken(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, databaseID int32) error
	// SetLobbySlots writes new 1-based slot numbers in a single
	// transaction, keyed by database id.
	SetLobbySlots(ctx context.Context, slots map[int32]int32) error
}

// Location is a character's last known position.
type Location struct {
	UserID int32
	Zone   int32
	Pos    model.Vec3
}

// LocationStore persists a character's last known position.
type LocationStore interface {
	Get(ctx context.Context, userID int32) (Location, error)
	Save(ctx context.Context, loc Location) error
}
