package store

import (
	"context"
	"errors"
	"time"

	"github.com/openummah/masjidhub/internal/directory/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable means the backing store could not be reached at all.
	// Handlers surface it as 503 rather than a generic server error.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the root data access interface. Concrete drivers (mongo, memory)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Mosques() Mosques
	SalahTimes() SalahTimes
	Events() Events

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up the login identity. Callers lowercase the
	// email before the call.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SetMasjidID attaches a mosque to its admin user and bumps updated_at.
	SetMasjidID(ctx context.Context, userID, masjidID string) error
}

type Mosques interface {
	GetMosqueByID(ctx context.Context, id string) (domain.Mosque, error)

	// SearchMosques returns approved mosques matching the filter, sorted by
	// name, capped at limit.
	SearchMosques(ctx context.Context, f MosqueFilter) ([]domain.Mosque, error)

	CreateMosque(ctx context.Context, m domain.Mosque) error

	// UpdateMosque replaces the mutable fields and bumps updated_at.
	UpdateMosque(ctx context.Context, m domain.Mosque) error
}

// MosqueFilter narrows a mosque search. Name matches name or address,
// case-insensitive substring. Zero values mean no constraint.
type MosqueFilter struct {
	Name  string
	City  string
	Limit int
}

type SalahTimes interface {
	// GetSalahTimes returns the schedule for a mosque on a given day.
	// The date must already be normalized to midnight UTC.
	GetSalahTimes(ctx context.Context, masjidID string, date time.Time) (domain.SalahTimes, error)

	// UpsertSalahTimes inserts or replaces the schedule for (masjid, date).
	UpsertSalahTimes(ctx context.Context, s domain.SalahTimes) error
}

type Events interface {
	// ListEvents returns events for a mosque, newest-first by date unless
	// the filter asks for upcoming only (then soonest-first).
	ListEvents(ctx context.Context, f EventFilter) ([]domain.Event, error)

	CreateEvent(ctx context.Context, e domain.Event) error
}

// EventFilter narrows an event listing. Upcoming keeps events dated from
// the given reference time onward.
type EventFilter struct {
	MasjidID string
	Upcoming bool
	After    time.Time
	Limit    int
}
