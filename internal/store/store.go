// Package store persists the three record collections of the marketplace:
// customers, workers, and one active session per client context.
package store

import (
	"context"
	"errors"

	"github.com/kaamwala/kaamwala_be/internal/models"
)

// Storage keys. The Redis backend prefixes them; the session key is further
// scoped by client id.
const (
	KeyUsers   = "users"
	KeyWorkers = "workers"
	KeySession = "user"
)

var (
	ErrUnknownDriver = errors.New("unknown store driver")
	// ErrDuplicateEmail reports a write rejected by a unique email index.
	ErrDuplicateEmail = errors.New("email already stored")
	// ErrConflict means an update kept losing to concurrent writers.
	ErrConflict = errors.New("collection changed concurrently, giving up")
)

// Store has no transaction spanning several keys. A failure between writing
// a record and writing the session is not rolled back.
type Store interface {
	Users(ctx context.Context) ([]models.User, error)
	PutUsers(ctx context.Context, users []models.User) error
	Workers(ctx context.Context) ([]models.Worker, error)
	PutWorkers(ctx context.Context, workers []models.Worker) error

	// UpdateUsers stores fn's result in place of the current users,
	// atomically with respect to every other writer of the same backend,
	// including other processes. fn may run more than once and must not
	// keep side effects; an error from fn aborts the write and is returned
	// as is.
	UpdateUsers(ctx context.Context, fn func([]models.User) ([]models.User, error)) error
	UpdateWorkers(ctx context.Context, fn func([]models.Worker) ([]models.Worker, error)) error

	// Session returns nil when the client context is logged out.
	Session(ctx context.Context, clientID string) (*models.Session, error)
	SetSession(ctx context.Context, clientID string, s models.Session) error
	ClearSession(ctx context.Context, clientID string) error
}
