package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrDuplicateEmail and ErrDuplicateIdentifier tell the two account
	// uniqueness constraints apart. Both match ErrAlreadyExists.
	ErrDuplicateEmail      = fmt.Errorf("%w: email", ErrAlreadyExists)
	ErrDuplicateIdentifier = fmt.Errorf("%w: identifier", ErrAlreadyExists)
)

// Store is the root data access interface, implemented by the sqlite and
// postgres drivers. Repositories hang off it as methods so a Tx can hand out
// the same repositories bound to the transaction.
type Store interface {
	Accounts() Accounts
	Resources() Resources
	RevokedSessions() RevokedSessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)

	// GetByEmail expects an already normalised email.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetByIdentifier is used during login.
	GetByIdentifier(ctx context.Context, identifier string) (domain.Account, error)

	// ExistsIdentifier is the registry side of identifier allocation.
	ExistsIdentifier(ctx context.Context, identifier string) (bool, error)

	// Create inserts a new account. A clash on email or identifier returns
	// ErrDuplicateEmail or ErrDuplicateIdentifier.
	Create(ctx context.Context, a domain.Account) error
}

type Resources interface {
	// GetByID returns the resource with its owner filled in.
	GetByID(ctx context.Context, id string) (domain.Resource, error)

	// ListByDepartment returns every resource of dept, newest first.
	ListByDepartment(ctx context.Context, dept domain.Department) ([]domain.Resource, error)

	Create(ctx context.Context, r domain.Resource) error
}

type RevokedSessions interface {
	// Revoke records jti as logged out. Revoking twice is not an error.
	Revoke(ctx context.Context, jti, accountID string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpired drops revocations whose token would be expired anyway
	// and returns how many went.
	DeleteExpired(ctx context.Context) (int64, error)
}
