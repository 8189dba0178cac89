package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc connection string for the database file at path with
// foreign keys, a busy timeout and WAL enabled on every pooled connection.
// Timestamps are written in SQLite's own format so they sort as text.
func DSN(path string) string {
	v := url.Values{}
	v.Add("_pragma", "foreign_keys(1)")
	v.Add("_pragma", "busy_timeout(5000)")
	v.Add("_pragma", "journal_mode(WAL)")
	v.Add("_time_format", "sqlite")
	return "file:" + path + "?" + v.Encode()
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts               { return &accountsRepo{q: s.q} }
func (s *Store) Resources() store.Resources             { return &resourcesRepo{q: s.q} }
func (s *Store) RevokedSessions() store.RevokedSessions { return &revokedSessionsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapAccount(row gen.Account) domain.Account {
	return domain.Account{
		ID:           row.ID,
		FullName:     row.FullName,
		Email:        row.Email,
		Department:   domain.Department(row.Department),
		Identifier:   row.Identifier,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapResourceRow(row gen.GetResourceByIDRow) domain.Resource {
	return domain.Resource{
		ID:           row.ID,
		StoredName:   row.StoredName,
		OriginalName: row.OriginalName,
		Locator:      row.Locator,
		ContentType:  row.ContentType,
		Size:         row.Size,
		Checksum:     row.Checksum,
		Department:   domain.Department(row.Department),
		OwnerID:      row.OwnerID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Owner: domain.Owner{
			FullName:   row.OwnerFullName,
			Identifier: row.OwnerIdentifier,
		},
	}
}
