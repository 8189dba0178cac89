package postgres

import (
	"context"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
)

const accountColumns = `id, full_name, email, department, identifier, password_hash, created_at, updated_at`

type accountsRepo struct {
	db DBTX
}

func (r *accountsRepo) getBy(ctx context.Context, column, value string) (domain.Account, error) {
	var (
		a    domain.Account
		dept string
	)
	err := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE `+column+` = $1`, value,
	).Scan(&a.ID, &a.FullName, &a.Email, &dept, &a.Identifier, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Department = domain.Department(dept)
	return a, nil
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *accountsRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	return r.getBy(ctx, "identifier", identifier)
}

func (r *accountsRepo) ExistsIdentifier(ctx context.Context, identifier string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE identifier = $1)`, identifier,
	).Scan(&exists)
	return exists, err
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.FullName, a.Email, string(a.Department), a.Identifier, a.PasswordHash,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}
