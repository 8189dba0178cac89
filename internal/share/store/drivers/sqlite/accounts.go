package sqlite

import (
	"context"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	row, err := r.q.GetAccountByIdentifier(ctx, identifier)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) ExistsIdentifier(ctx context.Context, identifier string) (bool, error) {
	n, err := r.q.AccountIdentifierExists(ctx, identifier)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		FullName:     a.FullName,
		Email:        a.Email,
		Department:   string(a.Department),
		Identifier:   a.Identifier,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}
