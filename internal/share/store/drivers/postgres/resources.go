package postgres

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/jackc/pgx/v5"
)

const resourceSelect = `
SELECT r.id, r.stored_name, r.original_name, r.locator, r.content_type, r.size, r.checksum,
       r.department, r.owner_id, r.created_at, r.updated_at,
       a.full_name, a.identifier
FROM resources r
JOIN accounts a ON a.id = r.owner_id`

type resourcesRepo struct {
	db DBTX
}

func scanResource(row pgx.Row) (domain.Resource, error) {
	var (
		res  domain.Resource
		dept string
	)
	err := row.Scan(
		&res.ID, &res.StoredName, &res.OriginalName, &res.Locator, &res.ContentType,
		&res.Size, &res.Checksum, &dept, &res.OwnerID, &res.CreatedAt, &res.UpdatedAt,
		&res.Owner.FullName, &res.Owner.Identifier,
	)
	res.Department = domain.Department(dept)
	return res, err
}

func (r *resourcesRepo) GetByID(ctx context.Context, id string) (domain.Resource, error) {
	res, err := scanResource(r.db.QueryRow(ctx, resourceSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return domain.Resource{}, mapNotFound(err)
	}
	return res, nil
}

func (r *resourcesRepo) ListByDepartment(ctx context.Context, dept domain.Department) ([]domain.Resource, error) {
	rows, err := r.db.Query(ctx,
		resourceSelect+` WHERE r.department = $1 ORDER BY r.created_at DESC, r.id DESC`, string(dept))
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	out := []domain.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resourcesRepo) Create(ctx context.Context, res domain.Resource) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO resources (id, stored_name, original_name, locator, content_type, size, checksum,
                       department, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		res.ID, res.StoredName, res.OriginalName, res.Locator, res.ContentType, res.Size, res.Checksum,
		string(res.Department), res.OwnerID, res.CreatedAt.UTC(), res.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}
