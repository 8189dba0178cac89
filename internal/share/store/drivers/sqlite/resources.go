package sqlite

import (
	"context"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/sqlite/gen"
)

type resourcesRepo struct {
	q *gen.Queries
}

func (r *resourcesRepo) GetByID(ctx context.Context, id string) (domain.Resource, error) {
	row, err := r.q.GetResourceByID(ctx, id)
	if err != nil {
		return domain.Resource{}, mapNotFound(err)
	}
	return mapResourceRow(row), nil
}

func (r *resourcesRepo) ListByDepartment(ctx context.Context, dept domain.Department) ([]domain.Resource, error) {
	rows, err := r.q.ListResourcesByDepartment(ctx, string(dept))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Resource, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapResourceRow(gen.GetResourceByIDRow(row)))
	}
	return out, nil
}

func (r *resourcesRepo) Create(ctx context.Context, res domain.Resource) error {
	err := r.q.CreateResource(ctx, gen.CreateResourceParams{
		ID:           res.ID,
		StoredName:   res.StoredName,
		OriginalName: res.OriginalName,
		Locator:      res.Locator,
		ContentType:  res.ContentType,
		Size:         res.Size,
		Checksum:     res.Checksum,
		Department:   string(res.Department),
		OwnerID:      res.OwnerID,
		CreatedAt:    res.CreatedAt.UTC(),
		UpdatedAt:    res.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}
