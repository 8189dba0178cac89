package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/store/drivers/sqlite/gen"
)

type revokedSessionsRepo struct {
	q *gen.Queries
}

func (r *revokedSessionsRepo) Revoke(ctx context.Context, jti, accountID string, expiresAt time.Time) error {
	return r.q.RevokeSession(ctx, gen.RevokeSessionParams{
		Jti:       jti,
		AccountID: accountID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	})
}

func (r *revokedSessionsRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.q.IsSessionRevoked(ctx, jti)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r *revokedSessionsRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return r.q.DeleteExpiredRevokedSessions(ctx, time.Now().UTC())
}
