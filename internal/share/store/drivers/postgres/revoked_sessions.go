package postgres

import (
	"context"
	"time"
)

type revokedSessionsRepo struct {
	db DBTX
}

func (r *revokedSessionsRepo) Revoke(ctx context.Context, jti, accountID string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO revoked_sessions (jti, account_id, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (jti) DO NOTHING`, jti, accountID, expiresAt.UTC())
	return err
}

func (r *revokedSessionsRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE jti = $1)`, jti,
	).Scan(&revoked)
	return revoked, err
}

func (r *revokedSessionsRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM revoked_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
