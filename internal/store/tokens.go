package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// RevokedToken is a logged-out session. Rows are only needed until the
// token would have expired on its own.
type RevokedToken struct {
	JTI       string    `db:"jti"`
	ExpiresAt time.Time `db:"expires_at"`
}

// RevokeToken records a logged-out session and drops revocations whose
// tokens have since expired. Revoking twice is not an error.
func RevokeToken(ctx context.Context, db *sqlx.DB, jti string, expiresAt time.Time) error {
	_, err := db.NamedExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_tokens (jti, expires_at) VALUES (:jti, :expires_at)`,
		RevokedToken{JTI: jti, ExpiresAt: expiresAt.UTC()},
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	if _, err := PurgeExpiredTokens(ctx, db, time.Now()); err != nil {
		slog.Warn("failed to purge revoked sessions", "error", err)
	}
	return nil
}

// PurgeExpiredTokens deletes revocations of tokens that expired before now
// and returns how many were removed.
func PurgeExpiredTokens(ctx context.Context, db *sqlx.DB, now time.Time) (int64, error) {
	n, err := rowsAffected(db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, now.UTC(),
	))
	if err != nil {
		return 0, fmt.Errorf("purging revoked tokens: %w", err)
	}
	return n, nil
}

// IsTokenRevoked reports whether the session jti was logged out.
func IsTokenRevoked(ctx context.Context, db *sqlx.DB, jti string) (bool, error) {
	var revoked bool
	err := db.GetContext(ctx, &revoked,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = ?)`, jti)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return revoked, nil
}
