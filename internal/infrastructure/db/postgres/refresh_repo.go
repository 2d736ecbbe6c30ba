package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
)

// RefreshRepo persists refresh-token records indexed by their SHA-256
// fingerprint. The plaintext token is never stored.
type RefreshRepo struct {
	db *sql.DB
}

func NewRefreshRepo(db *sql.DB) *RefreshRepo {
	return &RefreshRepo{db: db}
}

func (r *RefreshRepo) Store(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	const q = `
INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3);
`
	if _, err := r.db.ExecContext(ctx, q, userID, tokenHash, expiresAt); err != nil {
		return domain.ErrQuery(err)
	}
	return nil
}

// UserIDByHash returns the owner of a live refresh record. Expired or unknown
// fingerprints map to INVALID_REFRESH_TOKEN.
func (r *RefreshRepo) UserIDByHash(ctx context.Context, tokenHash string) (string, error) {
	const q = `
SELECT user_id
FROM refresh_tokens
WHERE token_hash = $1 AND expires_at > NOW()
LIMIT 1;
`
	var userID string
	err := r.db.QueryRowContext(ctx, q, tokenHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrInvalidRefreshToken()
		}
		return "", domain.ErrQuery(err)
	}
	return userID, nil
}

// Rotate inserts the new record and deletes the old one in a single
// transaction, so a crash cannot leave both tokens valid.
func (r *RefreshRepo) Rotate(ctx context.Context, oldHash, newHash, userID string, expiresAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrQuery(err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertQ = `
INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3);
`
	if _, err := tx.ExecContext(ctx, insertQ, userID, newHash, expiresAt); err != nil {
		return domain.ErrQuery(err)
	}

	const deleteQ = `DELETE FROM refresh_tokens WHERE token_hash = $1;`
	if _, err := tx.ExecContext(ctx, deleteQ, oldHash); err != nil {
		return domain.ErrQuery(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.ErrQuery(err)
	}
	return nil
}

// Delete removes the record for a fingerprint. Deleting an absent record is
// not an error; logout stays idempotent.
func (r *RefreshRepo) Delete(ctx context.Context, tokenHash string) error {
	const q = `DELETE FROM refresh_tokens WHERE token_hash = $1;`

	if _, err := r.db.ExecContext(ctx, q, tokenHash); err != nil {
		return domain.ErrQuery(err)
	}
	return nil
}

// DeleteExpired clears dead records. The database also runs a scheduled
// cleanup; this is the in-process fallback used at startup.
func (r *RefreshRepo) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM refresh_tokens WHERE expires_at < NOW();`

	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, domain.ErrQuery(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
