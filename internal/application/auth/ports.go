package auth

import (
	"context"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/infrastructure/security"
)

/*
UserRepo
--------
Persistence port for accounts. Describes WHAT the auth flows need,
not HOW it's stored.
*/
type UserRepo interface {
	GetByLogin(ctx context.Context, login string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	LoginExists(ctx context.Context, login string) (bool, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
	Delete(ctx context.Context, userID string) error
}

/*
RefreshStore
------------
Refresh-token records keyed by SHA-256 fingerprint. Backed by Postgres.
*/
type RefreshStore interface {
	Store(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	UserIDByHash(ctx context.Context, tokenHash string) (string, error)
	Rotate(ctx context.Context, oldHash, newHash, userID string, expiresAt time.Time) error
	Delete(ctx context.Context, tokenHash string) error
}

/*
PasswordHasher
--------------
Hashing scheme abstraction. Empty salt selects the legacy algorithm so
pre-existing hashes keep verifying.
*/
type PasswordHasher interface {
	Hash(password, salt string) (string, error)
	Verify(password, storedHash, salt string) bool
	Fingerprint(token string) string
}

/*
TokenManager
------------
Issues, verifies and revokes JWTs. Used by the service and the auth
middleware.
*/
type TokenManager interface {
	GenerateAccessToken(userID, login string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	VerifyAndDecode(token string) (security.TokenClaims, error)
	Revoke(token string)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
