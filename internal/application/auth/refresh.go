package auth

import (
	"context"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
)

type RefreshResult struct {
	UserID string
	Tokens AuthTokens
}

// Refresh rotates a refresh token and issues a new pair. The old token
// becomes invalid once used successfully; the swap is atomic in the store.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (RefreshResult, error) {
	if refreshToken == "" {
		return RefreshResult{}, domain.ErrMissingToken()
	}

	claims, err := s.tokens.VerifyAndDecode(refreshToken)
	if err != nil || !claims.IsRefreshToken() {
		return RefreshResult{}, domain.ErrInvalidRefreshToken()
	}

	// The signature alone is not enough: the fingerprint must still be on
	// record, otherwise the token was rotated out or revoked.
	oldHash := s.hasher.Fingerprint(refreshToken)
	userID, err := s.refresh.UserIDByHash(ctx, oldHash)
	if err != nil {
		return RefreshResult{}, domain.ErrInvalidRefreshToken()
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		// user gone, session is dead
		return RefreshResult{}, domain.ErrInvalidRefreshToken()
	}

	access, err := s.tokens.GenerateAccessToken(u.ID, u.Login)
	if err != nil {
		return RefreshResult{}, domain.ErrInternal(err)
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return RefreshResult{}, domain.ErrInternal(err)
	}

	expiresAt := time.Now().Add(s.tokens.RefreshTTL())
	if err := s.refresh.Rotate(ctx, oldHash, s.hasher.Fingerprint(newRefresh), u.ID, expiresAt); err != nil {
		return RefreshResult{}, err
	}

	return RefreshResult{
		UserID: u.ID,
		Tokens: AuthTokens{
			AccessToken:  access,
			RefreshToken: newRefresh,
			TokenType:    "Bearer",
			ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		},
	}, nil
}
