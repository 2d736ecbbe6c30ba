package auth

import (
	"context"

	"github.com/novachat/nova-chat-server/internal/logger"
)

// Logout blacklists the access token and removes the refresh record. A
// refresh token that is already gone does not fail the logout.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken, userID string) error {
	s.tokens.Revoke(accessToken)

	if err := s.refresh.Delete(ctx, s.hasher.Fingerprint(refreshToken)); err != nil {
		logger.WithCtx(ctx).Warn().
			Err(err).
			Str("user_id", userID).
			Msg("failed to invalidate refresh token on logout")
	}
	return nil
}
