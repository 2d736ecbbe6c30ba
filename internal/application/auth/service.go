package auth

import (
	"context"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
)

type Service struct {
	users   UserRepo
	refresh RefreshStore
	hasher  PasswordHasher
	tokens  TokenManager
}

func NewService(users UserRepo, refresh RefreshStore, hasher PasswordHasher, tokens TokenManager) *Service {
	return &Service{
		users:   users,
		refresh: refresh,
		hasher:  hasher,
		tokens:  tokens,
	}
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // "Bearer"
	ExpiresIn    int64  // seconds, from the configured access TTL
}

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

// issueTokens mints an access/refresh pair and persists the refresh
// fingerprint.
func (s *Service) issueTokens(ctx context.Context, userID, login string) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(userID, login)
	if err != nil {
		return AuthTokens{}, domain.ErrInternal(err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return AuthTokens{}, domain.ErrInternal(err)
	}

	expiresAt := time.Now().Add(s.tokens.RefreshTTL())
	if err := s.refresh.Store(ctx, s.hasher.Fingerprint(refresh), userID, expiresAt); err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
