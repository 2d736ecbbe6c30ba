package auth

import (
	"context"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/validation"
)

// Login authenticates a user and issues a token pair.
// IMPORTANT: must not leak whether the login exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, login, password string) (LoginResult, error) {
	login = validation.SecurityClean(login)
	if login == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if domain.Is(err, "USER_NOT_FOUND") {
			// hide not-found behind invalid credentials
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if !s.hasher.Verify(password, u.PasswordHash, "") {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	toks, err := s.issueTokens(ctx, u.ID, u.Login)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u, Tokens: toks}, nil
}
