package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/validation"
)

// Register creates an account. Login is sanitized before the format check so
// a value that survives only by carrying escapes cannot slip through.
// The checks are ordered login format, uniqueness, password strength: a taken
// login answers LOGIN_EXISTS even when the password is also too weak.
func (s *Service) Register(ctx context.Context, login, password string) (domain.User, error) {
	login = validation.SecurityClean(login)
	if !validation.LoginValid(login) {
		return domain.User{}, domain.ErrInvalidLogin()
	}

	exists, err := s.users.LoginExists(ctx, login)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, domain.ErrLoginExists()
	}

	if !validation.PasswordValid(password) {
		return domain.User{}, domain.ErrInvalidPassword("must be at least 6 characters and contain at least one letter and one digit")
	}

	hash, err := s.hasher.Hash(password, "")
	if err != nil {
		return domain.User{}, domain.ErrInternal(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: hash,
	})
	if err != nil {
		return domain.User{}, err
	}
	return created, nil
}
