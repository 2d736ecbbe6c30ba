package auth

import (
	"context"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/validation"
)

// ChangePassword verifies the current password before accepting the new one.
// A wrong current password is forbidden, not a validation failure.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(oldPassword, u.PasswordHash, "") {
		return domain.ErrWrongPassword()
	}

	if !validation.PasswordValid(newPassword) {
		return domain.ErrInvalidPassword("must be at least 6 characters and contain at least one letter and one digit")
	}

	newHash, err := s.hasher.Hash(newPassword, "")
	if err != nil {
		return domain.ErrInternal(err)
	}
	return s.users.UpdatePasswordHash(ctx, userID, newHash)
}
