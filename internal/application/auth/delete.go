package auth

import "context"

// DeleteAccount removes the user row (messages and refresh tokens cascade)
// and blacklists the access token that authorized the call.
func (s *Service) DeleteAccount(ctx context.Context, userID, accessToken string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.tokens.Revoke(accessToken)
	return nil
}
