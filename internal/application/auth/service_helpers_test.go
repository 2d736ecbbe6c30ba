package auth

import (
	"context"
	"testing"

	"github.com/novachat/nova-chat-server/internal/infrastructure/memory"
	"github.com/novachat/nova-chat-server/internal/infrastructure/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newSvcForTest(t *testing.T) (*Service, *memory.UserRepo, *memory.RefreshRepo, *security.JWTManager) {
	t.Helper()

	tokens, err := security.NewJWTManager(testSecret, 15, 7)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	users := memory.NewUserRepo()
	refresh := memory.NewRefreshRepo()
	svc := NewService(users, refresh, security.NewHasher(), tokens)
	return svc, users, refresh, tokens
}

func mustRegister(t *testing.T, svc *Service, login, password string) string {
	t.Helper()
	u, err := svc.Register(context.Background(), login, password)
	if err != nil {
		t.Fatalf("register %s: %v", login, err)
	}
	return u.ID
}
