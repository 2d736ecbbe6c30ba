package auth

import (
	"context"
	"strings"
	"testing"
)

func TestRegister_InvalidLogin(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	for _, login := range []string{"", "ab", "has space", "таня", strings.Repeat("a", 51)} {
		_, err := svc.Register(context.Background(), login, "secret1")
		requireErrCode(t, err, "INVALID_LOGIN")
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	for _, pw := range []string{"", "short", "letters", "123456"} {
		_, err := svc.Register(context.Background(), "alice", pw)
		requireErrCode(t, err, "INVALID_PASSWORD")
	}
}

func TestRegister_DuplicateLogin(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	mustRegister(t, svc, "alice", "secret1")

	_, err := svc.Register(context.Background(), "alice", "another2")
	requireErrCode(t, err, "LOGIN_EXISTS")

	// uniqueness is judged before password strength: a taken login answers
	// LOGIN_EXISTS even when the password is also too weak
	_, err = svc.Register(context.Background(), "alice", "short")
	requireErrCode(t, err, "LOGIN_EXISTS")
}

func TestRegister_Success_StoresHashedPassword(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)

	created, err := svc.Register(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected user ID set")
	}

	stored, err := users.GetByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected user persisted: %v", err)
	}
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", stored.PasswordHash)
	}
}

func TestLogin_UnknownUser_NonEnumerating(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), "ghost", "secret1")
	requireErrCode(t, err, "INVALID_CREDENTIALS")
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	mustRegister(t, svc, "alice", "secret1")

	_, err := svc.Login(context.Background(), "alice", "wrong99")
	requireErrCode(t, err, "INVALID_CREDENTIALS")
}

func TestLogin_Success_IssuesTokenPair(t *testing.T) {
	t.Parallel()

	svc, _, refresh, tokens := newSvcForTest(t)
	mustRegister(t, svc, "alice", "secret1")

	res, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", res.Tokens)
	}
	if res.Tokens.TokenType != "Bearer" {
		t.Fatalf("expected Bearer, got %q", res.Tokens.TokenType)
	}
	if res.Tokens.ExpiresIn != int64(tokens.AccessTTL().Seconds()) {
		t.Fatalf("expires_in mismatch: %d", res.Tokens.ExpiresIn)
	}
	if refresh.Len() != 1 {
		t.Fatalf("expected one refresh record, got %d", refresh.Len())
	}

	claims, err := tokens.VerifyAndDecode(res.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("access token must verify: %v", err)
	}
	if !claims.IsAccessToken() || claims.Login != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
