package auth

import (
	"context"
	"testing"
)

func TestRefresh_MissingToken(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	_, err := svc.Refresh(context.Background(), "")
	requireErrCode(t, err, "MISSING_TOKEN")
}

func TestRefresh_GarbageToken(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	requireErrCode(t, err, "INVALID_REFRESH_TOKEN")
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	mustRegister(t, svc, "alice", "secret1")
	res, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// an access token is well-signed but has the wrong type claim
	_, err = svc.Refresh(context.Background(), res.Tokens.AccessToken)
	requireErrCode(t, err, "INVALID_REFRESH_TOKEN")
}

func TestRefresh_RotatesExactlyOnce(t *testing.T) {
	t.Parallel()

	svc, _, refresh, _ := newSvcForTest(t)
	mustRegister(t, svc, "alice", "secret1")
	res, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), res.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("first refresh must succeed: %v", err)
	}
	if rotated.Tokens.RefreshToken == res.Tokens.RefreshToken {
		t.Fatalf("refresh token must rotate")
	}
	if refresh.Len() != 1 {
		t.Fatalf("old record must be replaced, got %d records", refresh.Len())
	}

	// the consumed token is gone from the store
	_, err = svc.Refresh(context.Background(), res.Tokens.RefreshToken)
	requireErrCode(t, err, "INVALID_REFRESH_TOKEN")

	// the rotated one still works
	if _, err := svc.Refresh(context.Background(), rotated.Tokens.RefreshToken); err != nil {
		t.Fatalf("rotated token must refresh: %v", err)
	}
}

func TestRefresh_DeletedUser_Invalid(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)
	id := mustRegister(t, svc, "alice", "secret1")
	res, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := users.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = svc.Refresh(context.Background(), res.Tokens.RefreshToken)
	requireErrCode(t, err, "INVALID_REFRESH_TOKEN")
}

func TestLogout_RevokesAccessAndDropsRefresh(t *testing.T) {
	t.Parallel()

	svc, _, refresh, tokens := newSvcForTest(t)
	id := mustRegister(t, svc, "alice", "secret1")
	res, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), res.Tokens.AccessToken, res.Tokens.RefreshToken, id); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if !tokens.IsRevoked(res.Tokens.AccessToken) {
		t.Fatalf("access token must be blacklisted")
	}
	if _, err := tokens.VerifyAndDecode(res.Tokens.AccessToken); err == nil {
		t.Fatalf("revoked access token must not verify")
	}
	if refresh.Len() != 0 {
		t.Fatalf("refresh record must be gone, got %d", refresh.Len())
	}

	// second logout with the same refresh token is still fine
	if err := svc.Logout(context.Background(), res.Tokens.AccessToken, res.Tokens.RefreshToken, id); err != nil {
		t.Fatalf("logout must be idempotent: %v", err)
	}
}
