package auth

import (
	"context"
	"testing"
)

func TestChangePassword_WrongCurrent_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	id := mustRegister(t, svc, "alice", "secret1")

	err := svc.ChangePassword(context.Background(), id, "wrong99", "another2")
	requireErrCode(t, err, "INVALID_PASSWORD")
}

func TestChangePassword_WeakNew_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	id := mustRegister(t, svc, "alice", "secret1")

	err := svc.ChangePassword(context.Background(), id, "secret1", "short")
	requireErrCode(t, err, "INVALID_PASSWORD")
}

func TestChangePassword_Success_OldStopsWorking(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)
	id := mustRegister(t, svc, "alice", "secret1")

	if err := svc.ChangePassword(context.Background(), id, "secret1", "another2"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	_, err := svc.Login(context.Background(), "alice", "secret1")
	requireErrCode(t, err, "INVALID_CREDENTIALS")

	if _, err := svc.Login(context.Background(), "alice", "another2"); err != nil {
		t.Fatalf("new password must log in: %v", err)
	}
}

func TestDeleteAccount_RemovesUserAndRevokesToken(t *testing.T) {
	t.Parallel()

	svc, users, _, tokens := newSvcForTest(t)
	id := mustRegister(t, svc, "alice", "secret1")
	res, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), id, res.Tokens.AccessToken); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := users.GetByID(context.Background(), id); err == nil {
		t.Fatalf("user must be gone")
	}
	if !tokens.IsRevoked(res.Tokens.AccessToken) {
		t.Fatalf("access token must be blacklisted after delete")
	}
}

func TestDeleteAccount_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	err := svc.DeleteAccount(context.Background(), "no-such-id", "tok")
	requireErrCode(t, err, "USER_NOT_FOUND")
}
