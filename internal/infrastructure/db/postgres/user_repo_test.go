package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/novachat/nova-chat-server/internal/domain"
)

func newMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewUserRepo(db), mock
}

var userCols = []string{"user_id", "login", "password_hash", "created_at"}

func TestUserRepo_GetByLogin(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, login, password_hash, created_at")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "alice", "hash", now))

	u, err := repo.GetByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByLogin: %v", err)
	}
	if u.ID != "u1" || u.Login != "alice" || u.PasswordHash != "hash" {
		t.Errorf("user = %+v", u)
	}
}

func TestUserRepo_GetByLogin_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, login, password_hash, created_at")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	if _, err := repo.GetByLogin(context.Background(), "ghost"); !domain.Is(err, "USER_NOT_FOUND") {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}

func TestUserRepo_GetByLogin_EmptySkipsQuery(t *testing.T) {
	repo, _ := newMock(t)
	if _, err := repo.GetByLogin(context.Background(), ""); !domain.Is(err, "USER_NOT_FOUND") {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}

func TestUserRepo_Create_DuplicateLogin(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "alice", "hash").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_login_key"`))

	_, err := repo.Create(context.Background(), domain.User{ID: "u1", Login: "alice", PasswordHash: "hash"})
	if !domain.Is(err, "LOGIN_EXISTS") {
		t.Fatalf("expected LOGIN_EXISTS, got %v", err)
	}
}

func TestUserRepo_UpdatePasswordHash_NoRow(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("ghost", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdatePasswordHash(context.Background(), "ghost", "newhash"); !domain.Is(err, "USER_NOT_FOUND") {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}

func TestUserRepo_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestUserRepo_List_WithSearch(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("%ali%", 50, 0).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u2", "alice2", "h", now).
			AddRow("u1", "alice1", "h", now.Add(-time.Minute)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WithArgs("%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	users, total, err := repo.List(context.Background(), 1, 50, "ali")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 || total != 2 {
		t.Errorf("got %d users, total %d", len(users), total)
	}
	if users[0].Login != "alice2" {
		t.Errorf("expected newest first, got %q", users[0].Login)
	}
}

func TestUserRepo_Search(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY login ASC")).
		WithArgs("%bo%", 20).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u3", "bob", "h", now))

	users, err := repo.Search(context.Background(), "bo", 20)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(users) != 1 || users[0].Login != "bob" {
		t.Errorf("users = %+v", users)
	}
}
