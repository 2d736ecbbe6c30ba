package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/novachat/nova-chat-server/internal/domain"
)

func newMessageMock(t *testing.T) (*MessageRepo, sqlmock.Sqlmock) {
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
	return NewMessageRepo(db), mock
}

var messageCols = []string{
	"message_id", "from_user_id", "to_user_id", "message_text", "is_read", "created_at",
	"from_login", "to_login",
}

func TestMessageRepo_Insert(t *testing.T) {
	repo, mock := newMessageMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO messages")).
		WithArgs("m1", "u1", "u2", "hello").
		WillReturnRows(sqlmock.NewRows(
			[]string{"message_id", "from_user_id", "to_user_id", "message_text", "is_read", "created_at"}).
			AddRow("m1", "u1", "u2", "hello", false, now))

	m, err := repo.Insert(context.Background(), domain.Message{
		ID: "m1", FromUserID: "u1", ToUserID: "u2", Text: "hello",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if m.ID != "m1" || m.IsRead {
		t.Errorf("message = %+v", m)
	}
}

func TestMessageRepo_ListForUser(t *testing.T) {
	repo, mock := newMessageMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY m.created_at DESC, m.message_id DESC")).
		WithArgs("u1", 50).
		WillReturnRows(sqlmock.NewRows(messageCols).
			AddRow("m2", "u2", "u1", "later", false, now, "bob", "alice").
			AddRow("m1", "u1", "u2", "earlier", true, now.Add(-time.Minute), "alice", "bob"))

	msgs, err := repo.ListForUser(context.Background(), "u1", ListQuery{Limit: 50})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if msgs[0].ID != "m2" || msgs[0].FromLogin != "bob" || msgs[0].ToLogin != "alice" {
		t.Errorf("first message = %+v", msgs[0])
	}
}

func TestMessageRepo_ListForUser_UnknownCursorEmptyWindow(t *testing.T) {
	repo, mock := newMessageMock(t)

	// cursor resolution finds nothing; the listing query never runs
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM messages")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

	msgs, err := repo.ListForUser(context.Background(), "u1", ListQuery{
		AfterMessageID: "ghost",
		Limit:          50,
	})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if msgs != nil {
		t.Errorf("expected empty window, got %+v", msgs)
	}
}

func TestMessageRepo_UnreadCount(t *testing.T) {
	repo, mock := newMessageMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.UnreadCount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if n != 3 {
		t.Errorf("unread = %d, want 3", n)
	}
}

func TestMessageRepo_MarkRead(t *testing.T) {
	repo, mock := newMessageMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages")).
		WithArgs("m1", "m2", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkRead(context.Background(), "u1", []string{"m1", "m2"})
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if n != 1 {
		t.Errorf("affected = %d, want 1", n)
	}
}

func TestMessageRepo_MarkRead_NoIDs(t *testing.T) {
	repo, _ := newMessageMock(t)

	n, err := repo.MarkRead(context.Background(), "u1", nil)
	if err != nil || n != 0 {
		t.Fatalf("MarkRead(nil) = %d, %v", n, err)
	}
}
