package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ListQuery narrows the message listing. Cursor IDs reference existing
// messages; the repo resolves them to (created_at, message_id) pairs so the
// window follows insertion time, not UUID ordering.
type ListQuery struct {
	UnreadOnly       bool
	ConversationWith string // other user's ID; empty means no narrowing
	AfterMessageID   string
	BeforeMessageID  string
	Limit            int
}

func (r *MessageRepo) Insert(ctx context.Context, m domain.Message) (domain.Message, error) {
	const q = `
INSERT INTO messages (message_id, from_user_id, to_user_id, message_text)
VALUES ($1, $2, $3, $4)
RETURNING message_id, from_user_id, to_user_id, message_text, is_read, created_at;
`
	var out domain.Message
	err := r.db.QueryRowContext(ctx, q, m.ID, m.FromUserID, m.ToUserID, m.Text).
		Scan(&out.ID, &out.FromUserID, &out.ToUserID, &out.Text, &out.IsRead, &out.CreatedAt)
	if err != nil {
		return domain.Message{}, domain.ErrQuery(err)
	}
	return out, nil
}

// ListForUser returns messages where userID is sender or recipient, newest
// first, with sender/recipient logins joined in.
func (r *MessageRepo) ListForUser(ctx context.Context, userID string, lq ListQuery) ([]domain.Message, error) {
	args := []any{userID}
	where := "WHERE (m.from_user_id = $1 OR m.to_user_id = $1)"
	argN := 2

	if lq.UnreadOnly {
		where += " AND m.is_read = FALSE AND m.to_user_id = $1"
	}

	if lq.ConversationWith != "" {
		where += fmt.Sprintf(
			" AND ((m.from_user_id = $1 AND m.to_user_id = $%d) OR (m.from_user_id = $%d AND m.to_user_id = $1))",
			argN, argN)
		args = append(args, lq.ConversationWith)
		argN++
	}

	if lq.AfterMessageID != "" {
		at, ok, err := r.cursorFor(ctx, lq.AfterMessageID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		where += fmt.Sprintf(" AND (m.created_at, m.message_id) > ($%d, $%d)", argN, argN+1)
		args = append(args, at, lq.AfterMessageID)
		argN += 2
	}

	if lq.BeforeMessageID != "" {
		at, ok, err := r.cursorFor(ctx, lq.BeforeMessageID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		where += fmt.Sprintf(" AND (m.created_at, m.message_id) < ($%d, $%d)", argN, argN+1)
		args = append(args, at, lq.BeforeMessageID)
		argN += 2
	}

	q := fmt.Sprintf(`
SELECT m.message_id, m.from_user_id, m.to_user_id, m.message_text, m.is_read, m.created_at,
       fu.login AS from_login,
       tu.login AS to_login
FROM messages m
LEFT JOIN users fu ON m.from_user_id = fu.user_id
LEFT JOIN users tu ON m.to_user_id = tu.user_id
%s
ORDER BY m.created_at DESC, m.message_id DESC
LIMIT $%d;`, where, argN)
	args = append(args, lq.Limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrQuery(err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		var fromLogin, toLogin sql.NullString
		if err := rows.Scan(
			&m.ID, &m.FromUserID, &m.ToUserID, &m.Text, &m.IsRead, &m.CreatedAt,
			&fromLogin, &toLogin,
		); err != nil {
			return nil, domain.ErrQuery(err)
		}
		m.FromLogin = fromLogin.String
		m.ToLogin = toLogin.String
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrQuery(err)
	}
	return out, nil
}

func (r *MessageRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	const q = `
SELECT COUNT(*)
FROM messages
WHERE to_user_id = $1 AND is_read = FALSE;
`
	var n int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, domain.ErrQuery(err)
	}
	return n, nil
}

// MarkRead flips is_read for the listed messages where recipientID is the
// recipient. IDs the caller does not receive are silently skipped; the return
// value is the number of rows actually updated.
func (r *MessageRepo) MarkRead(ctx context.Context, recipientID string, messageIDs []string) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(messageIDs))
	args := make([]any, 0, len(messageIDs)+1)
	for i, id := range messageIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, id)
	}
	args = append(args, recipientID)

	q := fmt.Sprintf(`
UPDATE messages
SET is_read = TRUE
WHERE message_id IN (%s) AND to_user_id = $%d;`,
		strings.Join(placeholders, ", "), len(messageIDs)+1)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, domain.ErrQuery(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// cursorFor resolves a message ID to its creation time. ok is false when the
// message does not exist, which callers treat as an empty window.
func (r *MessageRepo) cursorFor(ctx context.Context, messageID string) (time.Time, bool, error) {
	const q = `SELECT created_at FROM messages WHERE message_id = $1;`

	var at time.Time
	err := r.db.QueryRowContext(ctx, q, messageID).Scan(&at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, domain.ErrQuery(err)
	}
	return at, true, nil
}
