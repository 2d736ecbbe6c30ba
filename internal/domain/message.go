package domain

import (
	"time"

	"github.com/novachat/nova-chat-server/internal/validation"
)

// Message is a point-to-point message. FromLogin/ToLogin are display-only
// enrichments joined at read time; they are not stored on the row.
type Message struct {
	ID         string
	FromUserID string
	ToUserID   string
	FromLogin  string
	ToLogin    string
	Text       string
	IsRead     bool
	CreatedAt  time.Time
}

// Valid reports whether the persisted-message invariants hold: both endpoints
// are well-formed and distinct, and the text is within bounds.
func (m Message) Valid() bool {
	if !validation.UUIDValid(m.ID) ||
		!validation.UUIDValid(m.FromUserID) ||
		!validation.UUIDValid(m.ToUserID) {
		return false
	}
	if m.FromUserID == m.ToUserID {
		return false
	}
	return validation.MessageTextValid(m.Text)
}
