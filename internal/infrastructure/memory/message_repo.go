package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/infrastructure/db/postgres"
)

// MessageRepo is the in-memory counterpart of the postgres message repo. It
// reuses postgres.ListQuery so services see the same port either way.
type MessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
	logins   map[string]string // user_id -> login, for the joined view
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{logins: make(map[string]string)}
}

// SetLogin registers a user's login for join resolution in tests.
func (r *MessageRepo) SetLogin(userID, login string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins[userID] = login
}

func (r *MessageRepo) Insert(ctx context.Context, m domain.Message) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, m)
	return m, nil
}

func (r *MessageRepo) ListForUser(ctx context.Context, userID string, lq postgres.ListQuery) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []domain.Message
	for _, m := range r.messages {
		if m.FromUserID != userID && m.ToUserID != userID {
			continue
		}
		if lq.UnreadOnly && (m.IsRead || m.ToUserID != userID) {
			continue
		}
		if lq.ConversationWith != "" {
			other := lq.ConversationWith
			pair := (m.FromUserID == userID && m.ToUserID == other) ||
				(m.FromUserID == other && m.ToUserID == userID)
			if !pair {
				continue
			}
		}
		all = append(all, m)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if lq.AfterMessageID != "" {
		at, ok := r.createdAt(lq.AfterMessageID)
		if !ok {
			return nil, nil
		}
		all = filterCursor(all, at, lq.AfterMessageID, true)
	}
	if lq.BeforeMessageID != "" {
		at, ok := r.createdAt(lq.BeforeMessageID)
		if !ok {
			return nil, nil
		}
		all = filterCursor(all, at, lq.BeforeMessageID, false)
	}

	if lq.Limit > 0 && len(all) > lq.Limit {
		all = all[:lq.Limit]
	}

	out := make([]domain.Message, len(all))
	for i, m := range all {
		m.FromLogin = r.logins[m.FromUserID]
		m.ToLogin = r.logins[m.ToUserID]
		out[i] = m
	}
	return out, nil
}

func (r *MessageRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.ToUserID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *MessageRepo) MarkRead(ctx context.Context, recipientID string, messageIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(messageIDs))
	for _, id := range messageIDs {
		want[id] = true
	}
	var n int64
	for i := range r.messages {
		m := &r.messages[i]
		if want[m.ID] && m.ToUserID == recipientID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *MessageRepo) createdAt(messageID string) (time.Time, bool) {
	for _, m := range r.messages {
		if m.ID == messageID {
			return m.CreatedAt, true
		}
	}
	return time.Time{}, false
}

func filterCursor(in []domain.Message, at time.Time, id string, after bool) []domain.Message {
	var out []domain.Message
	for _, m := range in {
		newer := m.CreatedAt.After(at) || (m.CreatedAt.Equal(at) && m.ID > id)
		older := m.CreatedAt.Before(at) || (m.CreatedAt.Equal(at) && m.ID < id)
		if (after && newer) || (!after && older) {
			out = append(out, m)
		}
	}
	return out
}
