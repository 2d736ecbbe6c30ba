// Package message implements point-to-point messaging: send, inbox/outbox
// listing with cursors, and read receipts.
package message

import (
	"context"

	"github.com/google/uuid"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/infrastructure/db/postgres"
	"github.com/novachat/nova-chat-server/internal/validation"
)

const (
	ListLimitDefault = 50
	ListLimitMax     = 200
)

type Repo interface {
	Insert(ctx context.Context, m domain.Message) (domain.Message, error)
	ListForUser(ctx context.Context, userID string, lq postgres.ListQuery) ([]domain.Message, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, recipientID string, messageIDs []string) (int64, error)
}

// UserResolver maps a recipient login to an account.
type UserResolver interface {
	GetByLogin(ctx context.Context, login string) (domain.User, error)
}

type Service struct {
	messages Repo
	users    UserResolver
}

func NewService(messages Repo, users UserResolver) *Service {
	return &Service{messages: messages, users: users}
}

// Send validates and persists one message. The text is sanitized first; the
// length ceiling applies to the sanitized form.
func (s *Service) Send(ctx context.Context, fromUserID, toLogin, text string) (domain.Message, error) {
	cleaned := validation.SecurityClean(text)
	if cleaned == "" {
		return domain.Message{}, domain.ErrEmptyMessage()
	}
	if len(cleaned) > validation.MaxMessageLen {
		return domain.Message{}, domain.ErrMessageTooLong(validation.MaxMessageLen)
	}

	recipient, err := s.users.GetByLogin(ctx, validation.SecurityClean(toLogin))
	if err != nil {
		return domain.Message{}, err
	}
	if recipient.ID == fromUserID {
		return domain.Message{}, domain.ErrSelfMessage()
	}

	return s.messages.Insert(ctx, domain.Message{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   recipient.ID,
		Text:       cleaned,
	})
}

// ListOptions narrows the listing; zero values mean no narrowing.
type ListOptions struct {
	UnreadOnly       bool
	ConversationWith string
	AfterMessageID   string
	BeforeMessageID  string
	Limit            int
}

// ListMeta describes the returned batch, not the whole mailbox.
type ListMeta struct {
	TotalCount    int    `json:"total_count"`
	UnreadCount   int    `json:"unread_count"`
	HasMore       bool   `json:"has_more"`
	LastMessageID string `json:"last_message_id,omitempty"`
}

type ListResult struct {
	Messages []domain.Message
	Meta     ListMeta
}

// List returns messages where the user is sender or recipient, newest first.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) (ListResult, error) {
	limit := opts.Limit
	switch {
	case limit == 0:
		limit = ListLimitDefault
	case limit < 1:
		limit = 1
	case limit > ListLimitMax:
		limit = ListLimitMax
	}

	msgs, err := s.messages.ListForUser(ctx, userID, postgres.ListQuery{
		UnreadOnly:       opts.UnreadOnly,
		ConversationWith: opts.ConversationWith,
		AfterMessageID:   opts.AfterMessageID,
		BeforeMessageID:  opts.BeforeMessageID,
		Limit:            limit,
	})
	if err != nil {
		return ListResult{}, err
	}

	unread, err := s.messages.UnreadCount(ctx, userID)
	if err != nil {
		return ListResult{}, err
	}

	meta := ListMeta{
		TotalCount:  len(msgs),
		UnreadCount: unread,
		HasMore:     len(msgs) == limit,
	}
	if len(msgs) > 0 {
		meta.LastMessageID = msgs[len(msgs)-1].ID
	}
	return ListResult{Messages: msgs, Meta: meta}, nil
}

type MarkReadResult struct {
	// ReadCount mirrors the request cardinality regardless of how many rows
	// actually changed; clients key off it.
	ReadCount int `json:"read_count"`
	// AffectedCount is the number of rows the update really touched.
	AffectedCount int64 `json:"affected_count"`
}

// MarkRead flips read receipts for messages addressed to the caller. IDs the
// caller does not receive are silently skipped.
func (s *Service) MarkRead(ctx context.Context, userID string, messageIDs []string) (MarkReadResult, error) {
	if len(messageIDs) == 0 {
		return MarkReadResult{}, domain.ErrEmptyMessageIDs()
	}

	affected, err := s.messages.MarkRead(ctx, userID, messageIDs)
	if err != nil {
		return MarkReadResult{}, err
	}
	return MarkReadResult{ReadCount: len(messageIDs), AffectedCount: affected}, nil
}
