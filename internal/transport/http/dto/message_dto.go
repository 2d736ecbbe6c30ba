package dto

import (
	"time"

	"github.com/novachat/nova-chat-server/internal/application/message"
	"github.com/novachat/nova-chat-server/internal/domain"
)

type SendMessageRequest struct {
	ToLogin string `json:"to_login"`
	Message string `json:"message"`
}

func (r *SendMessageRequest) Validate() error {
	if missing := missingOf(map[string]string{"to_login": r.ToLogin, "message": r.Message}); missing != "" {
		return domain.ErrMissingFields(missing)
	}
	return nil
}

type MarkReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}

func (r *MarkReadRequest) Validate() error {
	if len(r.MessageIDs) == 0 {
		return domain.ErrEmptyMessageIDs()
	}
	return nil
}

type SendMessageResponse struct {
	MessageID string    `json:"message_id"`
	SentAt    time.Time `json:"sent_at"`
}

// MessageView is one element of the listing. The creation time is keyed
// "timestamp" on the wire.
type MessageView struct {
	MessageID   string    `json:"message_id"`
	FromUserID  string    `json:"from_user_id"`
	ToUserID    string    `json:"to_user_id"`
	FromLogin   string    `json:"from_login"`
	ToLogin     string    `json:"to_login"`
	MessageText string    `json:"message_text"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"is_read"`
}

type MessageListResponse struct {
	Messages []MessageView    `json:"messages"`
	Meta     message.ListMeta `json:"meta"`
}

func NewMessageListResponse(res message.ListResult) MessageListResponse {
	views := make([]MessageView, 0, len(res.Messages))
	for _, m := range res.Messages {
		views = append(views, MessageView{
			MessageID:   m.ID,
			FromUserID:  m.FromUserID,
			ToUserID:    m.ToUserID,
			FromLogin:   m.FromLogin,
			ToLogin:     m.ToLogin,
			MessageText: m.Text,
			Timestamp:   m.CreatedAt,
			IsRead:      m.IsRead,
		})
	}
	return MessageListResponse{Messages: views, Meta: res.Meta}
}
