package http_handlers

import (
	"net/http"

	"github.com/novachat/nova-chat-server/internal/application/message"
	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/logger"
	"github.com/novachat/nova-chat-server/internal/metrics"
	"github.com/novachat/nova-chat-server/internal/transport/http/dto"
	"github.com/novachat/nova-chat-server/internal/transport/http/middleware"
	"github.com/novachat/nova-chat-server/internal/transport/http/response"
)

type MessageHandler struct {
	svc *message.Service
}

func NewMessageHandler(svc *message.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Send handles POST /api/v1/messages/send
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrInvalidToken())
		return
	}

	var req dto.SendMessageRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	m, err := h.svc.Send(r.Context(), userID, req.ToLogin, req.Message)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	metrics.MessagesSentTotal.Inc()

	logger.WithCtx(r.Context()).Info().
		Str("from_user_id", m.FromUserID).
		Str("to_user_id", m.ToUserID).
		Msg("message_sent")

	response.Created(w, "Message sent successfully", dto.SendMessageResponse{
		MessageID: m.ID,
		SentAt:    m.CreatedAt,
	})
}

// List handles GET /api/v1/messages with optional unread_only,
// conversation_with, after_message_id, before_message_id and limit.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrInvalidToken())
		return
	}

	q := r.URL.Query()
	res, err := h.svc.List(r.Context(), userID, message.ListOptions{
		UnreadOnly:       q.Get("unread_only") == "true",
		ConversationWith: q.Get("conversation_with"),
		AfterMessageID:   q.Get("after_message_id"),
		BeforeMessageID:  q.Get("before_message_id"),
		Limit:            intParam(q.Get("limit"), 0),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewMessageListResponse(res))
}

// MarkRead handles POST /api/v1/messages/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrInvalidToken())
		return
	}

	var req dto.MarkReadRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.MarkRead(r.Context(), userID, req.MessageIDs)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Debug().
		Str("user_id", userID).
		Int("read_count", res.ReadCount).
		Int64("affected_count", res.AffectedCount).
		Msg("messages_marked_read")

	response.Success(w, http.StatusOK, "Messages marked as read", res)
}
