package http_handlers

import (
	"net/http"
	"strconv"

	"github.com/novachat/nova-chat-server/internal/application/user"
	"github.com/novachat/nova-chat-server/internal/transport/http/dto"
	"github.com/novachat/nova-chat-server/internal/transport/http/response"
)

type UserHandler struct {
	svc *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /api/v1/users?page=&limit=&search=
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := intParam(q.Get("page"), 0)
	limit := intParam(q.Get("limit"), 0)

	res, err := h.svc.List(r.Context(), page, limit, q.Get("search"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserListResponse(res))
}

// Search handles GET /api/v1/users/search?query=&limit=
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := intParam(q.Get("limit"), 0)

	res, err := h.svc.Search(r.Context(), q.Get("query"), limit)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserSearchResponse(res))
}

// intParam parses a numeric query parameter; malformed values fall back to
// def and are clamped downstream.
func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
