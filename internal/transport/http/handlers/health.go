package http_handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/novachat/nova-chat-server/internal/transport/http/response"
)

type HealthHandler struct {
	db      *sql.DB
	started time.Time
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// Health handles GET /api/v1/health. Degraded storage is reported, not
// hidden; the endpoint itself stays 200 as long as the process serves.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			dbStatus = "unavailable"
		}
	}

	response.OK(w, map[string]any{
		"service":        "nova-chat-server",
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
