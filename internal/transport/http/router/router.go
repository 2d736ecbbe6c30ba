package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novachat/nova-chat-server/internal/domain"
	mw "github.com/novachat/nova-chat-server/internal/transport/http/middleware"
	"github.com/novachat/nova-chat-server/internal/transport/http/response"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	DeleteAccount(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
}

type MessageHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Auth     AuthHandler
	Users    UserHandler
	Messages MessageHandler

	AuthMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.Messages == nil {
		return nil, fmt.Errorf("nil Messages handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Headers)
	r.Use(mw.HTTPLogger)
	r.Use(mw.Metrics)

	// unknown paths and methods both map to the same envelope
	notFound := func(w http.ResponseWriter, req *http.Request) {
		response.WriteError(w, req, domain.ErrEndpointNotFound())
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", deps.Health.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.Refresh)
			r.With(deps.AuthMW).Post("/logout", deps.Auth.Logout)
			r.With(deps.AuthMW).Put("/password", deps.Auth.ChangePassword)
			r.With(deps.AuthMW).Delete("/account", deps.Auth.DeleteAccount)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Get("/", deps.Users.List)
			r.Get("/search", deps.Users.Search)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Get("/", deps.Messages.List)
			r.Post("/send", deps.Messages.Send)
			r.Post("/read", deps.Messages.MarkRead)
		})
	})

	return r, nil
}
