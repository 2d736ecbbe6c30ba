package bootstrap

import (
	"context"
	"crypto/tls"
	"net/http"
	"runtime"
	"time"

	"github.com/novachat/nova-chat-server/internal/application/auth"
	"github.com/novachat/nova-chat-server/internal/application/message"
	"github.com/novachat/nova-chat-server/internal/application/user"
	"github.com/novachat/nova-chat-server/internal/config"
	"github.com/novachat/nova-chat-server/internal/infrastructure/db/postgres"
	"github.com/novachat/nova-chat-server/internal/infrastructure/security"
	"github.com/novachat/nova-chat-server/internal/logger"
	http_handlers "github.com/novachat/nova-chat-server/internal/transport/http/handlers"
	"github.com/novachat/nova-chat-server/internal/transport/http/middleware"
	"github.com/novachat/nova-chat-server/internal/transport/http/router"
)

// Options selects the config document and whether to apply schema
// migrations before serving.
type Options struct {
	ConfigPath string
	Migrate    bool
}

// Server wraps http.Server with the TLS material paths so the caller can
// start it without knowing where the certificates live.
type Server struct {
	*http.Server
	certFile string
	keyFile  string
}

func (s *Server) ListenAndServe() error {
	return s.Server.ListenAndServeTLS(s.certFile, s.keyFile)
}

func (s *Server) Addr() string { return s.Server.Addr }

const revocationSweepInterval = time.Minute

// applyThreadCap applies server.threads as an upper bound on runtime
// parallelism. GOMAXPROCS bounds the whole process, not just request
// handling, so the setting only ever lowers it; values at or above the
// current limit are left alone.
func applyThreadCap(threads int) {
	if threads > 0 && threads < runtime.GOMAXPROCS(0) {
		runtime.GOMAXPROCS(threads)
	}
}

// NewServer wires config, storage, services and transport into a ready
// HTTPS server. The returned cleanup stops background work and closes the
// pool; call it after shutdown.
func NewServer(opts Options) (*Server, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(logger.Config{
		Level:         cfg.Logging.Level,
		AccessLog:     cfg.Logging.AccessLog,
		ErrorLog:      cfg.Logging.ErrorLog,
		ConsoleOutput: cfg.Logging.ConsoleOutput,
		LogAccess:     cfg.Logging.LogAccess,
	}); err != nil {
		return nil, nil, err
	}

	applyThreadCap(cfg.Server.Threads)

	db, err := config.NewDB(cfg.Database, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	if opts.Migrate {
		if err := config.Migrate(db); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		logger.Logger.Info().Msg("schema migrations applied")
	}

	userRepo := postgres.NewUserRepo(db)
	messageRepo := postgres.NewMessageRepo(db)
	refreshRepo := postgres.NewRefreshRepo(db)

	tokens, err := security.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessTokenExpiryMinutes,
		cfg.JWT.RefreshTokenExpiryDays,
	)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// background work: revocation sweep + expired refresh rows
	bgCtx, bgCancel := context.WithCancel(context.Background())
	cleanupFns = append(cleanupFns, bgCancel)
	tokens.Revoked().StartSweeper(bgCtx, revocationSweepInterval)

	if n, err := refreshRepo.DeleteExpired(bgCtx); err != nil {
		logger.Logger.Warn().Err(err).Msg("expired refresh token cleanup failed")
	} else if n > 0 {
		logger.Logger.Info().Int64("removed", n).Msg("expired refresh tokens removed")
	}

	hasher := security.NewHasher()

	authSvc := auth.NewService(userRepo, refreshRepo, hasher, tokens)
	userSvc := user.NewService(userRepo)
	messageSvc := message.NewService(messageRepo, userRepo)

	mux, err := router.New(router.Deps{
		Health:   http_handlers.NewHealthHandler(db),
		Auth:     http_handlers.NewAuthHandler(authSvc),
		Users:    http_handlers.NewUserHandler(userSvc),
		Messages: http_handlers.NewMessageHandler(messageSvc),
		AuthMW:   middleware.Auth(tokens),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	srv := &Server{
		Server: &http.Server{
			Addr:         cfg.ListenAddr(),
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  time.Minute,
			TLSConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		certFile: cfg.SSL.CertificateFile,
		keyFile:  cfg.SSL.PrivateKeyFile,
	}

	cleanup := func() { runCleanup(cleanupFns) }
	return srv, cleanup, nil
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
