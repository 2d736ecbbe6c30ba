package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	appCtx "github.com/novachat/nova-chat-server/internal/pkg/context"
)

var Logger zerolog.Logger

// Access is the dedicated access-log logger. It stays at Info level and is a
// no-op logger when access logging is disabled.
var Access zerolog.Logger

type Config struct {
	Level         string // trace|debug|info|warning|error|fatal
	AccessLog     string // file path, empty disables the file sink
	ErrorLog      string // file path, empty disables the file sink
	ConsoleOutput bool
	LogAccess     bool
}

// errorOnly passes only error-and-above events through to the wrapped writer,
// so the error log file never receives access or debug noise.
type errorOnly struct {
	io.Writer
}

func (w errorOnly) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.ErrorLevel {
		return len(p), nil
	}
	return w.Writer.Write(p)
}

// Init configures the package loggers from the logging section of the server
// config. It opens the configured log files in append mode and fails if any
// of them cannot be opened.
func Init(cfg Config) error {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}

	var writers []io.Writer
	if cfg.ConsoleOutput {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
	if cfg.ErrorLog != "" {
		f, err := os.OpenFile(cfg.ErrorLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open error log %q: %w", cfg.ErrorLog, err)
		}
		writers = append(writers, errorOnly{f})
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Logger().Level(level)
	zlog.Logger = Logger

	Access = zerolog.Nop()
	if cfg.LogAccess {
		var aw []io.Writer
		if cfg.ConsoleOutput {
			aw = append(aw, zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.RFC3339,
			})
		}
		if cfg.AccessLog != "" {
			f, err := os.OpenFile(cfg.AccessLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open access log %q: %w", cfg.AccessLog, err)
			}
			aw = append(aw, f)
		}
		if len(aw) > 0 {
			Access = zerolog.New(zerolog.MultiLevelWriter(aw...)).
				With().Timestamp().Logger()
		}
	}

	return nil
}

// InitWithWriter points every sink at w. Used by tests.
func InitWithWriter(w io.Writer) {
	Logger = zerolog.New(w).With().Timestamp().Logger()
	Access = Logger
	zlog.Logger = Logger
}

// WithCtx returns a child logger carrying the request id, if one is present.
// The pointer return keeps call sites chainable, mirroring zerolog.Ctx.
func WithCtx(ctx context.Context) *zerolog.Logger {
	if rid := appCtx.GetRequestID(ctx); rid != "" {
		l := Logger.With().Str("request_id", rid).Logger()
		return &l
	}
	return &Logger
}

func parseLevel(s string) (zerolog.Level, error) {
	switch s {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warning", "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}
