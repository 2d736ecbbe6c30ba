package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/novachat/nova-chat-server/internal/bootstrap"
)

const version = "1.0.0"

const usage = `Usage: server [OPTIONS] [CONFIG_FILE]

Options:
  -c, --config PATH   path to the JSON config file (default "config.json")
  -m, --migrate       apply schema migrations before serving
  -h, --help          print this help and exit
  -v, --version       print the version and exit
`

// cliArgs is the parsed command line. exitCode is meaningful only when
// done is true.
type cliArgs struct {
	configPath string
	migrate    bool
	done       bool
	exitCode   int
}

func parseArgs(argv []string, stdout, stderr *os.File) cliArgs {
	args := cliArgs{configPath: "config.json"}

	for i := 0; i < len(argv); i++ {
		switch a := argv[i]; a {
		case "--help", "-h":
			fmt.Fprint(stdout, usage)
			return cliArgs{done: true, exitCode: 0}
		case "--version", "-v":
			fmt.Fprintf(stdout, "server %s\n", version)
			return cliArgs{done: true, exitCode: 0}
		case "--migrate", "-m":
			args.migrate = true
		case "--config", "-c":
			if i+1 >= len(argv) {
				fmt.Fprintf(stderr, "error: %s requires a path\n%s", a, usage)
				return cliArgs{done: true, exitCode: 1}
			}
			i++
			args.configPath = argv[i]
		default:
			if len(a) > 0 && a[0] == '-' {
				fmt.Fprintf(stderr, "error: unknown option %s\n%s", a, usage)
				return cliArgs{done: true, exitCode: 1}
			}
			args.configPath = a
		}
	}
	return args
}

// httpServer is the minimal surface Run needs; a fake satisfies it in tests.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type serverBuilder func() (httpServer, func(), error)

const shutdownTimeout = 30 * time.Second

func Run(build serverBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, cleanup, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		lg.Error().Err(err).Msg("server crashed")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}

	lg.Info().Msg("shutdown complete")
	return 0
}

func main() {
	// .env overrides are optional; a missing file is not an error
	_ = godotenv.Load()

	args := parseArgs(os.Args[1:], os.Stdout, os.Stderr)
	if args.done {
		os.Exit(args.exitCode)
	}

	build := func() (httpServer, func(), error) {
		srv, cleanup, err := bootstrap.NewServer(bootstrap.Options{
			ConfigPath: args.configPath,
			Migrate:    args.migrate,
		})
		if err != nil {
			return nil, nil, err
		}
		return srv, cleanup, nil
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(Run(build, sigCh, zlog.Logger))
}
