// Package cmd provides the CLI commands for briefly.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/adapter/outbound/api"
	"github.com/brieflyhq/briefly/internal/adapter/outbound/credstore"
	"github.com/brieflyhq/briefly/internal/adapter/outbound/history"
	"github.com/brieflyhq/briefly/internal/config"
	"github.com/brieflyhq/briefly/internal/domain/routing"
	"github.com/brieflyhq/briefly/internal/service"
)

var cfgFile string
var serverAddr string

// errReported signals a failure whose message was already shown to the user.
var errReported = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:   "briefly",
	Short: "Briefly - AI text summarizer client",
	Long: `Briefly is the command line client for the Briefly summarizer service.

It manages your login session, submits text or documents for summarization,
and keeps a local log of completed summaries. Admin accounts can inspect
service-wide usage and manage registered users.

Quick start:
  1. Create an account:  briefly register
  2. Log in:             briefly login
  3. Summarize:          briefly summarize "some long text"

Configuration:
  Config is loaded from briefly.yaml in the current directory,
  $HOME/.briefly/, or /etc/briefly/.

  Environment variables can override config values with the BRIEFLY_ prefix.
  Example: BRIEFLY_SERVER_ADDR=http://summarizer.internal:8080

Commands:
  register    Create an account
  login       Log in and store the session
  logout      Log out and clear the stored session
  status      Show the current session and configuration
  summarize   Summarize text or a document
  history     Show locally recorded summaries
  admin       Admin dashboard and user management
  config      Manage the configuration file
  version     Print version information`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./briefly.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "backend address (overrides config)")
}

func initConfig() {
	config.InitViper(cfgFile)
}

// app holds the wired-up components a command needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	notifier *terminalNotifier
	store    *credstore.FileStore
	client   *api.Client
	sessions *service.SessionService

	stopTracing func(context.Context) error
}

// deferredTokenSource breaks the construction cycle between the API client
// and the session service: the client reads tokens through it, and the
// session service is attached right after both exist.
type deferredTokenSource struct {
	sessions *service.SessionService
}

func (d *deferredTokenSource) Token() (string, bool) {
	if d.sessions == nil {
		return "", false
	}
	return d.sessions.Token()
}

// newApp loads configuration and wires the client, credential store, and
// session state machine.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if serverAddr != "" {
		cfg.Server.Addr = serverAddr
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	if file := config.ConfigFileUsed(); file != "" {
		logger.Debug("loaded config", "file", file)
	}

	stopTracing, err := setupTracing(cfg.Trace)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	store := credstore.NewFileStore(cfg.Storage.CredentialsFile, logger)
	notifier := newTerminalNotifier()

	source := &deferredTokenSource{}
	client := api.NewClient(
		api.WithBaseURL(cfg.Server.Addr),
		api.WithBasePath(cfg.Server.BasePath),
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithTokenSource(source),
		api.WithLogger(logger),
	)

	sessions := service.NewSessionService(store, client, notifier, logger)
	source.sessions = sessions

	return &app{
		cfg:         cfg,
		logger:      logger,
		notifier:    notifier,
		store:       store,
		client:      client,
		sessions:    sessions,
		stopTracing: stopTracing,
	}, nil
}

// close flushes tracing. Safe to call on a partially constructed app.
func (a *app) close(ctx context.Context) {
	if a.stopTracing != nil {
		if err := a.stopTracing(ctx); err != nil {
			a.logger.Warn("failed to flush traces", "error", err)
		}
	}
}

// openHistory opens the local summary log. A failure is non-fatal: the
// command proceeds without local recording.
func (a *app) openHistory() *history.Store {
	hist, err := history.Open(a.cfg.Storage.HistoryFile)
	if err != nil {
		a.logger.Warn("local history unavailable", "path", a.cfg.Storage.HistoryFile, "error", err)
		return nil
	}
	return hist
}

// summarizeService builds the summarize service with the given history store.
func (a *app) summarizeService(hist *history.Store) *service.SummarizeService {
	return service.NewSummarizeService(a.client, hist, a.sessions, service.SummarizeConfig{
		CacheTTL:      a.cfg.CacheTTL(),
		ClearOnReject: a.cfg.Auth.ClearOnReject,
	}, a.logger)
}

// requireDestination runs the navigation guard for dest and, when access is
// denied, tells the user what to do based on where they would be redirected.
func (a *app) requireDestination(dest string) bool {
	decision := routing.Evaluate(dest, a.sessions.Current())
	if decision.Allowed {
		return true
	}
	switch decision.Redirect {
	case routing.DestRegister:
		a.notifier.Error("You need an account to summarize. Run 'briefly register' first.")
	case routing.DestLogin:
		a.notifier.Error("This requires an ADMIN login. Run 'briefly login'.")
	default:
		a.notifier.Error("Not available.")
	}
	return false
}

// reportRequestError prints the user-facing message for a failed backend call.
func (a *app) reportRequestError(err error) {
	var se *api.ServerError
	switch {
	case errors.Is(err, api.ErrAuthMissing):
		a.notifier.Error(api.AuthMissingMessage)
	case errors.Is(err, api.ErrAuthRejected):
		a.notifier.Error(api.AuthRejectedMessage)
	case errors.As(err, &se):
		a.notifier.Error(se.Message)
	case errors.Is(err, api.ErrNetwork):
		a.notifier.Error("Network error. Please try again.")
	case errors.Is(err, api.ErrMalformedResponse):
		a.notifier.Error("Unexpected response from server. Please try again.")
	default:
		a.notifier.Error(err.Error())
	}
}

// parseLogLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for unrecognized values.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
