package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/park-guardian/internal/campaign"
	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
	"github.com/vovakirdan/park-guardian/internal/platform/httpapi"
	"github.com/vovakirdan/park-guardian/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.guardian/host_key.
	HostKeyPath string

	// DBPath is the path to the campaign database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Game holds the round tables shared by all sessions.
	Game config.GuardianConfig

	// HTTPAddress serves the JSON leaderboard when set (e.g., ":8080").
	HTTPAddress string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.guardian/guardian.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server. Each user gets their own campaign
// record inside the shared database; completed runs go to a common table.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	shared storage.KV
	web    *http.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "guardian-ssh",
		})
	}

	srv := &SSHServer{config: cfg, logger: logger}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		// Sessions still work, their records just vanish on restart.
		logger.Warn("could not open campaign database", "error", err)
		srv.shared = storage.NewMemory()
	} else {
		srv.store = store
		srv.shared = store
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".guardian", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	if cfg.HTTPAddress != "" {
		if store == nil {
			logger.Warn("leaderboard disabled, no database")
		} else {
			srv.web = &http.Server{
				Addr:              cfg.HTTPAddress,
				Handler:           httpapi.New(store, store, logger.WithPrefix("guardian-http")),
				ReadHeaderTimeout: 5 * time.Second,
			}
		}
	}
	return srv, nil
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
}

// NewSessionGame builds the campaign for one user: records under the
// user's namespace, completed runs saved under the user's name.
func (s *SSHServer) NewSessionGame(user string, logger *log.Logger) *campaign.Game {
	opts := campaign.Options{
		Config:  s.config.Game,
		Records: campaign.NewRecords(storage.Namespace(s.shared, user), logger),
		Logger:  logger,
		Player:  user,
	}
	if s.store != nil {
		opts.Runs = s.store
	}
	return campaign.New(opts)
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	logger := s.sessionLogger(sess)
	model := NewModel(s.NewSessionGame(sess.User(), logger), cfg, logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

type sessionKey struct{}

// sessionLogger returns a logger tagged with the user and the session ID
// assigned by loggingMiddleware.
func (s *SSHServer) sessionLogger(sess ssh.Session) *log.Logger {
	logger := s.logger.With("user", sess.User())
	if id, ok := sess.Context().Value(sessionKey{}).(string); ok {
		logger = logger.With("session", id)
	}
	return logger
}

// loggingMiddleware assigns a session ID and logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		sess.Context().SetValue(sessionKey{}, uuid.NewString())
		logger := s.sessionLogger(sess)
		start := time.Now()
		logger.Info("session started", "remote", sess.RemoteAddr().String())
		next(sess)
		logger.Info("session ended",
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()
	if s.web != nil {
		s.logger.Info("serving leaderboard", "address", s.web.Addr)
		go func() {
			if err := s.web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("leaderboard error", "error", err)
			}
		}()
	}

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var webErr error
	if s.web != nil {
		webErr = s.web.Shutdown(ctx)
	}
	err := s.server.Shutdown(ctx)
	s.closeStore()
	return errors.Join(err, webErr)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
