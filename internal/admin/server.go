package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/inkwellcms/inkwell/internal/admin/hooks"
	"github.com/inkwellcms/inkwell/internal/admin/permission"
	"github.com/inkwellcms/inkwell/internal/admin/storage/sqlite"
	"github.com/inkwellcms/inkwell/internal/platform/config"
	"github.com/inkwellcms/inkwell/internal/platform/timeouts"
)

// adminServerEnv captures startup defaults for the admin process.
type adminServerEnv struct {
	DBPath string `env:"INKWELL_ADMIN_DB_PATH"`
}

func loadAdminServerEnv() adminServerEnv {
	var cfg adminServerEnv
	_ = config.ParseEnv(&cfg)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "admin.db")
	}
	return cfg
}

// Config defines the inputs for the admin process.
type Config struct {
	HTTPAddr string
	// Policy authorizes admin actions. Nil grants everything.
	Policy permission.Policy
	// Hooks supplies extension callbacks. Nil uses the process-wide registry.
	Hooks *hooks.Registry
	// AuthConfig enables token-based authentication when set.
	AuthConfig *AuthConfig
}

// Server hosts the admin plane over its own SQLite store.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *sqlite.Store
}

// NewServer builds a configured admin server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	env := loadAdminServerEnv()
	store, err := sqlite.Open(env.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open admin store: %w", err)
	}

	hooksReg := cfg.Hooks
	if hooksReg == nil {
		hooksReg = hooks.Default()
	}

	handler := NewHandlerWithAuth(store, cfg.Policy, hooksReg, cfg.AuthConfig)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
	}, nil
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("admin listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close admin store: %v", err)
		}
	}
}
