// Package admin wires configuration and startup for the admin process.
package admin

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/inkwellcms/inkwell/internal/admin"
	"github.com/inkwellcms/inkwell/internal/admin/permission"
	"github.com/inkwellcms/inkwell/internal/platform/otel"
)

const defaultHTTPAddr = ":8080"

// serviceName identifies the admin process in telemetry.
const serviceName = "inkwell-admin"

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr   string
	AuthSecret string
	LoginURL   string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		HTTPAddr:   envOrDefault(lookup, "INKWELL_ADMIN_ADDR", defaultHTTPAddr),
		AuthSecret: envOrDefault(lookup, "INKWELL_ADMIN_AUTH_SECRET", ""),
		LoginURL:   envOrDefault(lookup, "INKWELL_ADMIN_LOGIN_URL", "/login"),
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.LoginURL, "login-url", cfg.LoginURL, "URL unauthenticated users are sent to")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the admin server.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, serviceName)
	if err != nil {
		log.Printf("tracing setup: %v", err)
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Printf("tracing shutdown: %v", err)
			}
		}()
	}

	serverCfg := admin.Config{
		HTTPAddr: cfg.HTTPAddr,
		Policy:   defaultPolicy(),
	}
	if strings.TrimSpace(cfg.AuthSecret) != "" {
		serverCfg.AuthConfig = &admin.AuthConfig{
			Secret:   cfg.AuthSecret,
			LoginURL: cfg.LoginURL,
		}
	} else {
		log.Printf("INKWELL_ADMIN_AUTH_SECRET is not set; admin routes are unauthenticated")
	}

	server, err := admin.NewServer(serverCfg)
	if err != nil {
		return fmt.Errorf("init admin server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve admin: %w", err)
	}
	return nil
}

// defaultPolicy grants editors content changes and reserves deletion for
// administrators.
func defaultPolicy() permission.Policy {
	return permission.RolePolicy{Grants: map[string][]string{
		"add":    {"editor", "admin"},
		"change": {"editor", "admin"},
		"delete": {"admin"},
	}}
}

func envOrDefault(lookup EnvLookup, key, fallback string) string {
	if lookup == nil {
		return fallback
	}
	if value, ok := lookup(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
