// Package admintoken mints signed login tokens for the admin plane.
package admintoken

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/inkwellcms/inkwell/internal/admin"
)

// Config holds configuration for admin token generation.
type Config struct {
	UserID string
	Roles  string
	Secret string
	TTL    time.Duration
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{TTL: 24 * time.Hour}
	if lookup != nil {
		if secret, ok := lookup("INKWELL_ADMIN_AUTH_SECRET"); ok {
			cfg.Secret = strings.TrimSpace(secret)
		}
	}

	fs.StringVar(&cfg.UserID, "user", cfg.UserID, "user ID for the token subject")
	fs.StringVar(&cfg.Roles, "roles", cfg.Roles, "comma-separated roles, e.g. editor,admin")
	fs.StringVar(&cfg.Secret, "secret", cfg.Secret, "signing secret (default: INKWELL_ADMIN_AUTH_SECRET)")
	fs.DurationVar(&cfg.TTL, "ttl", cfg.TTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run mints the token and writes it to out.
func Run(cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}

	token, err := admin.MintToken(cfg.UserID, splitRoles(cfg.Roles), cfg.Secret, cfg.TTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func splitRoles(value string) []string {
	parts := strings.Split(value, ",")
	roles := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		roles = append(roles, trimmed)
	}
	return roles
}
