package admintoken

import (
	"bytes"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/inkwellcms/inkwell/internal/admin"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("admintoken", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.TTL != 24*time.Hour {
		t.Fatalf("expected default ttl, got %v", cfg.TTL)
	}
}

func TestParseConfigSecretFromEnv(t *testing.T) {
	fs := flag.NewFlagSet("admintoken", flag.ContinueOnError)
	lookup := func(key string) (string, bool) {
		if key == "INKWELL_ADMIN_AUTH_SECRET" {
			return "env-secret", true
		}
		return "", false
	}
	cfg, err := ParseConfig(fs, nil, lookup)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Secret != "env-secret" {
		t.Fatalf("secret = %q", cfg.Secret)
	}
}

func TestRunMintsVerifiableToken(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := Config{
		UserID: "user-1",
		Roles:  "editor, admin",
		Secret: "secret",
		TTL:    time.Hour,
	}
	if err := Run(cfg, buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	token := strings.TrimSpace(buf.String())
	user, err := admin.VerifyToken(token, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("user id = %q", user.ID)
	}
	if len(user.Roles) != 2 || user.Roles[1] != "admin" {
		t.Fatalf("roles = %v", user.Roles)
	}
}

func TestRunRequiresUser(t *testing.T) {
	if err := Run(Config{Secret: "secret", TTL: time.Hour}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for missing user")
	}
}

func TestRunNilOutput(t *testing.T) {
	if err := Run(Config{UserID: "user-1", Secret: "secret"}, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}
