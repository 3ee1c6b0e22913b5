package admin

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestNewServerRequiresAddr(t *testing.T) {
	if _, err := NewServer(Config{}); err == nil {
		t.Fatal("expected error for missing address")
	}
}

func TestServerLifecycle(t *testing.T) {
	t.Setenv("INKWELL_ADMIN_DB_PATH", filepath.Join(t.TempDir(), "admin.db"))

	server, err := NewServer(Config{HTTPAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("listen and serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNilServerIsSafe(t *testing.T) {
	var server *Server
	server.Close()
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error from nil server")
	}
}
