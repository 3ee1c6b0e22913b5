package hooks

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegistryRunsInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()

	var calls []string
	reg.Register("before_create_article", func(*http.Request, any) http.Handler {
		calls = append(calls, "first")
		return nil
	})
	reg.Register("before_create_article", func(*http.Request, any) http.Handler {
		calls = append(calls, "second")
		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/articles/create", nil)
	if response := reg.Run("before_create_article", req, nil); response != nil {
		t.Fatal("expected no short-circuit response")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("calls = %v, want [first second]", calls)
	}
}

func TestRegistryOrderFieldWins(t *testing.T) {
	reg := NewRegistry()

	var calls []string
	reg.RegisterWithOrder("hook", 10, func(*http.Request, any) http.Handler {
		calls = append(calls, "late")
		return nil
	})
	reg.RegisterWithOrder("hook", -10, func(*http.Request, any) http.Handler {
		calls = append(calls, "early")
		return nil
	})
	reg.Register("hook", func(*http.Request, any) http.Handler {
		calls = append(calls, "default")
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	reg.Run("hook", req, nil)

	want := []string{"early", "default", "late"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestRegistryShortCircuits(t *testing.T) {
	reg := NewRegistry()

	reg.Register("hook", func(*http.Request, any) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
	})
	var laterRan bool
	reg.Register("hook", func(*http.Request, any) http.Handler {
		laterRan = true
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	response := reg.Run("hook", req, nil)
	if response == nil {
		t.Fatal("expected short-circuit response")
	}
	if laterRan {
		t.Fatal("expected later hook to be skipped")
	}

	rec := httptest.NewRecorder()
	response.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestRegistryPassesObject(t *testing.T) {
	reg := NewRegistry()

	var got any
	reg.Register("hook", func(_ *http.Request, obj any) http.Handler {
		got = obj
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	reg.Run("hook", req, "article-1")
	if got != "article-1" {
		t.Fatalf("obj = %v, want article-1", got)
	}
}

func TestRegistryIgnoresInvalidRegistrations(t *testing.T) {
	reg := NewRegistry()
	reg.Register("", func(*http.Request, any) http.Handler { return nil })
	reg.Register("hook", nil)

	if callbacks := reg.Get("hook"); callbacks != nil {
		t.Fatalf("expected no callbacks, got %d", len(callbacks))
	}

	var nilReg *Registry
	nilReg.Register("hook", func(*http.Request, any) http.Handler { return nil })
	if nilReg.Get("hook") != nil {
		t.Fatal("expected nil registry to stay empty")
	}
	if nilReg.Run("hook", httptest.NewRequest(http.MethodGet, "/", nil), nil) != nil {
		t.Fatal("expected nil registry run to return nil")
	}
}

func TestDefaultRegistry(t *testing.T) {
	name := "test_default_registry_hook"
	Register(name, func(*http.Request, any) http.Handler { return nil })
	if got := Get(name); len(got) != 1 {
		t.Fatalf("expected 1 callback, got %d", len(got))
	}
	if Default() == nil {
		t.Fatal("expected default registry")
	}
}
