package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagQueryParamWins(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})

	tag, persist := ResolveTag(req)
	if tag != language.BrazilianPortuguese {
		t.Fatalf("tag = %v, want pt-BR", tag)
	}
	if !persist {
		t.Fatal("expected query param selection to request persistence")
	}
}

func TestResolveTagCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})

	tag, persist := ResolveTag(req)
	if tag != language.BrazilianPortuguese {
		t.Fatalf("tag = %v, want pt-BR", tag)
	}
	if persist {
		t.Fatal("cookie selection should not re-persist")
	}
}

func TestResolveTagAcceptLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")

	tag, _ := ResolveTag(req)
	if tag != language.BrazilianPortuguese {
		t.Fatalf("tag = %v, want pt-BR", tag)
	}
}

func TestResolveTagDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "nil request", req: nil},
		{name: "no hints", req: httptest.NewRequest(http.MethodGet, "/", nil)},
		{name: "unknown lang param", req: httptest.NewRequest(http.MethodGet, "/?lang=tlh", nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tag, persist := ResolveTag(tc.req)
			if tag != language.English {
				t.Fatalf("tag = %v, want en", tag)
			}
			if persist {
				t.Fatal("default selection should not persist")
			}
		})
	}
}

func TestSetLanguageCookie(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.BrazilianPortuguese)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookie = %s=%s", cookies[0].Name, cookies[0].Value)
	}
}

func TestPrinterUsesTranslations(t *testing.T) {
	t.Parallel()

	if got := Printer(language.BrazilianPortuguese).Sprintf("nav.articles"); got != "Artigos" {
		t.Fatalf("pt-BR nav.articles = %q", got)
	}
	if got := Printer(language.English).Sprintf("nav.articles"); got != "Articles" {
		t.Fatalf("en nav.articles = %q", got)
	}
}

func TestBuildLanguageOptions(t *testing.T) {
	t.Parallel()

	options := BuildLanguageOptions(language.BrazilianPortuguese)
	if len(options) != len(Supported()) {
		t.Fatalf("options = %d, want %d", len(options), len(Supported()))
	}
	var active int
	for _, option := range options {
		if option.Active {
			active++
			if option.Tag != "pt-BR" {
				t.Fatalf("active tag = %q, want pt-BR", option.Tag)
			}
		}
	}
	if active != 1 {
		t.Fatalf("active count = %d, want 1", active)
	}
}

func TestLanguageURL(t *testing.T) {
	t.Parallel()

	got := LanguageURL("/articles", "page=2", "pt-BR")
	want := "/articles?lang=pt-BR&page=2"
	if got != want {
		t.Fatalf("LanguageURL = %q, want %q", got, want)
	}
}
