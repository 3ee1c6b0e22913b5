// Package i18n resolves the admin interface language and formats
// localized admin strings.
//
// The language is chosen per request from an explicit lang query
// parameter, then a preference cookie, then the Accept-Language header.
// Unknown languages fall back to English.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "ink_lang"
)

var (
	supportedTags = []language.Tag{
		language.English,
		language.BrazilianPortuguese,
	}
	matcher = language.NewMatcher(supportedTags)
)

// LanguageOption represents a supported language option in UI surfaces.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supportedTags[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ParseTag parses value into a supported tag, reporting whether the value
// named one of the supported languages.
func ParseTag(value string) (language.Tag, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Default(), false
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return Default(), false
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return Default(), false
	}
	return supportedTags[index], true
}

// MatchTags returns the best supported tag for the caller's preferences.
func MatchTags(preferred []language.Tag) language.Tag {
	if len(preferred) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// ResolveTag determines the best language tag for the request. The bool
// indicates whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags), false
		}
	}

	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// BuildLanguageOptions returns supported language options with active selection.
func BuildLanguageOptions(activeTag language.Tag) []LanguageOption {
	options := make([]LanguageOption, 0, len(supportedTags))
	for _, tag := range supportedTags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  labelForTag(tag),
			Active: tag == activeTag,
		})
	}
	return options
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

func labelForTag(tag language.Tag) string {
	switch tag {
	case language.BrazilianPortuguese:
		return "Português (Brasil)"
	case language.English:
		return "English"
	default:
		return tag.String()
	}
}
