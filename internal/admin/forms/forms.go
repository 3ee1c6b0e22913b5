// Package forms provides per-request form binding and validation helpers
// for admin views.
//
// A form is transient: handlers decode request values into a model instance
// plus an Errors map, render the errors inline when present, and discard the
// form afterwards.
package forms

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// Errors collects validation failures keyed by field name.
type Errors map[string][]string

// Add records a failure message for field.
func (e Errors) Add(field, text string) {
	if field == "" || text == "" {
		return
	}
	e[field] = append(e[field], text)
}

// HasErrors reports whether any field failed validation.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Field returns the failure messages recorded for field.
func (e Errors) Field(field string) []string {
	return e[field]
}

// Value returns the trimmed form value for field.
func Value(r *http.Request, field string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.FormValue(field))
}

// Checkbox reports whether the named checkbox was submitted checked.
func Checkbox(r *http.Request, field string) bool {
	if r == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(r.FormValue(field))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether value is a lowercase hyphenated slug.
func ValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}

// ValidPath reports whether value is an absolute URL path without a host.
func ValidPath(value string) bool {
	if !strings.HasPrefix(value, "/") {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == "" && parsed.Path == value
}

// ValidURL reports whether value parses as an absolute http(s) URL or an
// absolute path.
func ValidURL(value string) bool {
	if ValidPath(value) {
		return true
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
