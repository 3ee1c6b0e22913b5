// Package routepath centralizes admin URL paths so handlers, templates and
// redirects resolve routes from one place.
package routepath

import "net/url"

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
)

const (
	Articles       = "/articles"
	ArticlesCreate = "/articles/create"
	ArticlesPrefix = "/articles/"
)

const (
	Redirects       = "/redirects"
	RedirectsCreate = "/redirects/create"
	RedirectsPrefix = "/redirects/"
)

// Article returns the edit page path for an article.
func Article(articleID string) string {
	return Articles + "/" + escapeSegment(articleID)
}

// ArticleDelete returns the delete confirmation path for an article.
func ArticleDelete(articleID string) string {
	return Article(articleID) + "/delete"
}

// Redirect returns the edit page path for a redirect rule.
func Redirect(redirectID string) string {
	return Redirects + "/" + escapeSegment(redirectID)
}

// RedirectDelete returns the delete confirmation path for a redirect rule.
func RedirectDelete(redirectID string) string {
	return Redirect(redirectID) + "/delete"
}

func escapeSegment(segment string) string {
	return url.PathEscape(segment)
}
