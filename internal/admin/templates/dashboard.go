package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwellcms/inkwell/internal/admin/routepath"
)

// DashboardView provides data for the admin landing page.
type DashboardView struct {
	Heading        string
	ArticlesLabel  string
	RedirectsLabel string
	ArticleCount   int64
	RedirectCount  int64
}

// Dashboard renders the landing page with per-module counts.
func Dashboard(view DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := PageHeading(view.Heading, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<section class=\"stats\">"); err != nil {
			return err
		}
		if err := statCard(w, view.ArticlesLabel, view.ArticleCount, routepath.Articles); err != nil {
			return err
		}
		if err := statCard(w, view.RedirectsLabel, view.RedirectCount, routepath.Redirects); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</section>")
		return err
	})
}

func statCard(w io.Writer, label string, count int64, url string) error {
	_, err := fmt.Fprintf(w, "<a class=\"stat-card\" href=\"%s\"><span class=\"stat-count\">%d</span><span class=\"stat-label\">%s</span></a>",
		html.EscapeString(url), count, html.EscapeString(label))
	return err
}
