package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/inkwellcms/inkwell/internal/admin/routepath"
	"github.com/inkwellcms/inkwell/internal/platform/branding"
)

// htmxScriptURL loads the HTMX client from its pinned CDN build.
const htmxScriptURL = "https://unpkg.com/htmx.org@1.9.12/dist/htmx.min.js"

// NavItem is one entry in the admin sidebar.
type NavItem struct {
	Label  string
	URL    string
	Active bool
}

// Page carries the chrome shared by every admin page.
type Page struct {
	// Title is the page title without the application suffix.
	Title string
	// Nav is the sidebar navigation; empty renders no sidebar.
	Nav []NavItem
	// Flashes are the queued notifications popped for this render.
	Flashes []Flash
}

// DefaultNav returns the standard sidebar with activePath highlighted.
func DefaultNav(printer *message.Printer, activePath string) []NavItem {
	return []NavItem{
		{Label: printer.Sprintf("nav.dashboard"), URL: routepath.Root, Active: activePath == routepath.Root},
		{Label: printer.Sprintf("nav.articles"), URL: routepath.Articles, Active: activePath == routepath.Articles},
		{Label: printer.Sprintf("nav.redirects"), URL: routepath.Redirects, Active: activePath == routepath.Redirects},
	}
}

// FullPage wraps content in the document shell. The content component is
// rendered inside <main> so fragment extraction can serve it alone.
func FullPage(page Page, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := page.Title
		if title == "" {
			title = branding.AppName
		} else {
			title = title + " - " + branding.AppName
		}
		if _, err := fmt.Fprintf(w, "<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title><link rel=\"stylesheet\" href=\"%scss/admin.css\"><script src=\"%s\" defer></script></head><body>", html.EscapeString(title), routepath.StaticPrefix, htmxScriptURL); err != nil {
			return err
		}
		if err := renderNav(w, page.Nav); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<main hx-boost=\"true\">"); err != nil {
			return err
		}
		if err := FlashList(page.Flashes).Render(ctx, w); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

func renderNav(w io.Writer, items []NavItem) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "<nav aria-label=\"%s\"><ul>", html.EscapeString(branding.AppName)); err != nil {
		return err
	}
	for _, item := range items {
		class := ""
		if item.Active {
			class = " class=\"active\" aria-current=\"page\""
		}
		if _, err := fmt.Fprintf(w, "<li><a href=\"%s\"%s>%s</a></li>", html.EscapeString(item.URL), class, html.EscapeString(item.Label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ul></nav>")
	return err
}

// PageHeading renders the page title with an optional primary action link.
func PageHeading(title, actionLabel, actionURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<header class=\"page-heading\"><h1>%s</h1>", html.EscapeString(title)); err != nil {
			return err
		}
		if actionLabel != "" && actionURL != "" {
			if _, err := fmt.Fprintf(w, "<a class=\"button\" href=\"%s\">%s</a>", html.EscapeString(actionURL), html.EscapeString(actionLabel)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</header>")
		return err
	})
}
