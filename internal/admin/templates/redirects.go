package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwellcms/inkwell/internal/admin/routepath"
)

// RedirectRow is one row of the redirects index table.
type RedirectRow struct {
	ID        string
	OldPath   string
	NewURL    string
	Permanent bool
}

// RedirectsIndexView provides data for the redirects index page.
type RedirectsIndexView struct {
	Rows    []RedirectRow
	CanAdd  bool
	Heading string
	AddText string
}

// RedirectFormView provides data for the redirect create and edit forms.
type RedirectFormView struct {
	Heading    string
	Action     string
	OldPath    string
	NewURL     string
	Permanent  bool
	Errors     map[string][]string
	CanDelete  bool
	DeletePath string
	SaveText   string
	DeleteText string
}

// RedirectDeleteView provides data for the delete confirmation page.
type RedirectDeleteView struct {
	Heading    string
	Question   string
	Action     string
	CancelPath string
	DeleteText string
	CancelText string
}

// RedirectsIndex renders the redirects listing.
func RedirectsIndex(view RedirectsIndexView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		addURL := ""
		if view.CanAdd {
			addURL = routepath.RedirectsCreate
		}
		if err := PageHeading(view.Heading, view.AddText, addURL).Render(ctx, w); err != nil {
			return err
		}
		if len(view.Rows) == 0 {
			_, err := io.WriteString(w, "<p class=\"empty\">No redirects yet.</p>")
			return err
		}
		if _, err := io.WriteString(w, "<table class=\"listing\"><thead><tr><th>From</th><th>To</th><th>Type</th></tr></thead><tbody>"); err != nil {
			return err
		}
		for _, row := range view.Rows {
			kind := "Temporary"
			if row.Permanent {
				kind = "Permanent"
			}
			if _, err := fmt.Fprintf(w, "<tr><td><a href=\"%s\">%s</a></td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(routepath.Redirect(row.ID)), html.EscapeString(row.OldPath),
				html.EscapeString(row.NewURL), kind); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>")
		return err
	})
}

// RedirectForm renders the create or edit form, including field errors.
func RedirectForm(view RedirectFormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := PageHeading(view.Heading, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<form method=\"post\" action=\"%s\">", html.EscapeString(view.Action)); err != nil {
			return err
		}
		if err := textField(w, "old_path", "Redirect from", view.OldPath, view.Errors); err != nil {
			return err
		}
		if err := textField(w, "new_url", "Redirect to", view.NewURL, view.Errors); err != nil {
			return err
		}
		checked := ""
		if view.Permanent {
			checked = " checked"
		}
		if _, err := fmt.Fprintf(w, "<label class=\"field field-checkbox\"><input type=\"checkbox\" name=\"permanent\" value=\"1\"%s> Permanent</label>", checked); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<div class=\"form-actions\"><button type=\"submit\">%s</button>", html.EscapeString(view.SaveText)); err != nil {
			return err
		}
		if view.CanDelete && view.DeletePath != "" {
			if _, err := fmt.Fprintf(w, "<a class=\"button button-danger\" href=\"%s\">%s</a>", html.EscapeString(view.DeletePath), html.EscapeString(view.DeleteText)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div></form>")
		return err
	})
}

// RedirectDeleteConfirm renders the delete confirmation page.
func RedirectDeleteConfirm(view RedirectDeleteView) templ.Component {
	return deleteConfirm(view.Heading, view.Question, view.Action, view.CancelPath, view.DeleteText, view.CancelText)
}
