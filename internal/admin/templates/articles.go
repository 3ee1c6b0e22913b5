package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwellcms/inkwell/internal/admin/routepath"
)

// ArticleRow is one row of the articles index table.
type ArticleRow struct {
	ID        string
	Title     string
	Slug      string
	Published bool
	UpdatedAt string
}

// ArticlesIndexView provides data for the articles index page.
type ArticlesIndexView struct {
	Rows    []ArticleRow
	CanAdd  bool
	Heading string
	AddText string
}

// ArticleFormView provides data for the article create and edit forms.
type ArticleFormView struct {
	Heading    string
	Action     string
	Title      string
	Slug       string
	Body       string
	Published  bool
	Errors     map[string][]string
	CanDelete  bool
	DeletePath string
	SaveText   string
	DeleteText string
}

// ArticleDeleteView provides data for the delete confirmation page.
type ArticleDeleteView struct {
	Heading    string
	Question   string
	Action     string
	CancelPath string
	DeleteText string
	CancelText string
}

// ArticlesIndex renders the articles listing.
func ArticlesIndex(view ArticlesIndexView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		addURL := ""
		if view.CanAdd {
			addURL = routepath.ArticlesCreate
		}
		if err := PageHeading(view.Heading, view.AddText, addURL).Render(ctx, w); err != nil {
			return err
		}
		if len(view.Rows) == 0 {
			_, err := io.WriteString(w, "<p class=\"empty\">No articles yet.</p>")
			return err
		}
		if _, err := io.WriteString(w, "<table class=\"listing\"><thead><tr><th>Title</th><th>Slug</th><th>Status</th><th>Updated</th></tr></thead><tbody>"); err != nil {
			return err
		}
		for _, row := range view.Rows {
			status := "Draft"
			if row.Published {
				status = "Published"
			}
			if _, err := fmt.Fprintf(w, "<tr><td><a href=\"%s\">%s</a></td><td>%s</td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(routepath.Article(row.ID)), html.EscapeString(row.Title),
				html.EscapeString(row.Slug), status, html.EscapeString(row.UpdatedAt)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>")
		return err
	})
}

// ArticleForm renders the create or edit form, including field errors.
func ArticleForm(view ArticleFormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := PageHeading(view.Heading, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<form method=\"post\" action=\"%s\">", html.EscapeString(view.Action)); err != nil {
			return err
		}
		if err := textField(w, "title", "Title", view.Title, view.Errors); err != nil {
			return err
		}
		if err := textField(w, "slug", "Slug", view.Slug, view.Errors); err != nil {
			return err
		}
		if err := textArea(w, "body", "Body", view.Body, view.Errors); err != nil {
			return err
		}
		checked := ""
		if view.Published {
			checked = " checked"
		}
		if _, err := fmt.Fprintf(w, "<label class=\"field field-checkbox\"><input type=\"checkbox\" name=\"published\" value=\"1\"%s> Published</label>", checked); err != nil {
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

// ArticleDeleteConfirm renders the delete confirmation page.
func ArticleDeleteConfirm(view ArticleDeleteView) templ.Component {
	return deleteConfirm(view.Heading, view.Question, view.Action, view.CancelPath, view.DeleteText, view.CancelText)
}

func deleteConfirm(heading, question, action, cancelPath, deleteText, cancelText string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := PageHeading(heading, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<p>%s</p><form method=\"post\" action=\"%s\"><div class=\"form-actions\"><button type=\"submit\" class=\"button-danger\">%s</button><a class=\"button\" href=\"%s\">%s</a></div></form>",
			html.EscapeString(question), html.EscapeString(action),
			html.EscapeString(deleteText), html.EscapeString(cancelPath), html.EscapeString(cancelText)); err != nil {
			return err
		}
		return nil
	})
}

func textField(w io.Writer, name, label, value string, errs map[string][]string) error {
	if _, err := fmt.Fprintf(w, "<label class=\"field\">%s<input type=\"text\" name=\"%s\" value=\"%s\"></label>",
		html.EscapeString(label), html.EscapeString(name), html.EscapeString(value)); err != nil {
		return err
	}
	return fieldErrors(w, name, errs)
}

func textArea(w io.Writer, name, label, value string, errs map[string][]string) error {
	if _, err := fmt.Fprintf(w, "<label class=\"field\">%s<textarea name=\"%s\" rows=\"12\">%s</textarea></label>",
		html.EscapeString(label), html.EscapeString(name), html.EscapeString(value)); err != nil {
		return err
	}
	return fieldErrors(w, name, errs)
}

func fieldErrors(w io.Writer, name string, errs map[string][]string) error {
	for _, text := range errs[name] {
		if _, err := fmt.Fprintf(w, "<p class=\"field-error\">%s</p>", html.EscapeString(text)); err != nil {
			return err
		}
	}
	return nil
}
