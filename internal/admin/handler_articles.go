package admin

import (
	"net/http"

	"golang.org/x/text/message"

	"github.com/inkwellcms/inkwell/internal/admin/forms"
	"github.com/inkwellcms/inkwell/internal/admin/generic"
	"github.com/inkwellcms/inkwell/internal/admin/routepath"
	"github.com/inkwellcms/inkwell/internal/admin/storage"
	"github.com/inkwellcms/inkwell/internal/admin/templates"
	"github.com/inkwellcms/inkwell/internal/platform/route"
)

// articleConfig builds the view configuration shared by all article views.
func (h *Handler) articleConfig() generic.Config {
	return generic.Config{
		Resource:   "article",
		Policy:     h.policy,
		Hooks:      h.hooks,
		IndexPath:  routepath.Articles,
		CreatePath: routepath.ArticlesCreate,
		EditPath:   routepath.Article,
		DeletePath: routepath.ArticleDelete,
	}
}

func (h *Handler) handleArticlesIndex(w http.ResponseWriter, r *http.Request) {
	printer := h.localizer(w, r)
	view := &generic.IndexView[storage.Article]{
		Config: h.articleConfig(),
		List:   h.store.ListArticles,
		Render: func(w http.ResponseWriter, r *http.Request, page generic.IndexPage[storage.Article]) {
			rows := make([]templates.ArticleRow, 0, len(page.Items))
			for _, article := range page.Items {
				rows = append(rows, templates.ArticleRow{
					ID:        article.ID,
					Title:     article.Title,
					Slug:      article.Slug,
					Published: article.Published,
					UpdatedAt: article.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			heading := printer.Sprintf("nav.articles")
			h.renderPage(w, r, printer, heading, routepath.Articles, templates.ArticlesIndex(templates.ArticlesIndexView{
				Rows:    rows,
				CanAdd:  page.CanAdd,
				Heading: heading,
				AddText: printer.Sprintf("action.add_article"),
			}))
		},
	}
	view.Handle(w, r)
}

func (h *Handler) handleArticleCreate(w http.ResponseWriter, r *http.Request) {
	printer := h.localizer(w, r)
	view := &generic.CreateView[storage.Article]{
		Config: h.articleConfig(),
		Decode: func(r *http.Request) (storage.Article, forms.Errors) {
			return decodeArticleForm(r, storage.Article{})
		},
		Save:          h.store.CreateArticle,
		ID:            func(article storage.Article) string { return article.ID },
		Display:       func(article storage.Article) string { return article.Title },
		SuccessFormat: "Article %q created.",
		ErrorMessage:  "The article could not be created due to errors.",
		Render:        h.renderArticleForm(printer, "New article", routepath.ArticlesCreate),
	}
	view.Handle(w, r)
}

// handleArticleRoutes dispatches /articles/{id} and /articles/{id}/delete.
func (h *Handler) handleArticleRoutes(w http.ResponseWriter, r *http.Request) {
	if route.RedirectTrailingSlash(w, r) {
		return
	}
	parts := idFromPath(routepath.ArticlesPrefix, r.URL.Path)
	switch {
	case len(parts) == 1:
		h.handleArticleEdit(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "delete":
		h.handleArticleDelete(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleArticleEdit(w http.ResponseWriter, r *http.Request, articleID string) {
	printer := h.localizer(w, r)
	view := &generic.EditView[storage.Article]{
		Config: h.articleConfig(),
		Get:    h.store.GetArticle,
		Decode: func(r *http.Request, current storage.Article) (storage.Article, forms.Errors) {
			return decodeArticleForm(r, current)
		},
		Save:          h.store.UpdateArticle,
		ID:            func(article storage.Article) string { return article.ID },
		Display:       func(article storage.Article) string { return article.Title },
		SuccessFormat: "Article %q updated.",
		ErrorMessage:  "The article could not be saved due to errors.",
		Render:        h.renderArticleForm(printer, "Editing article", routepath.Article(articleID)),
	}
	view.Handle(w, r, articleID)
}

func (h *Handler) handleArticleDelete(w http.ResponseWriter, r *http.Request, articleID string) {
	printer := h.localizer(w, r)
	view := &generic.DeleteView[storage.Article]{
		Config:        h.articleConfig(),
		Get:           h.store.GetArticle,
		Delete:        h.store.DeleteArticle,
		ID:            func(article storage.Article) string { return article.ID },
		Display:       func(article storage.Article) string { return article.Title },
		SuccessFormat: "Article %q deleted.",
		Render: func(w http.ResponseWriter, r *http.Request, page generic.DeletePage[storage.Article]) {
			heading := "Delete article"
			h.renderPage(w, r, printer, heading, routepath.Articles, templates.ArticleDeleteConfirm(templates.ArticleDeleteView{
				Heading:    heading,
				Question:   printer.Sprintf("confirm.delete_question", "article"),
				Action:     routepath.ArticleDelete(page.Item.ID),
				CancelPath: routepath.Article(page.Item.ID),
				DeleteText: printer.Sprintf("action.delete"),
				CancelText: printer.Sprintf("action.cancel"),
			}))
		},
	}
	view.Handle(w, r, articleID)
}

func (h *Handler) renderArticleForm(printer *message.Printer, heading, action string) func(http.ResponseWriter, *http.Request, generic.FormPage[storage.Article]) {
	return func(w http.ResponseWriter, r *http.Request, page generic.FormPage[storage.Article]) {
		h.renderPage(w, r, printer, heading, routepath.Articles, templates.ArticleForm(templates.ArticleFormView{
			Heading:    heading,
			Action:     action,
			Title:      page.Item.Title,
			Slug:       page.Item.Slug,
			Body:       page.Item.Body,
			Published:  page.Item.Published,
			Errors:     page.Errors,
			CanDelete:  page.CanDelete,
			DeletePath: page.DeletePath,
			SaveText:   printer.Sprintf("action.save"),
			DeleteText: printer.Sprintf("action.delete"),
		}))
	}
}

// decodeArticleForm binds and validates article form fields over base.
func decodeArticleForm(r *http.Request, base storage.Article) (storage.Article, forms.Errors) {
	errs := forms.Errors{}

	base.Title = forms.Value(r, "title")
	if base.Title == "" {
		errs.Add("title", "Title is required.")
	}

	base.Slug = forms.Value(r, "slug")
	if base.Slug == "" {
		errs.Add("slug", "Slug is required.")
	} else if !forms.ValidSlug(base.Slug) {
		errs.Add("slug", "Slug may only contain lowercase letters, numbers and hyphens.")
	}

	base.Body = forms.Value(r, "body")
	base.Published = forms.Checkbox(r, "published")

	return base, errs
}
