package admin

import (
	"log"
	"net/http"

	"github.com/inkwellcms/inkwell/internal/admin/routepath"
	"github.com/inkwellcms/inkwell/internal/admin/templates"
)

// handleDashboard renders the landing page with per-module counts.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	printer := h.localizer(w, r)

	view := templates.DashboardView{
		Heading:        printer.Sprintf("dashboard.title"),
		ArticlesLabel:  printer.Sprintf("dashboard.articles"),
		RedirectsLabel: printer.Sprintf("dashboard.redirects"),
	}
	if h.store != nil {
		articleCount, err := h.store.CountArticles(r.Context())
		if err != nil {
			log.Printf("count articles: %v", err)
		}
		redirectCount, err := h.store.CountRedirects(r.Context())
		if err != nil {
			log.Printf("count redirects: %v", err)
		}
		view.ArticleCount = articleCount
		view.RedirectCount = redirectCount
	}

	h.renderPage(w, r, printer, view.Heading, routepath.Root, templates.Dashboard(view))
}
