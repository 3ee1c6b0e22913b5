package admin

import (
	"net/http"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/message"

	"github.com/inkwellcms/inkwell/internal/admin/hooks"
	"github.com/inkwellcms/inkwell/internal/admin/i18n"
	"github.com/inkwellcms/inkwell/internal/admin/messages"
	"github.com/inkwellcms/inkwell/internal/admin/permission"
	"github.com/inkwellcms/inkwell/internal/admin/routepath"
	"github.com/inkwellcms/inkwell/internal/admin/storage"
	"github.com/inkwellcms/inkwell/internal/admin/templates"
	"github.com/inkwellcms/inkwell/internal/platform/branding"
	"github.com/inkwellcms/inkwell/internal/platform/htmx"
	"github.com/inkwellcms/inkwell/internal/platform/route"
)

// tracerName identifies admin HTTP spans.
const tracerName = "inkwell/admin"

// staticDir holds the admin CSS and JS assets served under /static/.
const staticDir = "internal/admin/static"

// Handler routes admin requests.
type Handler struct {
	store  storage.Store
	policy permission.Policy
	hooks  *hooks.Registry
}

// NewHandler builds the HTTP handler for the admin server.
//
// policy may be nil to grant every action; hooksReg may be nil to disable
// extension hooks.
func NewHandler(store storage.Store, policy permission.Policy, hooksReg *hooks.Registry) http.Handler {
	handler := &Handler{
		store:  store,
		policy: policy,
		hooks:  hooksReg,
	}
	return handler.routes()
}

// NewHandlerWithAuth builds the admin handler wrapped with token
// authentication. A nil authConfig leaves the routes unauthenticated, which
// is only appropriate for local development.
func NewHandlerWithAuth(store storage.Store, policy permission.Policy, hooksReg *hooks.Registry, authConfig *AuthConfig) http.Handler {
	handler := NewHandler(store, policy, hooksReg)
	if authConfig == nil {
		return handler
	}
	return requireAuth(handler, *authConfig)
}

func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.Dir(staticDir))))
	mux.Handle(routepath.Root, http.HandlerFunc(h.handleDashboard))
	mux.Handle(routepath.Articles, http.HandlerFunc(h.handleArticlesIndex))
	mux.Handle(routepath.ArticlesCreate, http.HandlerFunc(h.handleArticleCreate))
	mux.Handle(routepath.ArticlesPrefix, http.HandlerFunc(h.handleArticleRoutes))
	mux.Handle(routepath.Redirects, http.HandlerFunc(h.handleRedirectsIndex))
	mux.Handle(routepath.RedirectsCreate, http.HandlerFunc(h.handleRedirectCreate))
	mux.Handle(routepath.RedirectsPrefix, http.HandlerFunc(h.handleRedirectRoutes))
	return withTracing(mux)
}

// withTracing records one span per admin request.
func withTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := otel.Tracer(tracerName).Start(r.Context(), r.Method+" "+r.URL.Path)
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// localizer resolves the request language and persists explicit selections.
func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) *message.Printer {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag)
}

// renderPage writes the content component, wrapped in the page chrome for
// full loads and bare for HTMX partial updates. Queued flash messages are
// popped into the page on every render.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, printer *message.Printer, title, activePath string, content templ.Component) {
	page := templates.Page{
		Title:   title,
		Nav:     templates.DefaultNav(printer, activePath),
		Flashes: templates.FlashesFromMessages(messages.Pop(w, r)),
	}
	full := templates.FullPage(page, content)
	htmx.RenderPage(w, r, nil, full, htmx.TitleTag(title+" - "+branding.AppName))
}

// idFromPath extracts the trailing path parts after prefix, e.g.
// ("/articles/", "/articles/a-1/delete") yields ["a-1", "delete"].
func idFromPath(prefix, path string) []string {
	return route.SplitPathParts(path[len(prefix):])
}
