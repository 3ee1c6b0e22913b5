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

// redirectConfig builds the view configuration shared by all redirect views.
func (h *Handler) redirectConfig() generic.Config {
	return generic.Config{
		Resource:   "redirect",
		Policy:     h.policy,
		Hooks:      h.hooks,
		IndexPath:  routepath.Redirects,
		CreatePath: routepath.RedirectsCreate,
		EditPath:   routepath.Redirect,
		DeletePath: routepath.RedirectDelete,
	}
}

func (h *Handler) handleRedirectsIndex(w http.ResponseWriter, r *http.Request) {
	printer := h.localizer(w, r)
	view := &generic.IndexView[storage.Redirect]{
		Config: h.redirectConfig(),
		List:   h.store.ListRedirects,
		Render: func(w http.ResponseWriter, r *http.Request, page generic.IndexPage[storage.Redirect]) {
			rows := make([]templates.RedirectRow, 0, len(page.Items))
			for _, redirect := range page.Items {
				rows = append(rows, templates.RedirectRow{
					ID:        redirect.ID,
					OldPath:   redirect.OldPath,
					NewURL:    redirect.NewURL,
					Permanent: redirect.Permanent,
				})
			}
			heading := printer.Sprintf("nav.redirects")
			h.renderPage(w, r, printer, heading, routepath.Redirects, templates.RedirectsIndex(templates.RedirectsIndexView{
				Rows:    rows,
				CanAdd:  page.CanAdd,
				Heading: heading,
				AddText: printer.Sprintf("action.add_redirect"),
			}))
		},
	}
	view.Handle(w, r)
}

func (h *Handler) handleRedirectCreate(w http.ResponseWriter, r *http.Request) {
	printer := h.localizer(w, r)
	view := &generic.CreateView[storage.Redirect]{
		Config: h.redirectConfig(),
		Decode: func(r *http.Request) (storage.Redirect, forms.Errors) {
			return decodeRedirectForm(r, storage.Redirect{})
		},
		Save:          h.store.CreateRedirect,
		ID:            func(redirect storage.Redirect) string { return redirect.ID },
		Display:       func(redirect storage.Redirect) string { return redirect.OldPath },
		SuccessFormat: "Redirect %q created.",
		ErrorMessage:  "The redirect could not be created due to errors.",
		Render:        h.renderRedirectForm(printer, "New redirect", routepath.RedirectsCreate),
	}
	view.Handle(w, r)
}

// handleRedirectRoutes dispatches /redirects/{id} and /redirects/{id}/delete.
func (h *Handler) handleRedirectRoutes(w http.ResponseWriter, r *http.Request) {
	if route.RedirectTrailingSlash(w, r) {
		return
	}
	parts := idFromPath(routepath.RedirectsPrefix, r.URL.Path)
	switch {
	case len(parts) == 1:
		h.handleRedirectEdit(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "delete":
		h.handleRedirectDelete(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleRedirectEdit(w http.ResponseWriter, r *http.Request, redirectID string) {
	printer := h.localizer(w, r)
	view := &generic.EditView[storage.Redirect]{
		Config: h.redirectConfig(),
		Get:    h.store.GetRedirect,
		Decode: func(r *http.Request, current storage.Redirect) (storage.Redirect, forms.Errors) {
			return decodeRedirectForm(r, current)
		},
		Save:          h.store.UpdateRedirect,
		ID:            func(redirect storage.Redirect) string { return redirect.ID },
		Display:       func(redirect storage.Redirect) string { return redirect.OldPath },
		SuccessFormat: "Redirect %q updated.",
		ErrorMessage:  "The redirect could not be saved due to errors.",
		Render:        h.renderRedirectForm(printer, "Editing redirect", routepath.Redirect(redirectID)),
	}
	view.Handle(w, r, redirectID)
}

func (h *Handler) handleRedirectDelete(w http.ResponseWriter, r *http.Request, redirectID string) {
	printer := h.localizer(w, r)
	view := &generic.DeleteView[storage.Redirect]{
		Config:        h.redirectConfig(),
		Get:           h.store.GetRedirect,
		Delete:        h.store.DeleteRedirect,
		ID:            func(redirect storage.Redirect) string { return redirect.ID },
		Display:       func(redirect storage.Redirect) string { return redirect.OldPath },
		SuccessFormat: "Redirect %q deleted.",
		Render: func(w http.ResponseWriter, r *http.Request, page generic.DeletePage[storage.Redirect]) {
			heading := "Delete redirect"
			h.renderPage(w, r, printer, heading, routepath.Redirects, templates.RedirectDeleteConfirm(templates.RedirectDeleteView{
				Heading:    heading,
				Question:   printer.Sprintf("confirm.delete_question", "redirect"),
				Action:     routepath.RedirectDelete(page.Item.ID),
				CancelPath: routepath.Redirect(page.Item.ID),
				DeleteText: printer.Sprintf("action.delete"),
				CancelText: printer.Sprintf("action.cancel"),
			}))
		},
	}
	view.Handle(w, r, redirectID)
}

func (h *Handler) renderRedirectForm(printer *message.Printer, heading, action string) func(http.ResponseWriter, *http.Request, generic.FormPage[storage.Redirect]) {
	return func(w http.ResponseWriter, r *http.Request, page generic.FormPage[storage.Redirect]) {
		h.renderPage(w, r, printer, heading, routepath.Redirects, templates.RedirectForm(templates.RedirectFormView{
			Heading:    heading,
			Action:     action,
			OldPath:    page.Item.OldPath,
			NewURL:     page.Item.NewURL,
			Permanent:  page.Item.Permanent,
			Errors:     page.Errors,
			CanDelete:  page.CanDelete,
			DeletePath: page.DeletePath,
			SaveText:   printer.Sprintf("action.save"),
			DeleteText: printer.Sprintf("action.delete"),
		}))
	}
}

// decodeRedirectForm binds and validates redirect form fields over base.
func decodeRedirectForm(r *http.Request, base storage.Redirect) (storage.Redirect, forms.Errors) {
	errs := forms.Errors{}

	base.OldPath = forms.Value(r, "old_path")
	if base.OldPath == "" {
		errs.Add("old_path", "Redirect source path is required.")
	} else if !forms.ValidPath(base.OldPath) {
		errs.Add("old_path", "Redirect source must be an absolute path such as /old-page.")
	}

	base.NewURL = forms.Value(r, "new_url")
	if base.NewURL == "" {
		errs.Add("new_url", "Redirect target is required.")
	} else if !forms.ValidURL(base.NewURL) {
		errs.Add("new_url", "Redirect target must be an absolute path or an http(s) URL.")
	}

	base.Permanent = forms.Checkbox(r, "permanent")

	return base, errs
}
