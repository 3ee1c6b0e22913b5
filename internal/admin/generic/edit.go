package generic

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwellcms/inkwell/internal/admin/forms"
	"github.com/inkwellcms/inkwell/internal/admin/messages"
	"github.com/inkwellcms/inkwell/internal/admin/storage"
)

// EditView renders an edit form for an existing instance and persists
// submissions.
type EditView[T any] struct {
	Config
	// PermissionRequired defaults to "change".
	PermissionRequired string
	// Get loads the instance being edited.
	Get func(ctx context.Context, id string) (T, error)
	// Decode binds and validates the submitted form over the loaded instance.
	Decode func(r *http.Request, current T) (T, forms.Errors)
	// Save persists the validated instance. Callers wire this to the store,
	// or override it to add custom save logic.
	Save func(ctx context.Context, item T) (T, error)
	// ID returns the instance's identifier for URL resolution.
	ID func(item T) string
	// Display returns the name interpolated into flash messages.
	Display func(item T) string
	// SuccessFormat is the success flash. Empty means no success message.
	SuccessFormat string
	// ErrorMessage is the error flash shown on validation failure.
	ErrorMessage string
	// Render writes the form page.
	Render func(w http.ResponseWriter, r *http.Request, page FormPage[T])
}

// Handle serves the edit form for the instance identified by id.
func (v *EditView[T]) Handle(w http.ResponseWriter, r *http.Request, id string) {
	if v == nil || v.Get == nil || v.Decode == nil || v.Save == nil || v.Render == nil {
		http.NotFound(w, r)
		return
	}

	action := v.PermissionRequired
	if action == "" {
		action = ActionChange
	}
	if !v.allowed(r, action) {
		forbidden(w)
		return
	}

	current, err := v.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, "load "+v.Resource, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		v.Render(w, r, v.formPage(r, current, forms.Errors{}))
	case http.MethodPost:
		v.handleSubmit(w, r, current)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (v *EditView[T]) handleSubmit(w http.ResponseWriter, r *http.Request, current T) {
	if v.runHook(w, r, "before", "edit", current) {
		return
	}

	item, errs := v.Decode(r, current)
	if errs.HasErrors() {
		if v.ErrorMessage != "" {
			messages.Error(w, r, v.ErrorMessage)
		}
		v.Render(w, r, v.formPage(r, item, errs))
		return
	}

	saved, err := v.Save(r.Context(), item)
	if err != nil {
		internalError(w, "update "+v.Resource, err)
		return
	}

	if v.runHook(w, r, "after", "edit", saved) {
		return
	}

	var buttons []messages.Button
	if v.EditPath != nil && v.ID != nil {
		buttons = append(buttons, messages.Button{URL: v.EditPath(v.ID(saved)), Label: EditButtonLabel})
	}
	successFlash(w, r, v.SuccessFormat, v.displayName(saved), buttons...)
	v.redirectToIndex(w, r)
}

func (v *EditView[T]) formPage(r *http.Request, item T, errs forms.Errors) FormPage[T] {
	page := FormPage[T]{Item: item, Errors: errs}
	page.CanDelete = v.allowed(r, ActionDelete)
	if page.CanDelete && v.DeletePath != nil && v.ID != nil {
		page.DeletePath = v.DeletePath(v.ID(item))
	}
	return page
}

func (v *EditView[T]) displayName(item T) string {
	if v.Display == nil {
		return ""
	}
	return v.Display(item)
}
