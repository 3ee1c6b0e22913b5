package generic

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwellcms/inkwell/internal/admin/storage"
)

// DeletePage is the data handed to a delete confirmation template.
type DeletePage[T any] struct {
	Item T
}

// DeleteView renders a delete confirmation page and removes the instance on
// submission.
type DeleteView[T any] struct {
	Config
	// PermissionRequired defaults to "delete".
	PermissionRequired string
	// Get loads the instance being deleted.
	Get func(ctx context.Context, id string) (T, error)
	// Delete removes the instance from storage.
	Delete func(ctx context.Context, id string) error
	// ID returns the instance's identifier.
	ID func(item T) string
	// Display returns the name interpolated into the success flash.
	Display func(item T) string
	// SuccessFormat is the success flash. Empty means no success message.
	SuccessFormat string
	// Render writes the confirmation page.
	Render func(w http.ResponseWriter, r *http.Request, page DeletePage[T])
}

// Handle serves the confirmation page and processes the deletion.
func (v *DeleteView[T]) Handle(w http.ResponseWriter, r *http.Request, id string) {
	if v == nil || v.Get == nil || v.Delete == nil || v.Render == nil {
		http.NotFound(w, r)
		return
	}

	action := v.PermissionRequired
	if action == "" {
		action = ActionDelete
	}
	if !v.allowed(r, action) {
		forbidden(w)
		return
	}

	item, err := v.Get(r.Context(), id)
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
		v.Render(w, r, DeletePage[T]{Item: item})
	case http.MethodPost:
		v.handleSubmit(w, r, item, id)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (v *DeleteView[T]) handleSubmit(w http.ResponseWriter, r *http.Request, item T, id string) {
	if v.runHook(w, r, "before", "delete", item) {
		return
	}

	if err := v.Delete(r.Context(), id); err != nil {
		internalError(w, "delete "+v.Resource, err)
		return
	}

	if v.runHook(w, r, "after", "delete", item) {
		return
	}

	successFlash(w, r, v.SuccessFormat, v.displayName(item))
	v.redirectToIndex(w, r)
}

func (v *DeleteView[T]) displayName(item T) string {
	if v.Display == nil {
		return ""
	}
	return v.Display(item)
}
