package generic

import (
	"context"
	"net/http"

	"github.com/inkwellcms/inkwell/internal/admin/forms"
	"github.com/inkwellcms/inkwell/internal/admin/messages"
)

// FormPage is the data handed to a create or edit form template.
type FormPage[T any] struct {
	Item   T
	Errors forms.Errors
	// CanDelete and DeletePath render the delete action on edit forms.
	CanDelete  bool
	DeletePath string
}

// CreateView renders a creation form and persists submissions.
type CreateView[T any] struct {
	Config
	// PermissionRequired defaults to "add".
	PermissionRequired string
	// Decode binds and validates the submitted form into a new instance.
	Decode func(r *http.Request) (T, forms.Errors)
	// Save persists the validated instance. Callers wire this to the store,
	// or override it to add custom save logic.
	Save func(ctx context.Context, item T) (T, error)
	// ID returns the saved instance's identifier for URL resolution.
	ID func(item T) string
	// Display returns the name interpolated into flash messages.
	Display func(item T) string
	// SuccessFormat is the success flash, e.g. `Article %q created.`
	// Empty means no success message.
	SuccessFormat string
	// ErrorMessage is the error flash shown on validation failure.
	// Empty means no error message.
	ErrorMessage string
	// Render writes the form page.
	Render func(w http.ResponseWriter, r *http.Request, page FormPage[T])
}

// Handle serves the create form and processes submissions.
func (v *CreateView[T]) Handle(w http.ResponseWriter, r *http.Request) {
	if v == nil || v.Decode == nil || v.Save == nil || v.Render == nil {
		http.NotFound(w, r)
		return
	}

	action := v.PermissionRequired
	if action == "" {
		action = ActionAdd
	}
	if !v.allowed(r, action) {
		forbidden(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		var empty T
		v.Render(w, r, FormPage[T]{Item: empty, Errors: forms.Errors{}})
	case http.MethodPost:
		v.handleSubmit(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (v *CreateView[T]) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if v.runHook(w, r, "before", "create", nil) {
		return
	}

	item, errs := v.Decode(r)
	if errs.HasErrors() {
		if v.ErrorMessage != "" {
			messages.Error(w, r, v.ErrorMessage)
		}
		v.Render(w, r, FormPage[T]{Item: item, Errors: errs})
		return
	}

	saved, err := v.Save(r.Context(), item)
	if err != nil {
		internalError(w, "create "+v.Resource, err)
		return
	}

	if v.runHook(w, r, "after", "create", saved) {
		return
	}

	var buttons []messages.Button
	if v.EditPath != nil && v.ID != nil {
		buttons = append(buttons, messages.Button{URL: v.EditPath(v.ID(saved)), Label: EditButtonLabel})
	}
	successFlash(w, r, v.SuccessFormat, v.displayName(saved), buttons...)
	v.redirectToIndex(w, r)
}

func (v *CreateView[T]) displayName(item T) string {
	if v.Display == nil {
		return ""
	}
	return v.Display(item)
}
