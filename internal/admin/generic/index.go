package generic

import (
	"context"
	"net/http"
)

// IndexPage is the data handed to an index template.
type IndexPage[T any] struct {
	Items []T
	// CanAdd gates the create button on the rendered page.
	CanAdd bool
}

// IndexView lists every stored instance of a resource.
type IndexView[T any] struct {
	Config
	// AnyPermissionRequired grants access when the user holds at least one
	// action. Defaults to add, change and delete.
	AnyPermissionRequired []string
	// List loads the instances to display.
	List func(ctx context.Context) ([]T, error)
	// Render writes the index page.
	Render func(w http.ResponseWriter, r *http.Request, page IndexPage[T])
}

// Handle serves the index page.
func (v *IndexView[T]) Handle(w http.ResponseWriter, r *http.Request) {
	if v == nil || v.List == nil || v.Render == nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	required := v.AnyPermissionRequired
	if len(required) == 0 {
		required = []string{ActionAdd, ActionChange, ActionDelete}
	}
	if !v.allowedAny(r, required) {
		forbidden(w)
		return
	}

	items, err := v.List(r.Context())
	if err != nil {
		internalError(w, "list "+v.Resource, err)
		return
	}

	v.Render(w, r, IndexPage[T]{
		Items:  items,
		CanAdd: v.allowed(r, ActionAdd),
	})
}
