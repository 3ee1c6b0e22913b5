// Package generic implements reusable admin views for listing, creating,
// editing and deleting stored entities.
//
// Feature modules configure a view with a store, a form decoder, templates
// and URL paths instead of rewriting CRUD flows. Permission checks run
// before any other processing, named hooks can short-circuit an operation
// with their own response, and every completed mutation queues exactly one
// flash message before redirecting to the module's index page.
package generic

import (
	"fmt"
	"log"
	"net/http"

	"github.com/inkwellcms/inkwell/internal/admin/hooks"
	"github.com/inkwellcms/inkwell/internal/admin/messages"
	"github.com/inkwellcms/inkwell/internal/admin/permission"
	"github.com/inkwellcms/inkwell/internal/platform/htmx"
)

// Default permission actions, mirroring the conventional add/change/delete
// capability split.
const (
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

// EditButtonLabel is the label on the flash action button linking to the
// saved object's edit page.
const EditButtonLabel = "Edit"

// Config carries the attributes shared by every view of a feature module.
type Config struct {
	// Resource is the singular resource name used to build hook names,
	// e.g. "article" yields before_create_article.
	Resource string
	// Policy authorizes actions. A nil policy grants everything.
	Policy permission.Policy
	// Hooks supplies the extension callbacks. Nil disables hooks.
	Hooks *hooks.Registry
	// IndexPath is the module's list page; mutations redirect here.
	IndexPath string
	// CreatePath is the module's create form page.
	CreatePath string
	// EditPath resolves the edit page for an object ID.
	EditPath func(id string) string
	// DeletePath resolves the delete confirmation page for an object ID.
	DeletePath func(id string) string
}

// hookName builds the registry key for a lifecycle stage, e.g.
// ("before", "create") -> "before_create_article".
func (c Config) hookName(stage, operation string) string {
	return stage + "_" + operation + "_" + c.Resource
}

// runHook serves the first hook response registered under the stage and
// operation, reporting whether the request was handled.
func (c Config) runHook(w http.ResponseWriter, r *http.Request, stage, operation string, obj any) bool {
	if c.Hooks == nil {
		return false
	}
	response := c.Hooks.Run(c.hookName(stage, operation), r, obj)
	if response == nil {
		return false
	}
	response.ServeHTTP(w, r)
	return true
}

// allowed checks a single required action against the policy.
func (c Config) allowed(r *http.Request, action string) bool {
	if c.Policy == nil {
		return true
	}
	user := permission.UserFromContext(r.Context())
	return c.Policy.UserHasPermission(user, action)
}

// allowedAny checks that the policy grants at least one of actions.
func (c Config) allowedAny(r *http.Request, actions []string) bool {
	if c.Policy == nil {
		return true
	}
	user := permission.UserFromContext(r.Context())
	return c.Policy.UserHasAnyPermission(user, actions)
}

// forbidden writes the default authorization-failure response.
func forbidden(w http.ResponseWriter) {
	http.Error(w, "forbidden", http.StatusForbidden)
}

// methodNotAllowed rejects an unsupported method, advertising allowed ones.
func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, method := range allowed {
		w.Header().Add("Allow", method)
	}
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// internalError logs err and writes a 500 response.
func internalError(w http.ResponseWriter, operation string, err error) {
	log.Printf("admin %s: %v", operation, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// successFlash queues the single success message for a completed mutation.
// format interpolates the object's display name; an empty format suppresses
// the message entirely.
func successFlash(w http.ResponseWriter, r *http.Request, format, display string, buttons ...messages.Button) {
	if format == "" {
		return
	}
	messages.Success(w, r, fmt.Sprintf(format, display), buttons...)
}

// redirectToIndex finishes a mutation with the POST-redirect-GET hop.
func (c Config) redirectToIndex(w http.ResponseWriter, r *http.Request) {
	htmx.Redirect(w, r, c.IndexPath)
}
