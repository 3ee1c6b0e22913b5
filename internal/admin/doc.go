// Package admin hosts the Inkwell content administration plane.
//
// It wires the generic list/create/edit/delete views to the content store,
// renders pages through templ components with HTMX partial updates, and
// protects every route behind signed-token authentication and a
// role-based permission policy.
package admin
