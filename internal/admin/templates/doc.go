// Package templates renders the admin interface pages as templ components.
//
// Components are pure functions of their view structs so handlers stay free
// of markup and tests can render pages into buffers.
package templates
