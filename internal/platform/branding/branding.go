// Package branding centralizes user-visible product naming.
package branding

// AppName is the product name shown across admin pages.
const AppName = "Inkwell"
