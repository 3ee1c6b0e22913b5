// Package storage defines the persistence interfaces and model types the
// admin plane manages.
//
// Views depend on these interfaces only; the SQLite implementation lives in
// the sqlite subpackage so persistence can be swapped without touching view
// behavior.
package storage
