// Package sqlite provides the admin persistence adapter backed by SQLite.
//
// The store owns its schema and migrates it on open, so a single file path
// is all the admin server needs to run.
package sqlite
