// Package sqlite provides SQLite-backed persistence for chat history.
package sqlite
