// Package models defines domain entities and persistence interfaces for the curator service.
//
// The package contains two categories of types:
//
// 1. Curation contract types: the shape of a curation result exchanged with
// the generative backend and rendered by the CLI/TUI
//   - [RequestProfile] : constraints supplied with a curation request
//   - [PlaylistItem] : a single scored, annotated media item
//   - [GeneratorResult] : a complete curation result with commentary and citations
//   - [ManualItem] : a caller-supplied draft entry for manual analysis
//
// 2. Persistent entities: database-backed records with lifecycle management
//   - [SavedPlaylist] : an archived snapshot of a GeneratorResult
//
// Persistent entities implement the Model interface providing ID generation,
// timestamps, validation, and soft delete support. The Repository[T] interface
// defines standard CRUD operations for database access.
package models
