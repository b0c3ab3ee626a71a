// Package repositories provides SQLite-backed persistence for the archive.
//
// Saved results are stored as a JSON document column alongside queryable
// metadata. Each row carries the schema version its document was written
// with; loads migrate older documents forward before handing them out.
package repositories
