// Package ui implements the terminal interface for browsing the archive and
// exporting saved results.
//
// The flow is a single Elm-style model: the archive list, a detail view of
// the selected entry, an export confirmation, a live progress view fed by the
// export engine's progress channel, and a final result view.
package ui
