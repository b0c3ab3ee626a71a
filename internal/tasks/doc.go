// Package tasks contains the export flows that turn a curation result into
// something on a real platform.
//
// YouTube export is purely local: well-formed video IDs are composed into an
// anonymous watch_videos URL. Spotify export is a sequential remote flow
// (profile, create, per-item verification, batch add) with per-item failures
// downgraded to skips so one bad item never sinks the playlist.
//
// Progress is reported over an optional channel with non-blocking sends; a
// slow or absent consumer never stalls an export.
package tasks
