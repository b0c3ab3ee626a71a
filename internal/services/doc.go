// Package services contains the streaming platform integrations.
//
// The Spotify client is a thin authenticated HTTP wrapper; the caller owns the
// bearer token and passes it per call, so an expired session is the caller's
// to handle. YouTube needs no API access: identifiers are validated by shape
// and playback URLs are composed locally.
package services
