package services

import (
	"strings"

	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/shared"
)

// Induct places a verified search candidate into a manual draft.
//
// The candidate overwrites the first blank slot; if the draft has no blank
// slot, it is appended. The returned slice is a new draft; the input is not
// mutated.
func Induct(draft []models.ManualItem, candidate SearchCandidate) []models.ManualItem {
	entry := models.ManualItem{
		ID:         shared.GenerateID(),
		Title:      candidate.Title,
		Creator:    strings.Join(candidate.Artists, ", "),
		PlatformID: candidate.URI,
	}

	next := append([]models.ManualItem(nil), draft...)
	for i, item := range next {
		if item.Blank() {
			entry.ID = item.ID
			if entry.ID == "" {
				entry.ID = shared.GenerateID()
			}
			next[i] = entry
			return next
		}
	}
	return append(next, entry)
}

// ResolvePlayback fills playback fields an item can derive locally.
//
// A YouTube item with a well-formed video ID gains a watch URL and thumbnail;
// anything else is returned unchanged. Pure by value.
func ResolvePlayback(item models.PlaylistItem, mode models.PlatformMode) models.PlaylistItem {
	if mode != models.PlatformYouTube {
		return item
	}
	if !ValidateVideoID(item.PlatformID) {
		return item
	}

	if item.URL == "" {
		item.URL = "https://www.youtube.com/watch?v=" + item.PlatformID
	}
	if item.Thumbnail == "" {
		item.Thumbnail = ThumbnailURL(item.PlatformID)
	}
	return item
}

// ResolveResult applies ResolvePlayback across a result's items in place.
func ResolveResult(result *models.GeneratorResult) {
	for i := range result.Items {
		result.Items[i] = ResolvePlayback(result.Items[i], result.Profile.PlatformMode)
	}
}
