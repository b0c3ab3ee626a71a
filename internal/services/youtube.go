package services

import (
	"fmt"
	"strings"

	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/shared"
)

const (
	videoIDLength = 11

	watchVideosBase = "https://www.youtube.com/watch_videos"
	thumbnailBase   = "https://i.ytimg.com/vi"
)

// ValidateVideoID reports whether id has the shape of a YouTube video ID:
// exactly 11 characters from the URL-safe base64 alphabet.
func ValidateVideoID(id string) bool {
	if len(id) != videoIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// ValidVideoIDs extracts the well-formed video IDs from a result's items,
// preserving presentation order. Malformed identifiers are skipped silently.
func ValidVideoIDs(items []models.PlaylistItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if ValidateVideoID(item.PlatformID) {
			ids = append(ids, item.PlatformID)
		}
	}
	return ids
}

// WatchVideosURL composes an anonymous YouTube playlist URL from video IDs.
//
// The URL format plays the IDs in order without requiring authentication.
func WatchVideosURL(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", shared.ErrNoValidIdentifiers
	}
	return fmt.Sprintf("%s?video_ids=%s", watchVideosBase, strings.Join(ids, ",")), nil
}

// ThumbnailURL returns the standard high-quality thumbnail for a video ID.
func ThumbnailURL(id string) string {
	return fmt.Sprintf("%s/%s/hqdefault.jpg", thumbnailBase, id)
}
