package models

import (
	"fmt"
	"strings"
)

// PlatformMode identifies which streaming platform a curation targets.
type PlatformMode string

const (
	PlatformSpotify PlatformMode = "Spotify_Music"
	PlatformYouTube PlatformMode = "YouTube_Video"
	PlatformAuto    PlatformMode = "Auto"
)

// SortOrder identifies the requested presentation order of curated items.
type SortOrder string

const (
	SortBPM           SortOrder = "BPM"
	SortRelevance     SortOrder = "Relevance"
	SortChronological SortOrder = "Chronological"
	SortPopularity    SortOrder = "Popularity"
)

// ParseSortOrder maps a user-supplied string to a SortOrder, case-insensitively.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "bpm":
		return SortBPM, nil
	case "relevance", "":
		return SortRelevance, nil
	case "chronological", "chrono":
		return SortChronological, nil
	case "popularity", "popular":
		return SortPopularity, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// ParsePlatformMode maps a user-supplied string to a PlatformMode, case-insensitively.
func ParsePlatformMode(s string) (PlatformMode, error) {
	switch strings.ToLower(s) {
	case "spotify", "music":
		return PlatformSpotify, nil
	case "youtube", "video":
		return PlatformYouTube, nil
	case "auto", "":
		return PlatformAuto, nil
	default:
		return "", fmt.Errorf("unknown platform mode %q", s)
	}
}

// RequestProfile carries the constraints supplied with a curation request.
//
// TargetLength is the exact number of items the generation instruction
// mandates. Optional constraints are free text and may be empty.
type RequestProfile struct {
	TargetLength    int          `json:"targetLength"`
	SortOrder       SortOrder    `json:"sortOrder"`
	PlatformMode    PlatformMode `json:"platformMode"`
	Keywords        string       `json:"keywords"`
	EraConstraint   string       `json:"eraConstraint,omitempty"`
	ToneFocus       string       `json:"toneFocus,omitempty"`
	PreferredSource string       `json:"preferredSource,omitempty"`
}

// PlaylistItem is a single scored, annotated media item in a curation result.
//
// PlatformID is the platform-specific identifier: an 11-character video ID for
// YouTube, an opaque track ID for Spotify. An identifier of the wrong shape is
// treated as absent for playback and export purposes.
type PlaylistItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Creator     string   `json:"creator"`
	Metadata    string   `json:"metadata"`
	URL         string   `json:"url,omitempty"`
	PlatformID  string   `json:"platformId,omitempty"`
	Score       float64  `json:"score"`
	Description string   `json:"description,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Heuristics  []string `json:"heuristics,omitempty"`
}

// Source is a web citation attached to a grounded generation.
type Source struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// GeneratorResult is a complete curation result.
//
// Items are in presentation order; the order is meaningful and preserved
// through export. Sources are appended after the main payload is parsed and
// may be empty.
type GeneratorResult struct {
	Profile          RequestProfile `json:"profile"`
	Items            []PlaylistItem `json:"items"`
	EditorCommentary string         `json:"editorCommentary"`
	VibeScore        float64        `json:"vibeScore"`
	IsManualAnalysis bool           `json:"isManualAnalysis,omitempty"`
	Sources          []Source       `json:"sources,omitempty"`
}

// Clone returns a deep, independent copy of the result.
//
// Archived snapshots must not share mutable state with the live result.
func (r *GeneratorResult) Clone() *GeneratorResult {
	if r == nil {
		return nil
	}

	clone := *r
	clone.Items = make([]PlaylistItem, len(r.Items))
	for i, item := range r.Items {
		clone.Items[i] = item
		if item.Heuristics != nil {
			clone.Items[i].Heuristics = append([]string(nil), item.Heuristics...)
		}
	}
	if r.Sources != nil {
		clone.Sources = append([]Source(nil), r.Sources...)
	}

	return &clone
}

// ManualItem is a caller-supplied draft entry for manual analysis.
//
// PlatformID, when present, was imported from a verified platform search and
// is preserved through analysis and export.
type ManualItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Creator    string `json:"creator"`
	PlatformID string `json:"platformId,omitempty"`
}

// Blank reports whether the item has neither a title nor a creator.
func (m ManualItem) Blank() bool {
	return strings.TrimSpace(m.Title) == "" && strings.TrimSpace(m.Creator) == ""
}

// FilterManualItems drops entries missing a title or creator, preserving order.
func FilterManualItems(items []ManualItem) []ManualItem {
	filtered := make([]ManualItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) != "" && strings.TrimSpace(item.Creator) != "" {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
