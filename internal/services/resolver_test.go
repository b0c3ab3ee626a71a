package services

import (
	"testing"

	"github.com/desertthunder/curator/internal/models"
)

func TestInduct(t *testing.T) {
	candidate := SearchCandidate{
		ID:      "t1",
		URI:     "spotify:track:t1",
		Title:   "Only Shallow",
		Artists: []string{"My Bloody Valentine"},
	}

	t.Run("fills the first blank slot", func(t *testing.T) {
		draft := []models.ManualItem{
			{ID: "m1", Title: "Existing", Creator: "Artist"},
			{ID: "m2"},
			{ID: "m3"},
		}

		next := Induct(draft, candidate)

		if len(next) != 3 {
			t.Fatalf("expected 3 items, got %d", len(next))
		}
		if next[1].Title != "Only Shallow" || next[1].PlatformID != "spotify:track:t1" {
			t.Errorf("candidate not placed in first blank slot: %+v", next[1])
		}
		if next[1].ID != "m2" {
			t.Errorf("slot identity should be preserved, got %q", next[1].ID)
		}
		if !next[2].Blank() {
			t.Error("later blank slot should be untouched")
		}
	})

	t.Run("appends when no slot is blank", func(t *testing.T) {
		draft := []models.ManualItem{{ID: "m1", Title: "Existing", Creator: "Artist"}}

		next := Induct(draft, candidate)

		if len(next) != 2 {
			t.Fatalf("expected 2 items, got %d", len(next))
		}
		if next[1].Title != "Only Shallow" {
			t.Errorf("candidate not appended: %+v", next[1])
		}
		if next[1].ID == "" {
			t.Error("appended entry should get an ID")
		}
	})

	t.Run("does not mutate the input draft", func(t *testing.T) {
		draft := []models.ManualItem{{ID: "m1"}}

		Induct(draft, candidate)

		if !draft[0].Blank() {
			t.Error("input draft was mutated")
		}
	})

	t.Run("joins multiple artists", func(t *testing.T) {
		multi := candidate
		multi.Artists = []string{"A", "B"}

		next := Induct(nil, multi)

		if next[0].Creator != "A, B" {
			t.Errorf("expected joined artists, got %q", next[0].Creator)
		}
	})
}

func TestResolvePlayback(t *testing.T) {
	t.Run("fills url and thumbnail for a valid youtube id", func(t *testing.T) {
		item := models.PlaylistItem{Title: "A", PlatformID: "dQw4w9WgXcQ"}

		resolved := ResolvePlayback(item, models.PlatformYouTube)

		if resolved.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("unexpected url %q", resolved.URL)
		}
		if resolved.Thumbnail != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
			t.Errorf("unexpected thumbnail %q", resolved.Thumbnail)
		}
	})

	t.Run("leaves malformed ids alone", func(t *testing.T) {
		item := models.PlaylistItem{Title: "A", PlatformID: "short"}

		resolved := ResolvePlayback(item, models.PlatformYouTube)

		if resolved.URL != "" || resolved.Thumbnail != "" {
			t.Errorf("malformed id should not resolve: %+v", resolved)
		}
	})

	t.Run("ignores non-youtube modes", func(t *testing.T) {
		item := models.PlaylistItem{Title: "A", PlatformID: "dQw4w9WgXcQ"}

		resolved := ResolvePlayback(item, models.PlatformSpotify)

		if resolved.URL != "" {
			t.Errorf("spotify mode should not compose youtube urls: %+v", resolved)
		}
	})

	t.Run("preserves an existing url", func(t *testing.T) {
		item := models.PlaylistItem{Title: "A", PlatformID: "dQw4w9WgXcQ", URL: "https://example.com"}

		resolved := ResolvePlayback(item, models.PlatformYouTube)

		if resolved.URL != "https://example.com" {
			t.Errorf("existing url overwritten: %q", resolved.URL)
		}
	})
}
