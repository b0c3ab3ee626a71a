package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/services"
	"github.com/desertthunder/curator/internal/shared"
	"golang.org/x/time/rate"
)

type fakeSpotify struct {
	userErr    error
	createErr  error
	addErr     error
	searchErrs map[string]error
	noMatch    map[string]bool

	searched []string
	added    []string
}

func (f *fakeSpotify) CurrentUser(ctx context.Context, token string) (*services.SpotifyUser, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &services.SpotifyUser{ID: "user1"}, nil
}

func (f *fakeSpotify) CreatePlaylist(ctx context.Context, token, userID, name, description string) (*services.SpotifyPlaylist, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &services.SpotifyPlaylist{ID: "pl1", Name: name, URL: "https://open.spotify.com/playlist/pl1"}, nil
}

func (f *fakeSpotify) AddTracks(ctx context.Context, token, playlistID string, uris []string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, uris...)
	return nil
}

func (f *fakeSpotify) SearchTracks(ctx context.Context, token, query string, limit int) ([]services.SearchCandidate, error) {
	f.searched = append(f.searched, query)
	if err := f.searchErrs[query]; err != nil {
		return nil, err
	}
	if f.noMatch[query] {
		return nil, nil
	}
	return []services.SearchCandidate{{URI: "spotify:track:" + query}}, nil
}

func newTestEngine(fake *fakeSpotify, progress chan<- ProgressUpdate) *ExportEngine {
	return &ExportEngine{
		spotify:  fake,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   shared.NewLogger(nil),
		progress: progress,
	}
}

func resultWithItems(items ...models.PlaylistItem) *models.GeneratorResult {
	return &models.GeneratorResult{
		Profile: models.RequestProfile{Keywords: "test session", PlatformMode: models.PlatformSpotify},
		Items:   items,
	}
}

func TestExportToYouTube(t *testing.T) {
	t.Run("composes the url in presentation order", func(t *testing.T) {
		engine := newTestEngine(&fakeSpotify{}, nil)
		result := resultWithItems(
			models.PlaylistItem{Title: "A", PlatformID: "aaaaaaaaaaa"},
			models.PlaylistItem{Title: "B", PlatformID: "nope"},
			models.PlaylistItem{Title: "C", PlatformID: "ccccccccccc"},
		)

		export, err := engine.ExportToYouTube(result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "https://www.youtube.com/watch_videos?video_ids=aaaaaaaaaaa,ccccccccccc"
		if export.URL != want {
			t.Errorf("got %q, want %q", export.URL, want)
		}
		if export.Exported != 2 || export.Unresolved != 1 {
			t.Errorf("unexpected counts: %+v", export)
		}
	})

	t.Run("a single valid id is enough", func(t *testing.T) {
		engine := newTestEngine(&fakeSpotify{}, nil)
		result := resultWithItems(models.PlaylistItem{Title: "A", PlatformID: "dQw4w9WgXcQ"})

		export, err := engine.ExportToYouTube(result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if export.URL != "https://www.youtube.com/watch_videos?video_ids=dQw4w9WgXcQ" {
			t.Errorf("unexpected url %q", export.URL)
		}
	})

	t.Run("no valid ids is an error", func(t *testing.T) {
		engine := newTestEngine(&fakeSpotify{}, nil)
		result := resultWithItems(models.PlaylistItem{Title: "A", PlatformID: "bad"})

		if _, err := engine.ExportToYouTube(result); !errors.Is(err, shared.ErrNoValidIdentifiers) {
			t.Errorf("expected ErrNoValidIdentifiers, got %v", err)
		}
	})
}

func TestExportToSpotify(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves and adds every item in order", func(t *testing.T) {
		fake := &fakeSpotify{}
		engine := newTestEngine(fake, nil)
		result := resultWithItems(
			models.PlaylistItem{Title: "First", Creator: "One"},
			models.PlaylistItem{Title: "Second", Creator: "Two"},
		)

		export, err := engine.ExportToSpotify(ctx, &Session{Token: "tok"}, result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if export.Added != 2 || export.Unresolved != 0 {
			t.Errorf("unexpected counts: %+v", export)
		}
		if len(fake.added) != 2 || fake.added[0] != "spotify:track:First One" {
			t.Errorf("order not preserved: %v", fake.added)
		}
	})

	t.Run("verified identifiers skip the search", func(t *testing.T) {
		fake := &fakeSpotify{}
		engine := newTestEngine(fake, nil)
		result := resultWithItems(
			models.PlaylistItem{Title: "Verified", Creator: "One", PlatformID: "spotify:track:known"},
		)

		export, err := engine.ExportToSpotify(ctx, &Session{Token: "tok"}, result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(fake.searched) != 0 {
			t.Errorf("verified item should not be searched: %v", fake.searched)
		}
		if export.Added != 1 || fake.added[0] != "spotify:track:known" {
			t.Errorf("verified uri not used: %v", fake.added)
		}
	})

	t.Run("bare track identifiers are trusted without a search", func(t *testing.T) {
		fake := &fakeSpotify{}
		engine := newTestEngine(fake, nil)
		result := resultWithItems(
			models.PlaylistItem{Title: "Song", Creator: "Artist", PlatformID: "3n3Ppam7vgaVa1iaRUc9Lp"},
		)

		export, err := engine.ExportToSpotify(ctx, &Session{Token: "tok"}, result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(fake.searched) != 0 {
			t.Errorf("carried identifier should not be searched: %v", fake.searched)
		}
		if export.Added != 1 || fake.added[0] != "spotify:track:3n3Ppam7vgaVa1iaRUc9Lp" {
			t.Errorf("carried identifier not used: %v", fake.added)
		}
	})

	t.Run("video-shaped identifiers still go through search", func(t *testing.T) {
		fake := &fakeSpotify{}
		engine := newTestEngine(fake, nil)
		result := resultWithItems(
			models.PlaylistItem{Title: "Clip", Creator: "Channel", PlatformID: "dQw4w9WgXcQ"},
		)

		if _, err := engine.ExportToSpotify(ctx, &Session{Token: "tok"}, result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(fake.searched) != 1 {
			t.Errorf("a video id is not an audio identifier, expected a search: %v", fake.searched)
		}
	})

	t.Run("unresolvable items are skipped, not fatal", func(t *testing.T) {
		fake := &fakeSpotify{
			noMatch:    map[string]bool{"Ghost Two": true},
			searchErrs: map[string]error{"Broken Three": fmt.Errorf("boom")},
		}
		engine := newTestEngine(fake, nil)
		result := resultWithItems(
			models.PlaylistItem{Title: "Real", Creator: "One"},
			models.PlaylistItem{Title: "Ghost", Creator: "Two"},
			models.PlaylistItem{Title: "Broken", Creator: "Three"},
		)

		export, err := engine.ExportToSpotify(ctx, &Session{Token: "tok"}, result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if export.Added != 1 || export.Unresolved != 2 {
			t.Errorf("unexpected counts: %+v", export)
		}
	})

	t.Run("empty playlist is still a success", func(t *testing.T) {
		fake := &fakeSpotify{noMatch: map[string]bool{"Ghost Two": true}}
		engine := newTestEngine(fake, nil)
		result := resultWithItems(models.PlaylistItem{Title: "Ghost", Creator: "Two"})

		export, err := engine.ExportToSpotify(ctx, &Session{Token: "tok"}, result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if export.PlaylistURL == "" {
			t.Error("playlist should exist even with nothing added")
		}
		if export.Added != 0 || export.Unresolved != 1 {
			t.Errorf("unexpected counts: %+v", export)
		}
		if len(fake.added) != 0 {
			t.Errorf("nothing should be added: %v", fake.added)
		}
	})

	t.Run("session expiry invalidates before returning", func(t *testing.T) {
		fake := &fakeSpotify{userErr: shared.ErrSessionExpired}
		engine := newTestEngine(fake, nil)

		invalidated := false
		session := &Session{Token: "stale", Invalidate: func() { invalidated = true }}

		_, err := engine.ExportToSpotify(ctx, session, resultWithItems())
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
		if !invalidated {
			t.Error("session should be invalidated on expiry")
		}
	})

	t.Run("missing session is rejected up front", func(t *testing.T) {
		engine := newTestEngine(&fakeSpotify{}, nil)

		if _, err := engine.ExportToSpotify(ctx, nil, resultWithItems()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if _, err := engine.ExportToSpotify(ctx, &Session{}, resultWithItems()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("progress sends never block", func(t *testing.T) {
		fake := &fakeSpotify{}
		progress := make(chan ProgressUpdate, 1)
		engine := newTestEngine(fake, progress)
		result := resultWithItems(
			models.PlaylistItem{Title: "First", Creator: "One"},
			models.PlaylistItem{Title: "Second", Creator: "Two"},
		)

		// Nobody drains the channel; the export must still finish.
		if _, err := engine.ExportToSpotify(ctx, &Session{Token: "tok"}, result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPlaylistName(t *testing.T) {
	t.Run("derives from keywords", func(t *testing.T) {
		result := &models.GeneratorResult{Profile: models.RequestProfile{Keywords: "rainy shoegaze"}}
		if got := PlaylistName(result); got != "HC // rainy shoegaze" {
			t.Errorf("unexpected name %q", got)
		}
	})

	t.Run("falls back for empty keywords", func(t *testing.T) {
		result := &models.GeneratorResult{}
		if got := PlaylistName(result); got != "HC // Untitled Session" {
			t.Errorf("unexpected name %q", got)
		}
	})
}
