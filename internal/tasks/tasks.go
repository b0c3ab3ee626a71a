package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/services"
	"github.com/desertthunder/curator/internal/shared"
	"golang.org/x/time/rate"
)

// Session is a caller-owned Spotify session.
//
// Invalidate is called when the token is rejected mid-export, before the
// expiry error is returned, so the caller can drop the stale token and
// re-authenticate. It may be nil.
type Session struct {
	Token      string
	Invalidate func()
}

func (s *Session) invalidate() {
	if s.Invalidate != nil {
		s.Invalidate()
	}
}

// YouTubeExport is the outcome of a local YouTube export.
type YouTubeExport struct {
	URL        string
	Exported   int
	Unresolved int
}

// SpotifyExport is the outcome of a remote Spotify export.
//
// Unresolved counts items that could not be verified on the platform; the
// playlist exists even when every item was skipped.
type SpotifyExport struct {
	PlaylistID  string
	PlaylistURL string
	Added       int
	Unresolved  int
}

// searcher is the slice of the Spotify service the engine needs.
type searcher interface {
	CurrentUser(ctx context.Context, token string) (*services.SpotifyUser, error)
	CreatePlaylist(ctx context.Context, token, userID, name, description string) (*services.SpotifyPlaylist, error)
	AddTracks(ctx context.Context, token, playlistID string, uris []string) error
	SearchTracks(ctx context.Context, token, query string, limit int) ([]services.SearchCandidate, error)
}

// ExportEngine runs export flows against the streaming platforms.
type ExportEngine struct {
	spotify  searcher
	limiter  *rate.Limiter
	logger   *log.Logger
	progress chan<- ProgressUpdate
}

// NewExportEngine creates an engine around a Spotify service.
//
// The per-item search rate is capped to stay clear of API limits. The
// progress channel is optional; sends to it never block.
func NewExportEngine(spotify *services.SpotifyService, logger *log.Logger, progress chan<- ProgressUpdate) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{
		spotify:  spotify,
		limiter:  rate.NewLimiter(rate.Limit(5), 1),
		logger:   logger,
		progress: progress,
	}
}

// SetProgress swaps the progress channel. Call between exports, not during one.
func (e *ExportEngine) SetProgress(progress chan<- ProgressUpdate) {
	e.progress = progress
}

func (e *ExportEngine) send(update ProgressUpdate) {
	if e.progress == nil {
		return
	}
	select {
	case e.progress <- update:
	default:
	}
}

// ExportToYouTube composes an anonymous playlist URL from the result's
// well-formed video IDs, preserving presentation order.
//
// Items without a valid ID are counted but do not block the export. A result
// with no valid IDs at all returns [shared.ErrNoValidIdentifiers].
func (e *ExportEngine) ExportToYouTube(result *models.GeneratorResult) (*YouTubeExport, error) {
	ids := services.ValidVideoIDs(result.Items)

	url, err := services.WatchVideosURL(ids)
	if err != nil {
		return nil, err
	}

	export := &YouTubeExport{
		URL:        url,
		Exported:   len(ids),
		Unresolved: len(result.Items) - len(ids),
	}

	if export.Unresolved > 0 {
		e.logger.Warn("some items had no usable video id", "unresolved", export.Unresolved)
	}
	e.send(doneUpdate(url))

	return export, nil
}

// PlaylistName derives the export playlist name from the result's keywords.
func PlaylistName(result *models.GeneratorResult) string {
	keywords := strings.TrimSpace(result.Profile.Keywords)
	if keywords == "" {
		keywords = "Untitled Session"
	}
	return "HC // " + keywords
}

func playlistDescription(result *models.GeneratorResult) string {
	return fmt.Sprintf("Curated by The Honest Curator. Vibe score: %.0f/100.", result.VibeScore)
}

// ExportToSpotify creates a playlist on the session owner's account and fills
// it with the result's items, in order.
//
// Each item resolves to a track URI either from a verified identifier it
// already carries or from a top-result search. Items that cannot be resolved
// are skipped and counted; the flow only aborts on session expiry or a
// playlist-level failure. On a 401 the session is invalidated before the
// error is returned.
func (e *ExportEngine) ExportToSpotify(ctx context.Context, session *Session, result *models.GeneratorResult) (*SpotifyExport, error) {
	if session == nil || session.Token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	e.send(authUpdate())
	user, err := e.spotify.CurrentUser(ctx, session.Token)
	if err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			session.invalidate()
		}
		return nil, err
	}

	name := PlaylistName(result)
	e.send(createUpdate(name))
	playlist, err := e.spotify.CreatePlaylist(ctx, session.Token, user.ID, name, playlistDescription(result))
	if err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			session.invalidate()
		}
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	total := len(result.Items)
	uris := make([]string, 0, total)
	unresolved := 0

	for i, item := range result.Items {
		e.send(resolveUpdate(item.Title, i, total))

		uri, err := e.resolveTrack(ctx, session.Token, item)
		if err != nil {
			if errors.Is(err, shared.ErrSessionExpired) {
				session.invalidate()
				return nil, err
			}
			e.logger.Warn("failed to verify item", "title", item.Title, "error", err)
			e.send(skipUpdate(item.Title, i, total))
			unresolved++
			continue
		}
		if uri == "" {
			e.send(skipUpdate(item.Title, i, total))
			unresolved++
			continue
		}

		uris = append(uris, uri)
	}

	if len(uris) > 0 {
		e.send(addUpdate(len(uris)))
		if err := e.spotify.AddTracks(ctx, session.Token, playlist.ID, uris); err != nil {
			if errors.Is(err, shared.ErrSessionExpired) {
				session.invalidate()
			}
			return nil, fmt.Errorf("failed to add tracks: %w", err)
		}
	}

	e.send(doneUpdate(playlist.URL))

	return &SpotifyExport{
		PlaylistID:  playlist.ID,
		PlaylistURL: playlist.URL,
		Added:       len(uris),
		Unresolved:  unresolved,
	}, nil
}

// resolveTrack finds the Spotify URI for an item.
//
// A verified track identifier carried by the item wins and never issues a
// search; otherwise the top search result for "title creator" is trusted. An
// empty return means the item could not be placed on the platform.
func (e *ExportEngine) resolveTrack(ctx context.Context, token string, item models.PlaylistItem) (string, error) {
	if services.ValidateTrackID(item.PlatformID) {
		if strings.HasPrefix(item.PlatformID, "spotify:track:") {
			return item.PlatformID, nil
		}
		return "spotify:track:" + item.PlatformID, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	query := strings.TrimSpace(item.Title + " " + item.Creator)
	candidates, err := e.spotify.SearchTracks(ctx, token, query, 1)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0].URI, nil
}
