package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/curator/internal/shared"
)

const spotifyAPIBase = "https://api.spotify.com/v1"

// trackIDMinLength is the shortest identifier accepted as an audio track ID.
// Real Spotify track IDs are 22 characters; the floor filters out placeholder
// values the generator sometimes emits.
const trackIDMinLength = 6

// ValidateTrackID reports whether id can serve as a verified audio track
// identifier: long enough to be real and not shaped like a video ID. A full
// spotify:track: URI passes as well.
func ValidateTrackID(id string) bool {
	return len(id) >= trackIDMinLength && !ValidateVideoID(id)
}

// SpotifyUser is the authenticated user's profile, reduced to what export needs.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyPlaylist is a created playlist, reduced to what export needs.
type SpotifyPlaylist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SearchCandidate is a single verified track from a platform search.
type SearchCandidate struct {
	ID        string   `json:"id"`
	URI       string   `json:"uri"`
	Title     string   `json:"title"`
	Artists   []string `json:"artists"`
	Thumbnail string   `json:"thumbnail,omitempty"`
}

// SpotifyService wraps the Spotify Web API endpoints used for verification and export.
//
// The service holds no token. Every call takes the bearer token explicitly, so
// session ownership stays with the caller and a 401 surfaces as
// [shared.ErrSessionExpired] for the caller to act on.
type SpotifyService struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewSpotifyService creates a service against the public Spotify API.
func NewSpotifyService(logger *log.Logger) *SpotifyService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SpotifyService{
		baseURL: spotifyAPIBase,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// SetBaseURL overrides the API base URL. Tests point this at a local server.
func (s *SpotifyService) SetBaseURL(base string) {
	s.baseURL = base
}

func (s *SpotifyService) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s returned 401", shared.ErrSessionExpired, method, path)
	case resp.StatusCode >= 400:
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s", shared.ErrAPIRequest, method, path, resp.StatusCode, text)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CurrentUser fetches the profile of the token's owner.
func (s *SpotifyService) CurrentUser(ctx context.Context, token string) (*SpotifyUser, error) {
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	var user SpotifyUser
	if err := s.do(ctx, http.MethodGet, "/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePlaylist creates a public playlist on the user's account.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, token, userID, name, description string) (*SpotifyPlaylist, error) {
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      true,
	}

	var raw struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
	}
	path := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := s.do(ctx, http.MethodPost, path, token, body, &raw); err != nil {
		return nil, err
	}

	s.logger.Debug("created playlist", "id", raw.ID, "name", raw.Name)

	return &SpotifyPlaylist{ID: raw.ID, Name: raw.Name, URL: raw.ExternalURLs.Spotify}, nil
}

// AddTracks appends track URIs to a playlist in a single batch, preserving order.
func (s *SpotifyService) AddTracks(ctx context.Context, token, playlistID string, uris []string) error {
	if token == "" {
		return shared.ErrNotAuthenticated
	}
	if len(uris) == 0 {
		return nil
	}

	body := map[string]any{"uris": uris}
	path := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return s.do(ctx, http.MethodPost, path, token, body, nil)
}

// SearchTracks runs a track search and returns up to limit candidates.
//
// An empty token yields an empty result without a network call, so unverified
// flows degrade quietly instead of failing.
func (s *SpotifyService) SearchTracks(ctx context.Context, token, query string, limit int) ([]SearchCandidate, error) {
	if token == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var raw struct {
		Tracks struct {
			Items []struct {
				ID      string `json:"id"`
				URI     string `json:"uri"`
				Name    string `json:"name"`
				Artists []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Album struct {
					Images []struct {
						URL string `json:"url"`
					} `json:"images"`
				} `json:"album"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := s.do(ctx, http.MethodGet, "/search?"+params.Encode(), token, nil, &raw); err != nil {
		return nil, err
	}

	candidates := make([]SearchCandidate, 0, len(raw.Tracks.Items))
	for _, item := range raw.Tracks.Items {
		candidate := SearchCandidate{ID: item.ID, URI: item.URI, Title: item.Name}
		for _, artist := range item.Artists {
			candidate.Artists = append(candidate.Artists, artist.Name)
		}
		if len(item.Album.Images) > 0 {
			candidate.Thumbnail = item.Album.Images[0].URL
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
