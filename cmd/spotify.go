package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/curator/internal/server"
	"github.com/desertthunder/curator/internal/shared"
	"github.com/desertthunder/curator/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

var spotifyEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

var spotifyScopes = []string{
	"user-read-private",
	"playlist-modify-public",
	"playlist-modify-private",
}

func (r *Runner) oauthConfig() (*oauth2.Config, error) {
	creds := r.config.Credentials.Spotify
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: set credentials.spotify.client_id and client_secret in config.toml", shared.ErrMissingCredentials)
	}

	redirect := creds.RedirectURI
	if redirect == "" {
		redirect = fmt.Sprintf("http://%s:%d/callback", r.config.Server.Host, r.config.Server.Port)
	}

	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirect,
		Scopes:       spotifyScopes,
		Endpoint:     spotifyEndpoint,
	}, nil
}

func sessionPath() (string, error) {
	dir, err := shared.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func saveToken(token *oauth2.Token) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func clearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// loadSession reads the saved token and wires invalidation to the session file.
//
// Returns a session with an empty token when none is saved or the saved one
// has expired; callers decide whether that is fatal.
func loadSession(logger *log.Logger) *tasks.Session {
	session := &tasks.Session{
		Invalidate: func() {
			if err := clearSession(); err != nil && logger != nil {
				logger.Warn("failed to discard session", "error", err)
			}
		},
	}

	path, err := sessionPath()
	if err != nil {
		return session
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return session
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return session
	}
	if !token.Expiry.IsZero() && token.Expiry.Before(time.Now()) {
		return session
	}

	session.Token = token.AccessToken
	return session
}

// SpotifyAuth performs the OAuth2 authorization code flow and saves the session.
func (r *Runner) SpotifyAuth(ctx context.Context, cmd *cli.Command) error {
	config, err := r.oauthConfig()
	if err != nil {
		return err
	}

	flowCtx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	token, err := server.Flow(flowCtx, config, r.logger)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	if err := saveToken(token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Session saved\n\n")
	r.writePlain("You can now use: curator export spotify --id <entry>\n")
	return nil
}

// SpotifyStatus checks the saved session against the live API.
func (r *Runner) SpotifyStatus(ctx context.Context, cmd *cli.Command) error {
	session := loadSession(r.logger)
	if session.Token == "" {
		r.writePlain("Not authenticated. Run: curator spotify auth\n")
		return nil
	}

	user, err := r.spotify.CurrentUser(ctx, session.Token)
	if err != nil {
		r.writePlain("Session invalid: %v\n", err)
		return nil
	}

	name := user.DisplayName
	if name == "" {
		name = user.ID
	}
	r.writePlain("Authenticated as %s\n", name)
	return nil
}

// SpotifyLogout discards the saved session.
func (r *Runner) SpotifyLogout(ctx context.Context, cmd *cli.Command) error {
	if err := clearSession(); err != nil {
		return err
	}
	r.writePlain("✓ Session discarded\n")
	return nil
}
