package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/services"
	"github.com/desertthunder/curator/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a Spotify track search for manual draft verification.
//
// With --induct, the top result is merged into a draft file instead of being
// printed; repeated searches build up a verified list for `analyze --file`.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	session := loadSession(r.logger)
	if session.Token == "" {
		return fmt.Errorf("%w: run 'curator spotify auth' first", shared.ErrNotAuthenticated)
	}

	candidates, err := r.spotify.SearchTracks(ctx, session.Token, query, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if path := cmd.String("induct"); path != "" {
		if len(candidates) == 0 {
			r.writePlain("No matches for %q, draft unchanged.\n", query)
			return nil
		}
		top := candidates[0]
		draft, err := inductDraft(path, top)
		if err != nil {
			return err
		}
		r.writePlain("✓ Inducted %s - %s into %s (%d items)\n",
			top.Title, strings.Join(top.Artists, ", "), path, len(draft))
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(candidates, cmd.Bool("pretty"))
	}

	if len(candidates) == 0 {
		r.writePlain("No matches for %q.\n", query)
		return nil
	}

	r.writePlain("Found %d candidates:\n\n", len(candidates))
	for i, candidate := range candidates {
		r.writePlain("%d. %s - %s\n", i+1, candidate.Title, strings.Join(candidate.Artists, ", "))
		r.writePlain("   URI: %s\n", candidate.URI)
	}
	return nil
}

// inductDraft merges a verified candidate into a draft file of manual items.
//
// A missing file starts an empty draft. The candidate fills the first blank
// slot, or is appended, and the updated draft is written back.
func inductDraft(path string, candidate services.SearchCandidate) ([]models.ManualItem, error) {
	var draft []models.ManualItem

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &draft); err != nil {
			return nil, fmt.Errorf("%w: draft file: %v", shared.ErrInvalidInput, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}

	draft = services.Induct(draft, candidate)

	out, err := shared.MarshalJSON(draft, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, fmt.Errorf("failed to write draft file: %w", err)
	}

	return draft, nil
}
