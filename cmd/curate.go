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

// Curate runs a full curation request and prints or archives the result.
func (r *Runner) Curate(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	client, err := r.requireClient()
	if err != nil {
		return err
	}

	profile, err := r.profileFromFlags(cmd, query)
	if err != nil {
		return err
	}

	r.logger.Info("running curation request", "length", profile.TargetLength, "platform", profile.PlatformMode)

	result, err := client.Generate(ctx, query, profile)
	if err != nil {
		return err
	}

	services.ResolveResult(result)

	if name := cmd.String("save"); name != "" {
		if err := r.archiveResult(ctx, name, result); err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}
	return r.printResult(result)
}

// Analyze scores a manual list given via --file or repeated --item flags.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	client, err := r.requireClient()
	if err != nil {
		return err
	}

	items, err := manualItemsFromFlags(cmd)
	if err != nil {
		return err
	}

	result, err := client.Analyze(ctx, items)
	if err != nil {
		return err
	}

	if name := cmd.String("save"); name != "" {
		if err := r.archiveResult(ctx, name, result); err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}
	return r.printResult(result)
}

func (r *Runner) profileFromFlags(cmd *cli.Command, query string) (models.RequestProfile, error) {
	sort, err := models.ParseSortOrder(cmd.String("sort"))
	if err != nil {
		return models.RequestProfile{}, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	platform, err := models.ParsePlatformMode(cmd.String("platform"))
	if err != nil {
		return models.RequestProfile{}, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	length := int(cmd.Int("length"))
	if length <= 0 {
		length = r.config.Curation.DefaultLength
	}

	return models.RequestProfile{
		TargetLength:    length,
		SortOrder:       sort,
		PlatformMode:    platform,
		Keywords:        query,
		EraConstraint:   cmd.String("era"),
		ToneFocus:       cmd.String("tone"),
		PreferredSource: cmd.String("source"),
	}, nil
}

// manualItemsFromFlags parses the draft from a JSON file or 'Title|Creator' flags.
func manualItemsFromFlags(cmd *cli.Command) ([]models.ManualItem, error) {
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read items file: %w", err)
		}
		var items []models.ManualItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: items file: %v", shared.ErrInvalidInput, err)
		}
		return items, nil
	}

	raw := cmd.StringSlice("item")
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: provide --file or at least one --item", shared.ErrMissingArgument)
	}

	items := make([]models.ManualItem, 0, len(raw))
	for _, entry := range raw {
		title, creator, found := strings.Cut(entry, "|")
		if !found {
			return nil, fmt.Errorf("%w: item %q must be 'Title|Creator'", shared.ErrInvalidArgument, entry)
		}
		items = append(items, models.ManualItem{
			ID:      shared.GenerateID(),
			Title:   strings.TrimSpace(title),
			Creator: strings.TrimSpace(creator),
		})
	}
	return items, nil
}

func (r *Runner) archiveResult(ctx context.Context, name string, result *models.GeneratorResult) error {
	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	entry := models.NewSavedPlaylist(name, result)
	if err := repo.Create(ctx, entry); err != nil {
		return err
	}

	r.writePlain("✓ Archived as %q (%s)\n\n", name, entry.ID())
	return nil
}

func (r *Runner) printResult(result *models.GeneratorResult) error {
	r.writePlain("Vibe Score: %.0f/100\n", result.VibeScore)
	if result.EditorCommentary != "" {
		r.writePlain("Commentary: %s\n", result.EditorCommentary)
	}
	r.writePlain("\n")

	for i, item := range result.Items {
		r.writePlain("%d. %s - %s (%.0f/100)\n", i+1, item.Title, item.Creator, item.Score)
		if item.Description != "" {
			r.writePlain("   %s\n", item.Description)
		}
		if len(item.Heuristics) > 0 {
			r.writePlain("   [%s]\n", strings.Join(item.Heuristics, ", "))
		}
		if item.URL != "" {
			r.writePlain("   %s\n", item.URL)
		}
	}

	if len(result.Sources) > 0 {
		r.writePlain("\nSources:\n")
		for _, source := range result.Sources {
			title := source.Title
			if title == "" {
				title = source.URI
			}
			r.writePlain("  - %s (%s)\n", title, source.URI)
		}
	}

	return nil
}
