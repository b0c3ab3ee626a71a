package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/curator/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryList lists archived results, newest first.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	entries, err := repo.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summaries := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			summaries = append(summaries, map[string]any{
				"id":    entry.ID(),
				"name":  entry.Name(),
				"date":  entry.Date(),
				"items": len(entry.Data().Items),
			})
		}
		return r.writeJSON(summaries, true)
	}

	if len(entries) == 0 {
		r.writePlain("Archive is empty. Save a result with: curator curate \"...\" --save <name>\n")
		return nil
	}

	r.writePlain("Found %d archived results:\n\n", len(entries))
	for i, entry := range entries {
		data := entry.Data()
		label := ""
		if data.IsManualAnalysis {
			label = " (manual)"
		}
		r.writePlain("%d. %s%s\n", i+1, entry.Name(), label)
		r.writePlain("   ID: %s\n", entry.ID())
		r.writePlain("   Saved: %s • %d items • vibe %.0f/100\n", entry.Date(), len(data.Items), data.VibeScore)
	}
	return nil
}

// LibraryShow prints one archived result.
func (r *Runner) LibraryShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	entry, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entry.Data(), cmd.Bool("pretty"))
	}

	r.writePlain("%s (saved %s)\n\n", entry.Name(), entry.Date())
	return r.printResult(entry.Data())
}

// LibraryRename changes the display name of an archived result.
func (r *Runner) LibraryRename(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	name := strings.TrimSpace(cmd.StringArg("name"))
	if id == "" || name == "" {
		return fmt.Errorf("%w: id and name", shared.ErrMissingArgument)
	}

	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	entry, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	entry.SetName(name)
	if err := repo.Update(ctx, entry); err != nil {
		return err
	}

	r.writePlain("✓ Renamed to %q\n", name)
	return nil
}

// LibraryDelete removes an archived result.
func (r *Runner) LibraryDelete(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Deleted %s\n", id)
	return nil
}
