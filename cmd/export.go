package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/curator/internal/formatter"
	"github.com/desertthunder/curator/internal/shared"
	"github.com/desertthunder/curator/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportYouTube composes the anonymous playlist URL for an archived result.
func (r *Runner) ExportYouTube(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	entry, err := repo.Get(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	export, err := r.engine.ExportToYouTube(entry.Data())
	if err != nil {
		return err
	}

	r.writePlain("%s\n", export.URL)
	if export.Unresolved > 0 {
		r.writePlain("Skipped %d items without a usable video ID.\n", export.Unresolved)
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(export.URL); err != nil {
			r.logger.Warn("could not open browser", "error", err)
		}
	}
	return nil
}

// ExportSpotify creates a playlist on the authenticated account from an
// archived result, streaming progress lines as it goes.
func (r *Runner) ExportSpotify(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	entry, err := repo.Get(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	session := loadSession(r.logger)
	if session.Token == "" {
		return fmt.Errorf("%w: run 'curator spotify auth' first", shared.ErrNotAuthenticated)
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	r.engine.SetProgress(progress)
	export, err := r.engine.ExportToSpotify(ctx, session, entry.Data())
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("✓ Export complete")
	r.writePlain("Playlist: %s\n", export.PlaylistURL)
	r.writePlain("Added %d of %d items.\n", export.Added, export.Added+export.Unresolved)
	return nil
}

// ExportFile writes an archived result to a local file in the chosen format.
func (r *Runner) ExportFile(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.openRepo(ctx)
	if err != nil {
		return err
	}

	entry, err := repo.Get(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(entry.Name(), entry.Data(), cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Written to %s\n", path)
	return nil
}
