package main

import (
	"context"

	"github.com/desertthunder/curator/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter config file from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.writePlain("✓ Config written to %s\n", path)
	r.writePlain("Edit it to add your Gemini and Spotify credentials.\n")
	return nil
}

// SetupDatabase opens the archive database and applies pending migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.openRepo(ctx); err != nil {
		return err
	}
	r.writePlain("✓ Database ready\n")
	return nil
}
