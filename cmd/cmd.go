// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// curateCommand runs a full curation request.
func curateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "curate",
		Usage: "Generate a scored, grounded playlist from a free-text request",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "length",
				Aliases: []string{"n"},
				Usage:   "Exact number of items to request",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order (bpm, relevance, chronological, popularity)",
			},
			&cli.StringFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "Target platform (spotify, youtube, auto)",
			},
			&cli.StringFlag{
				Name:  "era",
				Usage: "Era constraint, e.g. '1990s'",
			},
			&cli.StringFlag{
				Name:  "tone",
				Usage: "Tone focus, e.g. 'melancholy'",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Preferred review authorities",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "Archive the result under the given name",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Curate,
	}
}

// analyzeCommand scores a caller-supplied item list.
func analyzeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Score and annotate a manual list without generating new items",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "JSON file with items [{title, creator, platformId?}]",
			},
			&cli.StringSliceFlag{
				Name:  "item",
				Usage: "Item as 'Title|Creator', repeatable",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "Archive the result under the given name",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Analyze,
	}
}

// searchCommand verifies tracks against Spotify.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search Spotify for a track to import into a manual draft",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum candidates to return",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  "induct",
				Usage: "Draft file to merge the top result into (created if missing)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// exportCommand moves an archived result onto a platform or into a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export an archived result",
		Commands: []*cli.Command{
			{
				Name:  "youtube",
				Usage: "Compose an anonymous YouTube playlist URL",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Archive entry ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the URL in the browser",
					},
				},
				Action: r.ExportYouTube,
			},
			{
				Name:  "spotify",
				Usage: "Create a playlist on the authenticated Spotify account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Archive entry ID",
						Required: true,
					},
				},
				Action: r.ExportSpotify,
			},
			{
				Name:  "file",
				Usage: "Write the result to a local file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Archive entry ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (csv, markdown, text, json)",
						Value: "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.ExportFile,
			},
		},
	}
}

// libraryCommand manages the local archive.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse and manage archived results",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List archived results, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "show",
				Usage: "Show one archived result",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.LibraryShow,
			},
			{
				Name:  "rename",
				Usage: "Rename an archived result",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.LibraryRename,
			},
			{
				Name:  "delete",
				Usage: "Delete an archived result",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LibraryDelete,
			},
		},
	}
}

// spotifyCommand handles Spotify session management.
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify session management",
		Commands: []*cli.Command{
			{
				Name:   "auth",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.SpotifyAuth,
			},
			{
				Name:   "status",
				Usage:  "Check whether the saved session is still valid",
				Action: r.SpotifyStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard the saved session",
				Action: r.SpotifyLogout,
			},
		},
	}
}

// setupCommand handles setup operations for config and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing the archive.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and exporting the archive",
		Action:  r.TUI,
	}
}
