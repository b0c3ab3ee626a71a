package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/curator/internal/curator"
	"github.com/desertthunder/curator/internal/repositories"
	"github.com/desertthunder/curator/internal/services"
	"github.com/desertthunder/curator/internal/shared"
	"github.com/desertthunder/curator/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	client  *curator.Client
	spotify *services.SpotifyService
	engine  *tasks.ExportEngine
	logger  *log.Logger
	output  io.Writer

	db   *sql.DB
	repo *repositories.LibraryRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Client  *curator.Client
	Spotify *services.SpotifyService
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Spotify == nil {
		opts.Spotify = services.NewSpotifyService(opts.Logger)
	}

	return &Runner{
		config:  opts.Config,
		client:  opts.Client,
		spotify: opts.Spotify,
		engine:  tasks.NewExportEngine(opts.Spotify, opts.Logger, nil),
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, curateCommand, analyzeCommand, searchCommand, exportCommand, libraryCommand, spotifyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openRepo lazily opens the archive database and runs pending migrations.
func (r *Runner) openRepo(ctx context.Context) (*repositories.LibraryRepository, error) {
	if r.repo != nil {
		return r.repo, nil
	}

	path := r.config.Database.Path
	if path == "" {
		dir, err := shared.ConfigDir()
		if err != nil {
			return nil, err
		}
		path = dir + "/curator.db"
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	r.repo = repositories.NewLibraryRepository(db, r.logger)
	return r.repo, nil
}

// requireClient returns the curation client or a usable error when the Gemini
// key is not configured.
func (r *Runner) requireClient() (*curator.Client, error) {
	if r.client == nil {
		return nil, fmt.Errorf("%w: set credentials.gemini.api_key in config.toml", shared.ErrMissingCredentials)
	}
	return r.client, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
