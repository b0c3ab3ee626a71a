package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/shared"
)

// LibraryRepository persists archived curation results.
type LibraryRepository struct {
	db     *sql.DB
	logger *log.Logger
}

var _ models.Repository[*models.SavedPlaylist] = (*LibraryRepository)(nil)

// NewLibraryRepository creates a repository over an open, migrated database.
func NewLibraryRepository(db *sql.DB, logger *log.Logger) *LibraryRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LibraryRepository{db: db, logger: logger}
}

// Create archives an entry, assigning an ID if absent and the next sequence
// number so the entry lists ahead of older ones.
func (r *LibraryRepository) Create(ctx context.Context, entry *models.SavedPlaylist) error {
	if entry.ID() == "" {
		entry.SetID(shared.GenerateID())
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	data, err := json.Marshal(entry.Data())
	if err != nil {
		return fmt.Errorf("failed to encode result data: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(tx)
	if err != nil {
		return fmt.Errorf("failed to advance sequence: %w", err)
	}
	entry.SetSequence(seq)

	_, err = tx.Exec(
		`INSERT INTO library (id, sequence, name, date, schema_version, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID(), entry.Sequence(), entry.Name(), entry.Date(), entry.SchemaVersion(),
		string(data), entry.CreatedAt(), entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert library entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Debug("archived result", "id", entry.ID(), "name", entry.Name(), "sequence", seq)
	return nil
}

// Update rewrites an entry's name and document. The sequence and creation
// time are untouched.
func (r *LibraryRepository) Update(ctx context.Context, entry *models.SavedPlaylist) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	data, err := json.Marshal(entry.Data())
	if err != nil {
		return fmt.Errorf("failed to encode result data: %w", err)
	}

	entry.SetUpdatedAt(time.Now())
	res, err := r.db.ExecContext(ctx,
		`UPDATE library SET name = ?, schema_version = ?, data = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		entry.Name(), entry.SchemaVersion(), string(data), entry.UpdatedAt(), entry.ID())
	if err != nil {
		return fmt.Errorf("failed to update library entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, entry.ID())
	}
	return nil
}

// Get loads a single entry by ID. Soft-deleted entries are invisible.
func (r *LibraryRepository) Get(ctx context.Context, id string) (*models.SavedPlaylist, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, name, date, schema_version, data, created_at, updated_at, deleted_at
		 FROM library WHERE id = ? AND deleted_at IS NULL`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load library entry: %w", err)
	}
	return entry, nil
}

// List returns all live entries, newest first.
func (r *LibraryRepository) List(ctx context.Context) ([]*models.SavedPlaylist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, name, date, schema_version, data, created_at, updated_at, deleted_at
		 FROM library WHERE deleted_at IS NULL ORDER BY sequence DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list library entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.SavedPlaylist
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan library entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete soft-deletes an entry. Deleting an absent entry is an error.
func (r *LibraryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE library SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete library entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEntry(row scannable) (*models.SavedPlaylist, error) {
	var (
		id, name, date, data string
		sequence, version    int
		createdAt, updatedAt time.Time
		deletedAt            sql.NullTime
	)
	if err := row.Scan(&id, &sequence, &name, &date, &version, &data, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	result, err := loadData(data, version)
	if err != nil {
		return nil, err
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}
	return models.RestoreSavedPlaylist(id, sequence, name, date, models.ResultSchemaVersion, result, createdAt, updatedAt, deleted), nil
}

// loadData decodes a stored document and migrates it forward to the current
// schema version.
func loadData(data string, version int) (*models.GeneratorResult, error) {
	if version > models.ResultSchemaVersion {
		return nil, fmt.Errorf("stored document has schema version %d, newer than supported %d", version, models.ResultSchemaVersion)
	}

	var result models.GeneratorResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}

	// Version 0 documents predate the explicit profile; reconstruct a
	// minimal one from the item list.
	if version < 1 && result.Profile.TargetLength == 0 {
		result.Profile.TargetLength = len(result.Items)
		if result.Profile.SortOrder == "" {
			result.Profile.SortOrder = models.SortRelevance
		}
		if result.Profile.PlatformMode == "" {
			result.Profile.PlatformMode = models.PlatformAuto
		}
	}

	return &result, nil
}
