package models

import (
	"fmt"
	"strings"
	"time"
)

// ResultSchemaVersion is the schema version written with every archived
// snapshot. Bump it when GeneratorResult's persisted shape changes and add a
// forward migration in the repository loader.
const ResultSchemaVersion = 1

// SavedPlaylist is an archived snapshot of a curation result.
//
// The snapshot is a deep copy taken at save time; it never shares state with
// the live result it was taken from, and the result document is never
// rewritten after save. Entry metadata such as the display name may change.
type SavedPlaylist struct {
	id            string
	sequence      int
	name          string
	date          string
	schemaVersion int
	data          *GeneratorResult
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
}

var _ Model = (*SavedPlaylist)(nil)

// NewSavedPlaylist creates an archive entry from a live result.
//
// The result is deep-copied; the returned entry owns its copy exclusively.
func NewSavedPlaylist(name string, result *GeneratorResult) *SavedPlaylist {
	now := time.Now()
	return &SavedPlaylist{
		name:          strings.TrimSpace(name),
		date:          now.Format("2006-01-02"),
		schemaVersion: ResultSchemaVersion,
		data:          result.Clone(),
		createdAt:     now,
		updatedAt:     now,
	}
}

// RestoreSavedPlaylist rebuilds an archive entry from persisted columns.
func RestoreSavedPlaylist(id string, sequence int, name, date string, schemaVersion int, data *GeneratorResult, createdAt, updatedAt time.Time, deletedAt *time.Time) *SavedPlaylist {
	return &SavedPlaylist{
		id:            id,
		sequence:      sequence,
		name:          name,
		date:          date,
		schemaVersion: schemaVersion,
		data:          data,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deletedAt:     deletedAt,
	}
}

func (s *SavedPlaylist) ID() string            { return s.id }
func (s *SavedPlaylist) Sequence() int         { return s.sequence }
func (s *SavedPlaylist) Name() string          { return s.name }
func (s *SavedPlaylist) Date() string          { return s.date }
func (s *SavedPlaylist) SchemaVersion() int    { return s.schemaVersion }
func (s *SavedPlaylist) Data() *GeneratorResult { return s.data }
func (s *SavedPlaylist) CreatedAt() time.Time  { return s.createdAt }
func (s *SavedPlaylist) UpdatedAt() time.Time  { return s.updatedAt }

func (s *SavedPlaylist) SetID(id string)          { s.id = id }
func (s *SavedPlaylist) SetSequence(seq int)      { s.sequence = seq }
func (s *SavedPlaylist) SetName(name string)      { s.name = strings.TrimSpace(name) }
func (s *SavedPlaylist) SetUpdatedAt(t time.Time) { s.updatedAt = t }

// Validate checks required fields before persistence.
func (s *SavedPlaylist) Validate() error {
	if s.id == "" {
		return fmt.Errorf("saved playlist missing id")
	}
	if s.name == "" {
		return fmt.Errorf("saved playlist missing name")
	}
	if s.data == nil {
		return fmt.Errorf("saved playlist missing result data")
	}
	if s.schemaVersion <= 0 {
		return fmt.Errorf("saved playlist has invalid schema version %d", s.schemaVersion)
	}
	return nil
}
