// Package media manages the weekly media log: what was listened to, read,
// and watched each week.
package media

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/db"
	"github.com/amoreira/letterpress/internal/model"
)

var mediaLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	mediaLogger = l
}

const entryColumns = `id, week_start, week_end, tracks, media, created_at, updated_at, published_at`

type Service struct {
	db db.DB
}

func NewService(database db.DB) *Service {
	return &Service{db: database}
}

// NewEntry returns an unsaved entry for the week containing now.
func (s *Service) NewEntry(now time.Time) *model.MediaEntry {
	weekStart, weekEnd := WeekBounds(now)

	return &model.MediaEntry{
		ID:        model.MediaEntryID(uuid.New().String()),
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekEnd.Format("2006-01-02"),
		Tracks:    []model.Track{},
		Media:     []model.MediaItem{},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (s *Service) Create(entry *model.MediaEntry) error {
	tracks, items, err := encodeLists(entry)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO media_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.WeekStart, entry.WeekEnd, tracks, items,
		entry.CreatedAt, entry.UpdatedAt, entry.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating media entry: %w", err)
	}
	return nil
}

func (s *Service) Update(entry *model.MediaEntry) error {
	tracks, items, err := encodeLists(entry)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(
		`UPDATE media_entries SET week_start = ?, week_end = ?, tracks = ?, media = ?,
			updated_at = ?, published_at = ? WHERE id = ?`,
		entry.WeekStart, entry.WeekEnd, tracks, items,
		entry.UpdatedAt, entry.PublishedAt, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating media entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Service) Delete(id model.MediaEntryID) error {
	if _, err := s.db.Exec(`DELETE FROM media_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("error deleting media entry: %w", err)
	}
	return nil
}

func (s *Service) GetByID(id model.MediaEntryID) (*model.MediaEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM media_entries WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return entry, err
}

// ListAll returns every entry for the CMS, newest week first.
func (s *Service) ListAll() ([]model.MediaEntry, error) {
	return s.list(`SELECT ` + entryColumns + ` FROM media_entries ORDER BY week_start DESC`)
}

// ListPublished returns published entries for the public page, newest week
// first. Store failures degrade to an empty log rather than an error page.
func (s *Service) ListPublished() []model.MediaEntry {
	entries, err := s.list(`SELECT ` + entryColumns + ` FROM media_entries WHERE published_at IS NOT NULL ORDER BY week_start DESC`)
	if err != nil {
		mediaLogger.Error().Err(err).Msg("Error listing media entries, degrading to empty")
		return []model.MediaEntry{}
	}
	return entries
}

func (s *Service) list(query string) ([]model.MediaEntry, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying media entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.MediaEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func encodeLists(entry *model.MediaEntry) (tracks, items string, err error) {
	t := entry.Tracks
	if t == nil {
		t = []model.Track{}
	}
	m := entry.Media
	if m == nil {
		m = []model.MediaItem{}
	}

	tracksJSON, err := json.Marshal(t)
	if err != nil {
		return "", "", fmt.Errorf("error encoding tracks: %w", err)
	}
	itemsJSON, err := json.Marshal(m)
	if err != nil {
		return "", "", fmt.Errorf("error encoding media items: %w", err)
	}
	return string(tracksJSON), string(itemsJSON), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*model.MediaEntry, error) {
	var entry model.MediaEntry
	var tracks, items string
	var publishedAt sql.NullTime

	err := row.Scan(
		&entry.ID, &entry.WeekStart, &entry.WeekEnd, &tracks, &items,
		&entry.CreatedAt, &entry.UpdatedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tracks), &entry.Tracks); err != nil {
		entry.Tracks = []model.Track{}
	}
	if err := json.Unmarshal([]byte(items), &entry.Media); err != nil {
		entry.Media = []model.MediaItem{}
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		entry.PublishedAt = &t
	}

	return &entry, nil
}
