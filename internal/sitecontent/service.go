// Package sitecontent stores CMS-editable page fragments in the database,
// keyed by name. The home page letter is the only consumer right now.
package sitecontent

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/db"
	"github.com/amoreira/letterpress/internal/model"
)

var contentLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	contentLogger = l
}

const homeSectionsKey = "home_sections"

// IllustrationIDs lists the inline illustrations the home page can render
// next to a section.
var IllustrationIDs = []string{"none", "cursor", "component-tree", "fullstack", "neural-net"}

type Service struct {
	db db.DB
}

func NewService(database db.DB) *Service {
	return &Service{db: database}
}

// HomeSections returns the stored home page sections, or the built-in
// defaults when nothing was saved yet or the stored value cannot be read.
func (s *Service) HomeSections() []model.HomeSection {
	var value string
	err := s.db.QueryRow(`SELECT content_value FROM site_content WHERE content_key = ?`, homeSectionsKey).Scan(&value)
	if err != nil {
		return DefaultHomeSections()
	}

	var sections []model.HomeSection
	if err := json.Unmarshal([]byte(value), &sections); err != nil {
		contentLogger.Error().Err(err).Msg("Stored home sections are malformed, serving defaults")
		return DefaultHomeSections()
	}
	if len(sections) == 0 {
		return DefaultHomeSections()
	}
	return sections
}

// SaveHomeSections replaces the stored sections wholesale.
func (s *Service) SaveHomeSections(sections []model.HomeSection) error {
	value, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("error encoding home sections: %w", err)
	}

	_, err = s.db.Exec(`
INSERT INTO site_content (id, content_key, content_value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(content_key) DO UPDATE SET content_value = excluded.content_value, updated_at = excluded.updated_at`,
		uuid.New().String(), homeSectionsKey, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving home sections: %w", err)
	}
	return nil
}

// DefaultHomeSections is the letter shown before anything is saved through
// the CMS.
func DefaultHomeSections() []model.HomeSection {
	return []model.HomeSection{
		{
			ID:           "opening",
			Title:        "Opening",
			Text:         "I still remember the first program I got to run: a few lines, a blinking terminal, and the feeling that a door had opened.",
			Illustration: "cursor",
		},
		{
			ID:           "building",
			Title:        "Building",
			Text:         "Most of my time goes into building things for the web, from small interfaces to the services that feed them.",
			Illustration: "fullstack",
		},
		{
			ID:           "learning",
			Title:        "Learning",
			Text:         "Lately I have been digging into how machines learn. The mathematics is beautiful and the models are humbling.",
			Illustration: "neural-net",
		},
		{
			ID:           "closing",
			Title:        "Closing",
			Text:         "Every week I write about what I am learning. If any of this sounds like your kind of thing, welcome.",
			Illustration: "none",
			IsClosing:    true,
		},
	}
}
