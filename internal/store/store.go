// Package store provides the two content stores: the primary relational
// store holding drafts and published posts as structured documents, and the
// secondary store holding pre-rendered published markdown files.
package store

import (
	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/model"
)

// PrimaryStore is the relational post store. It is authoritative: on slug
// collisions the primary record wins over the secondary store.
type PrimaryStore interface {
	// NewPost returns an unsaved draft. An empty slug gets a generated one.
	NewPost(slug string) *model.Post

	Create(post *model.Post) error
	Update(post *model.Post) error
	Delete(id model.PostID) error

	GetByID(id model.PostID) (*model.Post, error)
	GetBySlug(slug string) (*model.Post, error)

	// ListAll returns every record, drafts included, newest update first.
	ListAll() ([]model.Post, error)
	ListPublished() ([]model.Post, error)
}

// SecondaryStore is the file-backed fallback. Everything in it is
// implicitly published; it has no draft concept.
type SecondaryStore interface {
	ListSlugs() ([]string, error)
	GetBySlug(slug string) (*model.Post, error)

	// WriteRendered persists rendered markup keyed by slug, overwriting any
	// prior content at that key.
	WriteRendered(slug, content string) error
}

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}
