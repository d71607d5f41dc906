// Package model defines core data structures and types for the blog application.
package model

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for a given key in any store.
var ErrNotFound = errors.New("not found")

type PostID string

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post is a publishable unit. The slug is the public identifier and is
// unique across the merged view of the primary and secondary stores; the ID
// is internal to the primary store.
type Post struct {
	ID   PostID
	Slug string

	Title   string
	Excerpt string
	Topics  []string
	Status  PostStatus

	// Document is the structured editor payload, present for
	// primary-sourced posts. Markdown is the rendered (or file-backed)
	// markup; secondary-sourced posts carry only Markdown.
	Document []byte
	Markdown string

	WordCount   int
	ReadingTime int

	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// EffectiveDate is the publish timestamp when set, else the creation
// timestamp. Listings sort descending by it.
func (p *Post) EffectiveDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}
