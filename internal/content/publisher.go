package content

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/amoreira/letterpress/internal/document"
	"github.com/amoreira/letterpress/internal/model"
	"github.com/amoreira/letterpress/internal/store"
)

// Publisher renders a primary record to markdown, writes the snapshot to
// the secondary sink, and flips the record to published. The write happens
// before the status update: a failed write must leave the record untouched.
type Publisher struct {
	primary   store.PrimaryStore
	secondary store.SecondaryStore

	now func() time.Time
}

func NewPublisher(primary store.PrimaryStore, secondary store.SecondaryStore) *Publisher {
	return &Publisher{
		primary:   primary,
		secondary: secondary,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Publish validates and publishes a post loaded from the primary store.
// Validation failures touch neither store. The publish timestamp is set
// once: republishing keeps the original.
func (p *Publisher) Publish(post *model.Post) (*model.Post, error) {
	if err := validatePublish(post); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	markdown := p.renderDocument(post)

	date := p.now()
	if post.PublishedAt != nil {
		date = *post.PublishedAt
	}

	rendered := document.WrapFrontMatter(document.FrontMatter{
		Title:   post.Title,
		Slug:    post.Slug,
		Date:    date.Format("2006-01-02"),
		Topics:  post.Topics,
		Excerpt: post.Excerpt,
	}, markdown)

	if err := p.secondary.WriteRendered(post.Slug, rendered); err != nil {
		return nil, fmt.Errorf("%w: writing rendered post: %v", ErrStorage, err)
	}

	now := p.now()
	post.Status = model.StatusPublished
	if post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.UpdatedAt = now
	post.Markdown = markdown

	if err := p.primary.Update(post); err != nil {
		return nil, fmt.Errorf("%w: updating post status: %v", ErrStorage, err)
	}

	contentLogger.Info().Str("slug", post.Slug).Msg("Post published")
	return post, nil
}

func validatePublish(post *model.Post) error {
	return validation.ValidateStruct(post,
		validation.Field(&post.Title, validation.Required.Error("title is required to publish")),
		validation.Field(&post.Slug, validation.Required.Error("slug is required to publish")),
	)
}

func (p *Publisher) renderDocument(post *model.Post) string {
	if len(post.Document) == 0 {
		return ""
	}
	doc, err := document.Parse(post.Document)
	if err != nil {
		contentLogger.Error().Err(err).Str("slug", post.Slug).Msg("Malformed document payload, publishing empty body")
		return ""
	}
	return document.Render(doc)
}
