package content

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/amoreira/letterpress/internal/document"
	"github.com/amoreira/letterpress/internal/model"
	"github.com/amoreira/letterpress/internal/store"
)

// Resolver answers "which record owns this slug". The primary store wins on
// collisions; the secondary store only fills slugs the primary does not
// have. Listing paths swallow store errors and degrade to empty so a broken
// store never takes down a public page.
type Resolver struct {
	primary   store.PrimaryStore
	secondary store.SecondaryStore
}

func NewResolver(primary store.PrimaryStore, secondary store.SecondaryStore) *Resolver {
	return &Resolver{
		primary:   primary,
		secondary: secondary,
	}
}

// Resolve returns the authoritative record for a slug. Unpublished primary
// records are invisible: they yield the secondary record when one exists
// and model.ErrNotFound otherwise. Lookup failures also map to
// model.ErrNotFound, since callers treat both the same way.
func (r *Resolver) Resolve(slug string) (*model.Post, error) {
	post, err := r.primary.GetBySlug(slug)
	if err == nil && post.IsPublished() {
		r.hydrate(post)
		return post, nil
	}
	if err != nil {
		contentLogger.Debug().Err(err).Str("slug", slug).Msg("Primary lookup missed, trying secondary")
	}

	post, err = r.secondary.GetBySlug(slug)
	if err != nil {
		return nil, model.ErrNotFound
	}
	return post, nil
}

// ListSlugs returns the merged slug set, primary slugs first.
func (r *Resolver) ListSlugs() []string {
	primary, secondary := r.fetchBoth()

	slugs := make([]string, 0, len(primary)+len(secondary))
	seen := make(map[string]bool, len(primary))
	for i := range primary {
		slugs = append(slugs, primary[i].Slug)
		seen[primary[i].Slug] = true
	}
	for _, slug := range secondary {
		if !seen[slug] {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

// ListAll returns every published record from both sources, primary winning
// per slug, sorted descending by effective date.
func (r *Resolver) ListAll() []model.Post {
	primary, secondarySlugs := r.fetchBoth()

	posts := make([]model.Post, 0, len(primary)+len(secondarySlugs))
	seen := make(map[string]bool, len(primary))
	for i := range primary {
		r.hydrate(&primary[i])
		posts = append(posts, primary[i])
		seen[primary[i].Slug] = true
	}

	for _, slug := range secondarySlugs {
		if seen[slug] {
			continue
		}
		post, err := r.secondary.GetBySlug(slug)
		if err != nil {
			contentLogger.Error().Err(err).Str("slug", slug).Msg("Error reading secondary post, skipping")
			continue
		}
		posts = append(posts, *post)
	}

	slices.SortStableFunc(posts, func(a, b model.Post) int {
		return -a.EffectiveDate().Compare(b.EffectiveDate())
	})
	return posts
}

// fetchBoth queries the stores concurrently. Either side failing degrades
// to an empty result for that side.
func (r *Resolver) fetchBoth() ([]model.Post, []string) {
	var primary []model.Post
	var secondary []string

	var g errgroup.Group
	g.Go(func() error {
		posts, err := r.primary.ListPublished()
		if err != nil {
			contentLogger.Error().Err(err).Msg("Error listing primary posts, degrading to empty")
			return nil
		}
		primary = posts
		return nil
	})
	g.Go(func() error {
		slugs, err := r.secondary.ListSlugs()
		if err != nil {
			contentLogger.Error().Err(err).Msg("Error listing secondary slugs, degrading to empty")
			return nil
		}
		secondary = slugs
		return nil
	})
	_ = g.Wait()

	return primary, secondary
}

// hydrate materializes markdown from the structured document of a
// primary-sourced post. A malformed payload renders as empty rather than
// failing the page.
func (r *Resolver) hydrate(post *model.Post) {
	if post.Markdown != "" || len(post.Document) == 0 {
		return
	}

	doc, err := document.Parse(post.Document)
	if err != nil {
		contentLogger.Error().Err(err).Str("slug", post.Slug).Msg("Malformed document payload, rendering empty")
		return
	}
	post.Markdown = document.Render(doc)
}
