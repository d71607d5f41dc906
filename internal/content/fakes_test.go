package content

import (
	"errors"

	"github.com/amoreira/letterpress/internal/model"
)

// fakePrimary is an in-memory PrimaryStore with call counters and error
// injection.
type fakePrimary struct {
	posts map[string]*model.Post // by slug

	listErr error
	getErr  error

	updateCalls int
	updateErr   error
}

func newFakePrimary(posts ...*model.Post) *fakePrimary {
	f := &fakePrimary{posts: make(map[string]*model.Post)}
	for _, p := range posts {
		f.posts[p.Slug] = p
	}
	return f
}

func (f *fakePrimary) NewPost(slug string) *model.Post {
	return &model.Post{ID: model.PostID("id-" + slug), Slug: slug, Status: model.StatusDraft}
}

func (f *fakePrimary) Create(post *model.Post) error {
	f.posts[post.Slug] = post
	return nil
}

func (f *fakePrimary) Update(post *model.Post) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.posts[post.Slug] = post
	return nil
}

func (f *fakePrimary) Delete(id model.PostID) error {
	for slug, p := range f.posts {
		if p.ID == id {
			delete(f.posts, slug)
		}
	}
	return nil
}

func (f *fakePrimary) GetByID(id model.PostID) (*model.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.posts {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakePrimary) GetBySlug(slug string) (*model.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.posts[slug]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakePrimary) ListAll() ([]model.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePrimary) ListPublished() ([]model.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		if p.IsPublished() {
			out = append(out, *p)
		}
	}
	return out, nil
}

// fakeSecondary is an in-memory SecondaryStore.
type fakeSecondary struct {
	posts map[string]*model.Post
	order []string

	listErr error
	getErr  error

	writeCalls int
	writeErr   error
	written    map[string]string
}

func newFakeSecondary(posts ...*model.Post) *fakeSecondary {
	f := &fakeSecondary{
		posts:   make(map[string]*model.Post),
		written: make(map[string]string),
	}
	for _, p := range posts {
		f.posts[p.Slug] = p
		f.order = append(f.order, p.Slug)
	}
	return f
}

func (f *fakeSecondary) ListSlugs() ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string{}, f.order...), nil
}

func (f *fakeSecondary) GetBySlug(slug string) (*model.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.posts[slug]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeSecondary) WriteRendered(slug, content string) error {
	f.writeCalls++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written[slug] = content
	return nil
}

var errBroken = errors.New("store is broken")
