package content

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/model"
)

func init() {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func publishedPost(slug, dateStr string) *model.Post {
	d := date(dateStr)
	return &model.Post{
		ID:          model.PostID("id-" + slug),
		Slug:        slug,
		Title:       slug,
		Status:      model.StatusPublished,
		CreatedAt:   d,
		PublishedAt: &d,
	}
}

func TestResolveMissingEverywhere(t *testing.T) {
	r := NewResolver(newFakePrimary(), newFakeSecondary())

	if _, err := r.Resolve("missing-slug"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestResolveDraftIsInvisible(t *testing.T) {
	draft := &model.Post{
		ID:     "id-draft",
		Slug:   "draft-post",
		Title:  "Draft",
		Status: model.StatusDraft,
	}
	r := NewResolver(newFakePrimary(draft), newFakeSecondary())

	if _, err := r.Resolve("draft-post"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for draft, got %v", err)
	}
}

func TestResolveDraftFallsBackToSecondary(t *testing.T) {
	draft := &model.Post{ID: "id-x", Slug: "x", Status: model.StatusDraft}
	fromFile := publishedPost("x", "2023-01-01")

	r := NewResolver(newFakePrimary(draft), newFakeSecondary(fromFile))

	got, err := r.Resolve("x")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != fromFile.ID {
		t.Errorf("Expected the secondary record, got %+v", got)
	}
}

func TestResolvePrimaryWins(t *testing.T) {
	dbPost := publishedPost("a", "2024-02-01")
	filePost := publishedPost("a", "2023-01-01")
	filePost.ID = "file-a"

	r := NewResolver(newFakePrimary(dbPost), newFakeSecondary(filePost))

	got, err := r.Resolve("a")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != dbPost.ID {
		t.Errorf("Expected primary record to win, got %s", got.ID)
	}
}

func TestResolveHydratesDocument(t *testing.T) {
	post := publishedPost("with-doc", "2024-01-01")
	post.Document = []byte(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello","marks":[{"type":"bold"}]}]}]}`)

	r := NewResolver(newFakePrimary(post), newFakeSecondary())

	got, err := r.Resolve("with-doc")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Markdown != "**hello**" {
		t.Errorf("Expected hydrated markdown, got %q", got.Markdown)
	}
}

func TestResolveMalformedDocumentRendersEmpty(t *testing.T) {
	post := publishedPost("broken-doc", "2024-01-01")
	post.Document = []byte(`{"type":`)

	r := NewResolver(newFakePrimary(post), newFakeSecondary())

	got, err := r.Resolve("broken-doc")
	if err != nil {
		t.Fatalf("Resolve must not fail on malformed payload: %v", err)
	}
	if got.Markdown != "" {
		t.Errorf("Expected empty markdown, got %q", got.Markdown)
	}
}

func TestListAllMergesAndSorts(t *testing.T) {
	// Primary: a (2024-02-01), b (2024-01-01). Secondary: a (older copy,
	// suppressed) and c (2023-06-01).
	a := publishedPost("a", "2024-02-01")
	b := publishedPost("b", "2024-01-01")
	fileA := publishedPost("a", "2023-01-01")
	fileA.ID = "file-a"
	c := publishedPost("c", "2023-06-01")

	r := NewResolver(newFakePrimary(a, b), newFakeSecondary(fileA, c))

	posts := r.ListAll()
	if len(posts) != 3 {
		t.Fatalf("Expected 3 posts, got %d", len(posts))
	}

	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if posts[i].Slug != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, posts[i].Slug)
		}
	}

	if posts[0].ID != a.ID {
		t.Errorf("Expected primary version of a, got %s", posts[0].ID)
	}
}

func TestListAllUsesCreationDateWhenUnpublished(t *testing.T) {
	// Secondary records without a header date fall back to CreatedAt.
	newer := publishedPost("newer", "2024-05-01")
	older := &model.Post{
		ID:        "file-old",
		Slug:      "older",
		Status:    model.StatusPublished,
		CreatedAt: date("2024-04-01"),
	}

	r := NewResolver(newFakePrimary(newer), newFakeSecondary(older))

	posts := r.ListAll()
	if len(posts) != 2 || posts[0].Slug != "newer" || posts[1].Slug != "older" {
		t.Errorf("Unexpected order: %+v", posts)
	}
}

func TestListAllDegradesOnStoreErrors(t *testing.T) {
	t.Run("broken primary", func(t *testing.T) {
		primary := newFakePrimary()
		primary.listErr = errBroken
		secondary := newFakeSecondary(publishedPost("c", "2023-06-01"))

		posts := NewResolver(primary, secondary).ListAll()
		if len(posts) != 1 || posts[0].Slug != "c" {
			t.Errorf("Expected secondary posts only, got %+v", posts)
		}
	})

	t.Run("broken secondary", func(t *testing.T) {
		secondary := newFakeSecondary()
		secondary.listErr = errBroken

		posts := NewResolver(newFakePrimary(publishedPost("a", "2024-01-01")), secondary).ListAll()
		if len(posts) != 1 || posts[0].Slug != "a" {
			t.Errorf("Expected primary posts only, got %+v", posts)
		}
	})

	t.Run("both broken", func(t *testing.T) {
		primary := newFakePrimary()
		primary.listErr = errBroken
		secondary := newFakeSecondary()
		secondary.listErr = errBroken

		posts := NewResolver(primary, secondary).ListAll()
		if len(posts) != 0 {
			t.Errorf("Expected empty listing, got %+v", posts)
		}
	})
}

func TestListSlugs(t *testing.T) {
	a := publishedPost("a", "2024-02-01")
	fileA := publishedPost("a", "2023-01-01")
	c := publishedPost("c", "2023-06-01")

	r := NewResolver(newFakePrimary(a), newFakeSecondary(fileA, c))

	slugs := r.ListSlugs()
	if len(slugs) != 2 {
		t.Fatalf("Expected 2 slugs, got %v", slugs)
	}
	if slugs[0] != "a" || slugs[1] != "c" {
		t.Errorf("Expected primary-first order [a c], got %v", slugs)
	}
}
