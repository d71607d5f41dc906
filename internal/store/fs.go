package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/fsnotify/fsnotify"

	"github.com/amoreira/letterpress/internal/cache"
	"github.com/amoreira/letterpress/internal/model"
)

// FSSecondaryStore implements SecondaryStore over a directory of .md files
// carrying the published frontmatter header. Parsed posts are cached per
// slug; an fsnotify watcher evicts entries when files change on disk.
type FSSecondaryStore struct {
	dir string

	postsCache *cache.Cache[string, *model.Post]
	watcher    *fsnotify.Watcher
}

func NewFSSecondaryStore(dir string) *FSSecondaryStore {
	return &FSSecondaryStore{
		dir:        dir,
		postsCache: cache.NewCache[string, *model.Post](),
	}
}

// Watch starts the change watcher. Without it the store still works, it
// just serves possibly stale cache entries after external edits.
func (s *FSSecondaryStore) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return err
	}

	s.watcher = watcher
	go s.watchLoop()
	return nil
}

func (s *FSSecondaryStore) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *FSSecondaryStore) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			slug := strings.TrimSuffix(filepath.Base(event.Name), ".md")
			storeLogger.Debug().Str("slug", slug).Str("op", event.Op.String()).Msg("Post file changed, evicting cache entry")
			s.postsCache.Delete(slug)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			storeLogger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (s *FSSecondaryStore) ListSlugs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			slugs = append(slugs, strings.TrimSuffix(entry.Name(), ".md"))
		}
	}
	return slugs, nil
}

func (s *FSSecondaryStore) GetBySlug(slug string) (*model.Post, error) {
	if post, ok := s.postsCache.Get(slug); ok {
		return post, nil
	}

	path := filepath.Join(s.dir, slug+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	info, err := os.Stat(path)
	var modTime time.Time
	if err == nil {
		modTime = info.ModTime().UTC()
	}

	post := parseRenderedPost(slug, data, modTime)
	s.postsCache.Set(slug, post)
	return post, nil
}

func (s *FSSecondaryStore) WriteRendered(slug, content string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(s.dir, slug+".md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}

	s.postsCache.Delete(slug)
	return nil
}

// renderedMeta is the frontmatter header written at publish time.
type renderedMeta struct {
	Title   string   `yaml:"title"`
	Slug    string   `yaml:"slug"`
	Date    string   `yaml:"date"`
	Topics  []string `yaml:"topics"`
	Excerpt string   `yaml:"excerpt"`
}

// parseRenderedPost builds a published post from a rendered markdown file.
// Files without a parseable header still resolve: the slug doubles as the
// title and the file modification time as the date.
func parseRenderedPost(slug string, data []byte, modTime time.Time) *model.Post {
	post := &model.Post{
		Slug:      slug,
		Title:     slug,
		Status:    model.StatusPublished,
		Topics:    []string{},
		Markdown:  string(data),
		CreatedAt: modTime,
		UpdatedAt: modTime,
	}

	var meta renderedMeta
	rest, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return post
	}

	post.Markdown = string(rest)
	if meta.Title != "" {
		post.Title = meta.Title
	}
	if meta.Slug != "" {
		post.Slug = meta.Slug
	}
	if meta.Topics != nil {
		post.Topics = meta.Topics
	}
	post.Excerpt = meta.Excerpt

	if date, ok := parseHeaderDate(meta.Date); ok {
		post.CreatedAt = date
		post.PublishedAt = &date
	} else if !modTime.IsZero() {
		t := modTime
		post.PublishedAt = &t
	}

	return post
}

func parseHeaderDate(raw string) (time.Time, bool) {
	for _, format := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(format, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
