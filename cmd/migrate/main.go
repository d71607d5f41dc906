// Command migrate imports a directory of markdown posts into the database.
// Each file becomes a published record; formatting is reduced to plain
// paragraphs, so the original file stays authoritative for display until
// the post is edited and republished.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/amoreira/letterpress/internal/db"
	"github.com/amoreira/letterpress/internal/document"
	"github.com/amoreira/letterpress/internal/logger"
	"github.com/amoreira/letterpress/internal/model"
	"github.com/amoreira/letterpress/internal/store"
)

type fileMeta struct {
	Title   string   `yaml:"title"`
	Slug    string   `yaml:"slug"`
	Date    string   `yaml:"date"`
	Topics  []string `yaml:"topics"`
	Excerpt string   `yaml:"excerpt"`
}

func main() {
	dir := flag.String("dir", "content/posts", "directory of markdown posts to import")
	dbPath := flag.String("db", "letterpress.db", "sqlite database path")
	flag.Parse()

	l := logger.New("info")
	db.SetLogger(l)
	store.SetLogger(l)

	database := db.NewSQLite(*dbPath)
	if err := database.Init(); err != nil {
		l.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()

	primary := store.NewDBPrimaryStore(database)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		l.Fatal().Err(err).Str("dir", *dir).Msg("Failed to read posts directory")
	}

	imported := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		slug := strings.TrimSuffix(entry.Name(), ".md")
		if _, err := primary.GetBySlug(slug); err == nil {
			l.Info().Str("slug", slug).Msg("Record exists, skipping")
			continue
		}

		data, err := os.ReadFile(filepath.Join(*dir, entry.Name()))
		if err != nil {
			l.Error().Err(err).Str("file", entry.Name()).Msg("Failed to read file")
			continue
		}

		var meta fileMeta
		body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
		if err != nil {
			l.Error().Err(err).Str("file", entry.Name()).Msg("Failed to parse frontmatter")
			continue
		}
		if meta.Slug != "" {
			slug = meta.Slug
		}

		post := primary.NewPost(slug)
		post.Title = meta.Title
		if post.Title == "" {
			post.Title = slug
		}
		post.Excerpt = meta.Excerpt
		post.Topics = meta.Topics
		post.Status = model.StatusPublished
		post.Document = documentFromMarkdown(string(body))

		if doc, err := document.Parse(post.Document); err == nil {
			post.WordCount = document.WordCount(doc)
			post.ReadingTime = document.ReadingTime(post.WordCount)
		}

		publishedAt := parseDate(meta.Date)
		post.CreatedAt = publishedAt
		post.PublishedAt = &publishedAt

		if err := primary.Create(post); err != nil {
			l.Error().Err(err).Str("slug", slug).Msg("Failed to create record")
			continue
		}

		l.Info().Str("slug", slug).Str("title", post.Title).Msg("Imported")
		imported++
	}

	l.Info().Int("imported", imported).Msg("Done")
}

// documentFromMarkdown builds a structured document of plain paragraphs
// from markdown text. Inline formatting is not reconstructed.
func documentFromMarkdown(markdown string) []byte {
	type node struct {
		Type    string `json:"type"`
		Text    string `json:"text,omitempty"`
		Content []node `json:"content,omitempty"`
	}

	doc := node{Type: "doc"}
	for _, chunk := range strings.Split(markdown, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		doc.Content = append(doc.Content, node{
			Type:    "paragraph",
			Content: []node{{Type: "text", Text: chunk}},
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	return data
}

func parseDate(raw string) time.Time {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now().UTC()
}
