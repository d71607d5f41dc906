package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/model"
)

const renderedFile = `---
title: "A Rendered Post"
slug: "rendered-post"
date: "2024-02-01"
topics: ["go","blog"]
excerpt: "An excerpt"
---

Body of the post.`

func newTestFSStore(t *testing.T) *FSSecondaryStore {
	t.Helper()
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))
	return NewFSSecondaryStore(t.TempDir())
}

func TestFSListSlugs(t *testing.T) {
	s := newTestFSStore(t)

	t.Run("empty directory", func(t *testing.T) {
		slugs, err := s.ListSlugs()
		if err != nil {
			t.Fatalf("ListSlugs failed: %v", err)
		}
		if len(slugs) != 0 {
			t.Errorf("Expected no slugs, got %v", slugs)
		}
	})

	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		missing := NewFSSecondaryStore(filepath.Join(t.TempDir(), "nope"))
		slugs, err := missing.ListSlugs()
		if err != nil {
			t.Fatalf("Expected no error for missing dir, got %v", err)
		}
		if len(slugs) != 0 {
			t.Errorf("Expected no slugs, got %v", slugs)
		}
	})

	t.Run("only .md files count", func(t *testing.T) {
		writeFile(t, s.dir, "one.md", "content")
		writeFile(t, s.dir, "two.md", "content")
		writeFile(t, s.dir, "notes.txt", "content")

		slugs, err := s.ListSlugs()
		if err != nil {
			t.Fatalf("ListSlugs failed: %v", err)
		}
		if len(slugs) != 2 {
			t.Errorf("Expected 2 slugs, got %v", slugs)
		}
	})
}

func TestFSGetBySlug(t *testing.T) {
	s := newTestFSStore(t)
	writeFile(t, s.dir, "rendered-post.md", renderedFile)

	post, err := s.GetBySlug("rendered-post")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}

	if post.Title != "A Rendered Post" {
		t.Errorf("Expected header title, got %s", post.Title)
	}
	if post.Status != model.StatusPublished {
		t.Error("Secondary posts must be implicitly published")
	}
	if post.PublishedAt == nil {
		t.Fatal("Expected publish date from header")
	}
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if !post.PublishedAt.Equal(want) {
		t.Errorf("Expected date %v, got %v", want, post.PublishedAt)
	}
	if len(post.Topics) != 2 || post.Topics[0] != "go" {
		t.Errorf("Unexpected topics: %v", post.Topics)
	}
	if post.Markdown != "Body of the post." {
		t.Errorf("Expected body without header, got %q", post.Markdown)
	}
}

func TestFSGetBySlugWithoutHeader(t *testing.T) {
	s := newTestFSStore(t)
	writeFile(t, s.dir, "legacy.md", "Just markdown, no header.")

	post, err := s.GetBySlug("legacy")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if post.Title != "legacy" {
		t.Errorf("Expected slug as title fallback, got %s", post.Title)
	}
	if post.PublishedAt == nil {
		t.Error("Expected modification time as publish date fallback")
	}
}

func TestFSGetBySlugMissing(t *testing.T) {
	s := newTestFSStore(t)
	if _, err := s.GetBySlug("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFSWriteRendered(t *testing.T) {
	s := newTestFSStore(t)

	if err := s.WriteRendered("new-post", renderedFile); err != nil {
		t.Fatalf("WriteRendered failed: %v", err)
	}

	post, err := s.GetBySlug("new-post")
	if err != nil {
		t.Fatalf("GetBySlug after write failed: %v", err)
	}
	if post.Title != "A Rendered Post" {
		t.Errorf("Unexpected title: %s", post.Title)
	}

	t.Run("overwrites prior content and evicts cache", func(t *testing.T) {
		updated := "---\ntitle: \"Second Version\"\nslug: \"new-post\"\ndate: \"2024-03-01\"\ntopics: []\nexcerpt: \"\"\n---\n\nNew body."
		if err := s.WriteRendered("new-post", updated); err != nil {
			t.Fatalf("WriteRendered failed: %v", err)
		}

		post, err := s.GetBySlug("new-post")
		if err != nil {
			t.Fatalf("GetBySlug failed: %v", err)
		}
		if post.Title != "Second Version" {
			t.Errorf("Expected overwritten content, got title %s", post.Title)
		}
	})

	t.Run("creates the directory when absent", func(t *testing.T) {
		nested := NewFSSecondaryStore(filepath.Join(t.TempDir(), "a", "b"))
		if err := nested.WriteRendered("p", "content"); err != nil {
			t.Fatalf("WriteRendered failed: %v", err)
		}
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}
