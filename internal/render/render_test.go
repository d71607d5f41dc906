package render

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/cache"
)

func setupTest() {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))
	cache.ClearRenderedMarkdownCache()
}

func TestRenderMarkdown(t *testing.T) {
	setupTest()

	tests := []struct {
		name     string
		markdown string
		contains string
	}{
		{
			name:     "heading",
			markdown: "## Hello",
			contains: "<h2",
		},
		{
			name:     "emphasis",
			markdown: "some **bold** text",
			contains: "<strong>bold</strong>",
		},
		{
			name:     "code block is highlighted",
			markdown: "```go\nfunc main() {}\n```",
			contains: `<div class="highlight">`,
		},
		{
			name:     "link opens in new tab",
			markdown: "[site](http://example.com)",
			contains: `target="_blank"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := RenderMarkdown([]byte(tt.markdown), "monokai")
			if !strings.Contains(string(html), tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, html)
			}
		})
	}
}

func TestHighlightCode(t *testing.T) {
	setupTest()

	t.Run("known language", func(t *testing.T) {
		out := HighlightCode("x := 1", "go", "monokai")
		if out == "" || out == "x := 1" {
			t.Errorf("Expected highlighted output, got %q", out)
		}
	})

	t.Run("unknown language falls back", func(t *testing.T) {
		out := HighlightCode("anything", "not-a-language", "monokai")
		if !strings.Contains(out, "anything") {
			t.Errorf("Expected content to survive fallback, got %q", out)
		}
	})

	t.Run("unknown theme falls back", func(t *testing.T) {
		out := HighlightCode("x := 1", "go", "not-a-theme")
		if out == "" {
			t.Error("Expected output with fallback style")
		}
	})
}

func TestRenderMarkdownCached(t *testing.T) {
	setupTest()

	md := []byte("# Cached\n\nContent")

	first := RenderMarkdownCached(md, "hash-1", "github")
	if len(first) == 0 {
		t.Fatal("Expected rendered HTML")
	}

	cached, found := cache.GetRenderedMarkdown("hash-1", "github")
	if !found {
		t.Fatal("Expected render to populate the cache")
	}
	if !bytes.Equal(cached.HTML, first) {
		t.Error("Cached HTML differs from rendered HTML")
	}

	second := RenderMarkdownCached(md, "hash-1", "github")
	if !bytes.Equal(first, second) {
		t.Error("Expected identical output from cache hit")
	}
}

func TestRenderMarkdownCachedEmptyHashSkipsCache(t *testing.T) {
	setupTest()

	RenderMarkdownCached([]byte("content"), "", "github")
	if _, found := cache.GetRenderedMarkdown("", "github"); found {
		t.Error("Expected no cache entry for empty hash")
	}
}

func TestRenderMarkdownCachedConcurrent(t *testing.T) {
	setupTest()

	md := []byte("# Concurrent\n\n```go\nx := 1\n```")

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = RenderMarkdownCached(md, "hash-conc", "github")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if !bytes.Equal(results[0], results[i]) {
			t.Error("Expected all concurrent renders to agree")
			break
		}
	}
}
