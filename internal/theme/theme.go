// Package theme handles syntax highlighting themes and CSS generation.
package theme

import (
	"bytes"
	"html/template"
	"net/http"
	"slices"
	"sync"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/amoreira/letterpress/internal/cache"
	"github.com/amoreira/letterpress/internal/config"
)

var (
	formatterOnce sync.Once
	formatter     *html.Formatter
)

// GetFormatter returns the process-wide chroma HTML formatter. It is built
// once and read-only afterwards.
func GetFormatter() *html.Formatter {
	formatterOnce.Do(func() {
		formatter = html.New(
			html.WithClasses(true),
			html.TabWidth(4),
			html.WithLineNumbers(false),
			html.PreventSurroundingPre(false),
		)
	})
	return formatter
}

func GetSyntaxThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return config.AppConfig.Theme.SyntaxTheme
}

func GetSyntaxThemes() []string {
	styleNames := styles.Names()
	slices.Sort(styleNames)
	return styleNames
}

// GetSyntaxCSS returns the stylesheet for a syntax theme, cached per theme.
func GetSyntaxCSS(syntaxTheme string) template.CSS {
	if css, ok := cache.GetSyntaxCSS(syntaxTheme); ok {
		return css
	}

	style := styles.Get(syntaxTheme)
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	if err := GetFormatter().WriteCSS(&buf, style); err != nil {
		return ""
	}

	css := template.CSS(buf.String())
	cache.SetSyntaxCSS(syntaxTheme, css)
	return css
}
