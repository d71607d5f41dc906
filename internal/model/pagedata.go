package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/amoreira/letterpress/internal/config"
	"github.com/amoreira/letterpress/internal/theme"
)

type PageData struct {
	SiteName string
	SiteDesc string

	PageURL string

	SyntaxCSS    template.CSS
	SyntaxTheme  string
	SyntaxThemes []string
}

func NewPageData(r *http.Request) *PageData {
	syntaxTheme := theme.GetSyntaxThemeFromRequest(r)
	return &PageData{
		SiteName:     config.AppConfig.Site.Name,
		SiteDesc:     config.AppConfig.Site.Description,
		PageURL:      r.URL.Path,
		SyntaxTheme:  syntaxTheme,
		SyntaxThemes: theme.GetSyntaxThemes(),
		SyntaxCSS:    theme.GetSyntaxCSS(syntaxTheme),
	}
}

func (pd *PageData) IsPost() bool {
	return strings.HasPrefix(pd.PageURL, config.PostsUrlPath)
}
