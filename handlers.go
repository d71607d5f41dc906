package main

import (
	"encoding/xml"
	"html/template"
	"net/http"

	"github.com/amoreira/letterpress/internal/config"
	"github.com/amoreira/letterpress/internal/model"
	"github.com/amoreira/letterpress/internal/render"
	"github.com/amoreira/letterpress/internal/theme"
	"github.com/amoreira/letterpress/internal/util"
)

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	posts := resolver.ListAll()
	if max := config.AppConfig.Content.PostsPerPage; len(posts) > max {
		posts = posts[:max]
	}

	tmpl, err := template.ParseFS(assets,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+config.TemplateIndex,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		*model.PageData
		PostsPath string
		Posts     []model.Post
		Sections  []model.HomeSection
	}{
		PageData:  model.NewPageData(r),
		PostsPath: config.PostsUrlPath,
		Posts:     posts,
		Sections:  homeContent.HomeSections(),
	}

	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func servePost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		http.NotFound(w, r)
		return
	}

	post, err := resolver.Resolve(slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	syntaxTheme := theme.GetSyntaxThemeFromRequest(r)
	htmlContent := render.RenderMarkdownCached(
		[]byte(post.Markdown),
		util.ContentHashString(post.Markdown),
		syntaxTheme,
	)

	tmpl, err := template.ParseFS(assets,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+config.TemplatePost,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		*model.PageData
		Post    *model.Post
		Content template.HTML
	}{
		PageData: model.NewPageData(r),
		Post:     post,
		Content:  template.HTML(htmlContent),
	}

	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func serveMedia(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(assets,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+config.TemplateMedia,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		*model.PageData
		Entries []model.MediaEntry
	}{
		PageData: model.NewPageData(r),
		Entries:  mediaService.ListPublished(),
	}

	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

func serveFeed(w http.ResponseWriter, r *http.Request) {
	site := config.AppConfig.Site

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        site.BaseURL,
			Description: site.Description,
		},
	}

	for _, post := range resolver.ListAll() {
		link := site.BaseURL + config.PostsUrlPath + post.Slug
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       post.Title,
			Link:        link,
			Description: post.Excerpt,
			PubDate:     post.EffectiveDate().Format(http.TimeFormat),
			GUID:        link,
		})
	}

	w.Header().Set(config.HCType, config.CTypeXML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(feed); err != nil {
		appLogger.Error().Err(err).Msg("Error encoding feed")
	}
}

func serveSyntaxThemePostSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	selected := r.FormValue("syntax-theme-select")
	if selected == "" {
		http.Error(w, "theme required", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSyntaxTheme,
		Value:    selected,
		Path:     "/",
		HttpOnly: true,
	})

	writeSyntaxCSS(w, selected)
}

func serveSyntaxThemeGetTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}
	writeSyntaxCSS(w, r.PathValue("theme"))
}

func writeSyntaxCSS(w http.ResponseWriter, syntaxTheme string) {
	css := []byte(theme.GetSyntaxCSS(syntaxTheme))
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(css))
	w.WriteHeader(http.StatusOK)
	w.Write(css)
}
