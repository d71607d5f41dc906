package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/amoreira/letterpress/internal/auth"
	"github.com/amoreira/letterpress/internal/config"
	"github.com/amoreira/letterpress/internal/content"
	"github.com/amoreira/letterpress/internal/document"
	"github.com/amoreira/letterpress/internal/model"
	"github.com/amoreira/letterpress/internal/routes"
)

func registerAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc(routes.APIPosts, auth.RequireUser(authProvider, handlePosts))
	mux.HandleFunc(routes.APIPost, auth.RequireUser(authProvider, handlePost))
	mux.HandleFunc(routes.APIPostPublish, auth.RequireUser(authProvider, handlePostPublish))

	mux.HandleFunc(routes.APIMediaEntries, auth.RequireUser(authProvider, handleMediaEntries))
	mux.HandleFunc(routes.APIMediaEntry, auth.RequireUser(authProvider, handleMediaEntry))

	mux.HandleFunc(routes.APIHomeContent, auth.RequireUser(authProvider, handleHomeContent))
}

// apiPost is the JSON shape of a post in the CMS API. The document is the
// editor's raw structured payload, passed through untouched.
type apiPost struct {
	ID          model.PostID     `json:"id"`
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Excerpt     string           `json:"excerpt"`
	Topics      []string         `json:"topics"`
	Status      model.PostStatus `json:"status"`
	Document    json.RawMessage  `json:"document,omitempty"`
	WordCount   int              `json:"wordCount"`
	ReadingTime int              `json:"readingTime"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	PublishedAt *time.Time       `json:"publishedAt,omitempty"`
}

func toAPIPost(post *model.Post) apiPost {
	topics := post.Topics
	if topics == nil {
		topics = []string{}
	}
	return apiPost{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Topics:      topics,
		Status:      post.Status,
		Document:    json.RawMessage(post.Document),
		WordCount:   post.WordCount,
		ReadingTime: post.ReadingTime,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
		PublishedAt: post.PublishedAt,
	}
}

type postPayload struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Excerpt  string          `json:"excerpt"`
	Topics   []string        `json:"topics"`
	Document json.RawMessage `json:"document"`
}

// applyPayload copies editable fields onto the post and recomputes the
// word count and reading time from the document.
func applyPayload(post *model.Post, payload *postPayload) {
	if payload.Slug != "" {
		post.Slug = payload.Slug
	}
	post.Title = payload.Title
	post.Excerpt = payload.Excerpt
	post.Topics = payload.Topics
	post.Document = []byte(payload.Document)
	post.UpdatedAt = time.Now().UTC()

	post.WordCount = 0
	if doc, err := document.Parse(post.Document); err == nil {
		post.WordCount = document.WordCount(doc)
	}
	post.ReadingTime = document.ReadingTime(post.WordCount)
}

func handlePosts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		posts, err := primaryStore.ListAll()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		out := make([]apiPost, 0, len(posts))
		for i := range posts {
			out = append(out, toAPIPost(&posts[i]))
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var payload postPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		post := primaryStore.NewPost(payload.Slug)
		applyPayload(post, &payload)

		if err := primaryStore.Create(post); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAPIPost(post))
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func handlePost(w http.ResponseWriter, r *http.Request) {
	id := model.PostID(r.PathValue("id"))

	post, err := primaryStore.GetByID(id)
	if errors.Is(err, model.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, toAPIPost(post))
	case http.MethodPut:
		var payload postPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		applyPayload(post, &payload)
		if err := primaryStore.Update(post); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, toAPIPost(post))
	case http.MethodDelete:
		if err := primaryStore.Delete(id); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func handlePostPublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	post, err := primaryStore.GetByID(model.PostID(r.PathValue("id")))
	if errors.Is(err, model.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	published, err := publisher.Publish(post)
	switch {
	case errors.Is(err, content.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, toAPIPost(published))
	}
}

type mediaPayload struct {
	WeekStart   string            `json:"weekStart"`
	WeekEnd     string            `json:"weekEnd"`
	Tracks      []model.Track     `json:"tracks"`
	Media       []model.MediaItem `json:"media"`
	PublishedAt *time.Time        `json:"publishedAt"`
}

func handleMediaEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := mediaService.ListAll()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	case http.MethodPost:
		var payload mediaPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		entry := mediaService.NewEntry(time.Now())
		applyMediaPayload(entry, &payload)

		if err := mediaService.Create(entry); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func handleMediaEntry(w http.ResponseWriter, r *http.Request) {
	id := model.MediaEntryID(r.PathValue("id"))

	entry, err := mediaService.GetByID(id)
	if errors.Is(err, model.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, entry)
	case http.MethodPut:
		var payload mediaPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		applyMediaPayload(entry, &payload)
		if err := mediaService.Update(entry); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodDelete:
		if err := mediaService.Delete(id); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func applyMediaPayload(entry *model.MediaEntry, payload *mediaPayload) {
	if payload.WeekStart != "" {
		entry.WeekStart = payload.WeekStart
	}
	if payload.WeekEnd != "" {
		entry.WeekEnd = payload.WeekEnd
	}
	entry.Tracks = payload.Tracks
	entry.Media = payload.Media
	entry.PublishedAt = payload.PublishedAt
	entry.UpdatedAt = time.Now().UTC()
}

func handleHomeContent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, model.HomePageSettings{Sections: homeContent.HomeSections()})
	case http.MethodPut:
		var settings model.HomePageSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := homeContent.SaveHomeSections(settings.Sections); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLogger.Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	appLogger.Error().Err(err).Int("status", status).Msg("API error")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
