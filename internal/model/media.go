package model

import "time"

type MediaEntryID string

// Track is a song listened to during the week.
type Track struct {
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	AlbumArt string `json:"albumArt,omitempty"`
}

type MediaItemType string

const (
	MediaBook    MediaItemType = "book"
	MediaFilm    MediaItemType = "film"
	MediaPodcast MediaItemType = "podcast"
	MediaArticle MediaItemType = "article"
	MediaShow    MediaItemType = "show"
)

type MediaItem struct {
	Title string        `json:"title"`
	Type  MediaItemType `json:"type"`
	Note  string        `json:"note,omitempty"`
	URL   string        `json:"url,omitempty"`
}

// MediaEntry is one week of the media log. WeekStart and WeekEnd are
// YYYY-MM-DD dates (Monday and Sunday).
type MediaEntry struct {
	ID MediaEntryID `json:"id"`

	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`

	Tracks []Track     `json:"tracks"`
	Media  []MediaItem `json:"media"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}
