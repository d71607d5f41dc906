// Package routes defines HTTP route constants for the application.
package routes

// Public pages
const (
	RootPath   = "/"
	PostsPath  = "/posts/{slug}"
	MediaPath  = "/media"
	FeedPath   = "/feed.xml"
	RobotsPath = "/robots.txt"

	SyntaxThemeSet = "/syntax-theme/set"
	SyntaxThemeGet = "/syntax-theme/{theme}"
)

// CMS API
const (
	APIPosts       = "/api/posts"
	APIPost        = "/api/posts/{id}"
	APIPostPublish = "/api/posts/{id}/publish"

	APIMediaEntries = "/api/media"
	APIMediaEntry   = "/api/media/{id}"

	APIHomeContent = "/api/cms/home"
)
