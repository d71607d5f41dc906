// Command postctl lists the posts in the database from the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/amoreira/letterpress/internal/db"
	"github.com/amoreira/letterpress/internal/model"
	"github.com/amoreira/letterpress/internal/store"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	slugStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	publishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	draftStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
)

func main() {
	dbPath := flag.String("db", "letterpress.db", "sqlite database path")
	draftsOnly := flag.Bool("drafts", false, "only show drafts")
	flag.Parse()

	quiet := zerolog.Nop()
	db.SetLogger(quiet)
	store.SetLogger(quiet)

	database := db.NewSQLite(*dbPath)
	if err := database.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "Error opening database:", err)
		os.Exit(1)
	}
	defer database.Close()

	posts, err := store.NewDBPrimaryStore(database).ListAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error listing posts:", err)
		os.Exit(1)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Posts (%d)", len(posts))))

	shown := 0
	for i := range posts {
		post := &posts[i]
		if *draftsOnly && post.IsPublished() {
			continue
		}
		fmt.Println(renderPost(post))
		shown++
	}

	if shown == 0 {
		fmt.Println(metaStyle.Render("nothing here"))
	}
}

func renderPost(post *model.Post) string {
	status := draftStyle.Render("draft")
	if post.IsPublished() {
		status = publishedStyle.Render("published")
	}

	title := post.Title
	if title == "" {
		title = "(untitled)"
	}

	return fmt.Sprintf("%s %s\n  %s  %s",
		titleStyle.Render(title),
		status,
		slugStyle.Render(post.Slug),
		metaStyle.Render(fmt.Sprintf("%s, %d words, %d min",
			post.EffectiveDate().Format("2006-01-02"), post.WordCount, post.ReadingTime)),
	)
}
