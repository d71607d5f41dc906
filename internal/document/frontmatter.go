package document

import (
	"encoding/json"
	"strings"
)

// FrontMatter is the metadata header written at the top of a published
// markdown file.
type FrontMatter struct {
	Title   string   `yaml:"title"`
	Slug    string   `yaml:"slug"`
	Date    string   `yaml:"date"`
	Topics  []string `yaml:"topics"`
	Excerpt string   `yaml:"excerpt"`
}

// WrapFrontMatter prepends the metadata header to a rendered body. Embedded
// double quotes in title and excerpt are escaped; embedded newlines are not
// sanitized and will corrupt the header.
func WrapFrontMatter(fm FrontMatter, body string) string {
	topics := fm.Topics
	if topics == nil {
		topics = []string{}
	}
	// Topics render as a JSON list, which is valid YAML flow syntax.
	topicsJSON, _ := json.Marshal(topics)

	var s strings.Builder
	s.WriteString("---\n")
	s.WriteString("title: \"" + escapeQuotes(fm.Title) + "\"\n")
	s.WriteString("slug: \"" + fm.Slug + "\"\n")
	s.WriteString("date: \"" + fm.Date + "\"\n")
	s.WriteString("topics: " + string(topicsJSON) + "\n")
	s.WriteString("excerpt: \"" + escapeQuotes(fm.Excerpt) + "\"\n")
	s.WriteString("---\n\n")
	s.WriteString(body)
	return s.String()
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
