package document

import (
	"fmt"
	"strings"
)

// Render converts a document to markdown. It is pure and total: every
// document produces some string and identical input yields identical output.
func Render(doc *Document) string {
	if doc == nil || len(doc.Blocks) == 0 {
		return ""
	}

	parts := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		parts[i] = renderBlock(b)
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b Block) string {
	switch block := b.(type) {
	case Paragraph:
		return renderInlines(block.Content)

	case Heading:
		return strings.Repeat("#", block.Level) + " " + renderInlines(block.Content)

	case BulletList:
		lines := make([]string, len(block.Items))
		for i, item := range block.Items {
			lines[i] = "- " + renderInlines(item.Content)
		}
		return strings.Join(lines, "\n")

	case OrderedList:
		lines := make([]string, len(block.Items))
		for i, item := range block.Items {
			lines[i] = fmt.Sprintf("%d. %s", i+1, renderInlines(item.Content))
		}
		return strings.Join(lines, "\n")

	case Blockquote:
		lines := make([]string, len(block.Paragraphs))
		for i, p := range block.Paragraphs {
			lines[i] = "> " + renderInlines(p)
		}
		return strings.Join(lines, "\n")

	case CodeBlock:
		return "```" + block.Language + "\n" + block.Code + "\n```"

	case Image:
		if block.Title != "" {
			return fmt.Sprintf("![%s](%s \"%s\")", block.Alt, block.Src, block.Title)
		}
		return fmt.Sprintf("![%s](%s)", block.Alt, block.Src)

	case HorizontalRule:
		return "---"

	case HardBreak:
		return "  \n"

	case Container:
		return renderInlines(block.Content)

	default:
		return ""
	}
}

func renderInlines(content []Inline) string {
	var s strings.Builder
	for _, in := range content {
		switch node := in.(type) {
		case Text:
			s.WriteString(applyMarks(node.Text, node.Marks))
		case BlockInline:
			s.WriteString(renderBlock(node.Block))
		}
	}
	return s.String()
}

// applyMarks wraps text with each mark in listed order. Unknown mark types
// leave the text unchanged.
func applyMarks(text string, marks []Mark) string {
	for _, m := range marks {
		switch m.Type {
		case MarkBold:
			text = "**" + text + "**"
		case MarkItalic:
			text = "*" + text + "*"
		case MarkStrike:
			text = "~~" + text + "~~"
		case MarkCode:
			text = "`" + text + "`"
		case MarkLink:
			text = "[" + text + "](" + m.Href + ")"
		case MarkHighlight:
			text = "<mark>" + text + "</mark>"
		}
	}
	return text
}
