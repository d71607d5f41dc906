package document

import "strings"

// PlainText flattens a document to its literal text, used for word counts.
func PlainText(doc *Document) string {
	if doc == nil {
		return ""
	}
	var s strings.Builder
	for _, b := range doc.Blocks {
		writeBlockText(&s, b)
	}
	return s.String()
}

func writeBlockText(s *strings.Builder, b Block) {
	switch block := b.(type) {
	case Paragraph:
		writeInlineText(s, block.Content)
	case Heading:
		writeInlineText(s, block.Content)
	case BulletList:
		for _, item := range block.Items {
			writeInlineText(s, item.Content)
		}
	case OrderedList:
		for _, item := range block.Items {
			writeInlineText(s, item.Content)
		}
	case Blockquote:
		for _, p := range block.Paragraphs {
			writeInlineText(s, p)
		}
	case CodeBlock:
		s.WriteString(block.Code)
		s.WriteString(" ")
	case Container:
		writeInlineText(s, block.Content)
	}
}

func writeInlineText(s *strings.Builder, content []Inline) {
	for _, in := range content {
		switch node := in.(type) {
		case Text:
			s.WriteString(node.Text)
			s.WriteString(" ")
		case BlockInline:
			writeBlockText(s, node.Block)
		}
	}
}

// WordCount counts whitespace-separated words in the document's text.
func WordCount(doc *Document) int {
	return len(strings.Fields(PlainText(doc)))
}

// ReadingTime estimates minutes to read at 200 words per minute, rounded up.
func ReadingTime(wordCount int) int {
	return (wordCount + 199) / 200
}
