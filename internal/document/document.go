// Package document models the structured rich-text payload produced by the
// CMS editor and converts it to portable markdown.
package document

import "encoding/json"

// Document is the root of a rich-text document: an ordered sequence of
// blocks. A document with no blocks renders to the empty string.
type Document struct {
	Blocks []Block
}

// Block is a closed set of node kinds. Unrecognized node types decode to
// Container so their children still render.
type Block interface{ block() }

type Paragraph struct {
	Content []Inline
}

type Heading struct {
	Level   int
	Content []Inline
}

// ListItem carries only the inline content of the item's first child block.
// Deeper nesting inside an item is dropped, matching the editor's output.
type ListItem struct {
	Content []Inline
}

type BulletList struct {
	Items []ListItem
}

type OrderedList struct {
	Items []ListItem
}

type Blockquote struct {
	Paragraphs [][]Inline
}

type CodeBlock struct {
	Language string
	Code     string
}

type Image struct {
	Src   string
	Alt   string
	Title string
}

type HorizontalRule struct{}

type HardBreak struct{}

// Container is the fallback for unknown node types: render the children as
// inline content, or nothing when there are none.
type Container struct {
	Content []Inline
}

func (Paragraph) block()      {}
func (Heading) block()        {}
func (BulletList) block()     {}
func (OrderedList) block()    {}
func (Blockquote) block()     {}
func (CodeBlock) block()      {}
func (Image) block()          {}
func (HorizontalRule) block() {}
func (HardBreak) block()      {}
func (Container) block()      {}

// Inline is either a text run with marks or a nested block.
type Inline interface{ inline() }

type Text struct {
	Text  string
	Marks []Mark
}

type BlockInline struct {
	Block Block
}

func (Text) inline()        {}
func (BlockInline) inline() {}

type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkStrike    MarkType = "strike"
	MarkCode      MarkType = "code"
	MarkLink      MarkType = "link"
	MarkHighlight MarkType = "highlight"
)

// Mark is an inline formatting annotation. Marks apply in listed order, each
// wrapping the running text. Unknown types are carried but render as a
// no-op.
type Mark struct {
	Type MarkType
	Href string
}

// rawNode mirrors the editor's untyped JSON tree.
type rawNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Content []rawNode      `json:"content,omitempty"`
	Marks   []rawMark      `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

type rawMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Parse decodes an editor JSON payload into a Document. Malformed nodes
// degrade to defaults; only invalid JSON returns an error, which callers on
// read paths treat as an empty document.
func Parse(data []byte) (*Document, error) {
	var root rawNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return fromRaw(root), nil
}

func fromRaw(root rawNode) *Document {
	doc := &Document{}
	for _, n := range root.Content {
		doc.Blocks = append(doc.Blocks, blockFromRaw(n))
	}
	return doc
}

func blockFromRaw(n rawNode) Block {
	switch n.Type {
	case "paragraph":
		return Paragraph{Content: inlinesFromRaw(n.Content)}
	case "heading":
		return Heading{Level: attrInt(n.Attrs, "level", 2), Content: inlinesFromRaw(n.Content)}
	case "bulletList":
		return BulletList{Items: itemsFromRaw(n.Content)}
	case "orderedList":
		return OrderedList{Items: itemsFromRaw(n.Content)}
	case "blockquote":
		paragraphs := make([][]Inline, 0, len(n.Content))
		for _, p := range n.Content {
			paragraphs = append(paragraphs, inlinesFromRaw(p.Content))
		}
		return Blockquote{Paragraphs: paragraphs}
	case "codeBlock":
		return CodeBlock{Language: attrString(n.Attrs, "language"), Code: rawText(n.Content)}
	case "image":
		return Image{
			Src:   attrString(n.Attrs, "src"),
			Alt:   attrString(n.Attrs, "alt"),
			Title: attrString(n.Attrs, "title"),
		}
	case "horizontalRule":
		return HorizontalRule{}
	case "hardBreak":
		return HardBreak{}
	default:
		return Container{Content: inlinesFromRaw(n.Content)}
	}
}

// itemsFromRaw keeps only the first child block of each list item.
func itemsFromRaw(items []rawNode) []ListItem {
	out := make([]ListItem, 0, len(items))
	for _, item := range items {
		var content []Inline
		if len(item.Content) > 0 {
			content = inlinesFromRaw(item.Content[0].Content)
		}
		out = append(out, ListItem{Content: content})
	}
	return out
}

func inlinesFromRaw(nodes []rawNode) []Inline {
	out := make([]Inline, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == "text" {
			marks := make([]Mark, 0, len(n.Marks))
			for _, m := range n.Marks {
				marks = append(marks, Mark{Type: MarkType(m.Type), Href: attrString(m.Attrs, "href")})
			}
			out = append(out, Text{Text: n.Text, Marks: marks})
			continue
		}
		out = append(out, BlockInline{Block: blockFromRaw(n)})
	}
	return out
}

// rawText concatenates the literal text of a subtree, ignoring marks.
func rawText(nodes []rawNode) string {
	var s string
	for _, n := range nodes {
		s += n.Text
		s += rawText(n.Content)
	}
	return s
}

func attrString(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

func attrInt(attrs map[string]any, key string, fallback int) int {
	// JSON numbers decode as float64.
	if v, ok := attrs[key].(float64); ok && v != 0 {
		return int(v)
	}
	return fallback
}
