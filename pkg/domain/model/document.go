package model

import "strings"

// LineKind distinguishes how a document line is rendered
type LineKind string

const (
	LineHeading LineKind = "heading"
	LineBullet  LineKind = "bullet"
	LineText    LineKind = "text"
	LineBlank   LineKind = "blank"
)

// DocumentLine is one line of structured document content
type DocumentLine struct {
	Kind LineKind
	Text string
}

// Document is multi-section paginated document content handed to the
// PDF renderer. Heading lines are marked distinctly from bullet lines,
// bullets are indented, blank lines produce paragraph spacing.
type Document struct {
	Title string
	Lines []DocumentLine
}

// Heading appends a heading line
func (x *Document) Heading(text string) {
	x.Lines = append(x.Lines, DocumentLine{Kind: LineHeading, Text: text})
}

// Bullet appends a bullet line
func (x *Document) Bullet(text string) {
	x.Lines = append(x.Lines, DocumentLine{Kind: LineBullet, Text: text})
}

// Text appends a plain text line
func (x *Document) Text(text string) {
	x.Lines = append(x.Lines, DocumentLine{Kind: LineText, Text: text})
}

// Blank appends a paragraph break
func (x *Document) Blank() {
	x.Lines = append(x.Lines, DocumentLine{Kind: LineBlank})
}

// NewDocumentFromText builds a document from plain template text.
// Lines prefixed "# " become headings, "- " or "• " become bullets,
// empty lines become paragraph breaks, everything else is plain text.
func NewDocumentFromText(title, body string) *Document {
	doc := &Document{Title: title}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		switch {
		case trimmed == "":
			doc.Blank()
		case strings.HasPrefix(trimmed, "# "):
			doc.Heading(strings.TrimPrefix(trimmed, "# "))
		case strings.HasPrefix(trimmed, "- "):
			doc.Bullet(strings.TrimPrefix(trimmed, "- "))
		case strings.HasPrefix(trimmed, "• "):
			doc.Bullet(strings.TrimPrefix(trimmed, "• "))
		default:
			doc.Text(trimmed)
		}
	}

	return doc
}
