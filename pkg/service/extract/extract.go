package extract

import (
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/m-mizutani/goerr/v2"
)

// ErrUnreadable is returned when a document cannot be parsed: encrypted,
// corrupt, or containing no extractable text.
var ErrUnreadable = goerr.New("document is unreadable")

// Service extracts plain text from uploaded policy documents
type Service struct{}

// New creates a new extraction service
func New() *Service {
	return &Service{}
}

// Text extracts plain text from raw PDF bytes. All pages are
// concatenated in order. Unreadable input wraps ErrUnreadable.
func (s *Service) Text(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", goerr.Wrap(ErrUnreadable, "empty document")
	}

	doc, err := fitz.NewFromMemory(raw)
	if err != nil {
		return "", goerr.Wrap(ErrUnreadable, "failed to open document", goerr.V("cause", err.Error()))
	}
	defer func() {
		_ = doc.Close()
	}()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", goerr.Wrap(ErrUnreadable, "failed to extract page text", goerr.V("page", i), goerr.V("cause", err.Error()))
		}
		sb.WriteString(text)
	}

	extracted := strings.TrimSpace(sb.String())
	if extracted == "" {
		return "", goerr.Wrap(ErrUnreadable, "document contains no text")
	}

	return extracted, nil
}
