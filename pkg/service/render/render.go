package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
)

// Service renders structured document content into paginated PDF files
// under the output directory.
type Service struct {
	outputDir string
	now       func() time.Time
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithClock overrides the filename timestamp source (for tests)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a renderer writing into outputDir, creating it if needed
func New(outputDir string, opts ...Option) (*Service, error) {
	if outputDir == "" {
		return nil, goerr.New("output directory is required")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", outputDir))
	}

	s := &Service{
		outputDir: outputDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Document renders the document into "<name>_<millis>.pdf" and returns
// the generated filename. Headings are centered and colored, bullets are
// indented, blank lines produce paragraph spacing; pages break
// automatically.
func (s *Service) Document(doc *model.Document, name string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetTextColor(0, 122, 204)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, tr(doc.Title), "", "C", false)
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 12)

	for _, line := range doc.Lines {
		switch line.Kind {
		case model.LineHeading:
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, tr(line.Text), "", "L", false)
			pdf.SetFont("Helvetica", "", 12)
		case model.LineBullet:
			left, _, _, _ := pdf.GetMargins()
			pdf.SetLeftMargin(left + 6)
			pdf.SetX(left + 6)
			pdf.MultiCell(0, 6, tr("• "+line.Text), "", "L", false)
			pdf.SetLeftMargin(left)
		case model.LineBlank:
			pdf.Ln(4)
		default:
			pdf.MultiCell(0, 6, tr(line.Text), "", "L", false)
		}
	}

	filename := fmt.Sprintf("%s_%d.pdf", name, s.now().UnixMilli())
	path := filepath.Join(s.outputDir, filename)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", goerr.Wrap(err, "failed to write PDF", goerr.V("path", path))
	}

	return filename, nil
}

// OutputDir returns the directory generated documents are written to
func (s *Service) OutputDir() string {
	return s.outputDir
}
