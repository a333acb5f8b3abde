package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/finops-lab/compliancebot/pkg/domain/types"
)

// TemplateLoader looks up sector policy template bodies from a directory
// of "<sector>.txt" files. Lookup never fails: a missing or unreadable
// template yields an inline placeholder so the workflow can continue.
type TemplateLoader struct {
	dir string
}

// NewTemplateLoader creates a loader reading from dir
func NewTemplateLoader(dir string) *TemplateLoader {
	return &TemplateLoader{dir: dir}
}

// Load returns the template body for the sector, or a placeholder on miss
func (x *TemplateLoader) Load(sector types.Sector) string {
	body, err := os.ReadFile(filepath.Join(x.dir, sector.String()+".txt"))
	if err != nil {
		return fmt.Sprintf("⚠️ Template for %s not found.", sector)
	}
	return string(body)
}
