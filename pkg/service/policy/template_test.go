package policy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finops-lab/compliancebot/pkg/domain/types"
	"github.com/finops-lab/compliancebot/pkg/service/policy"
	"github.com/m-mizutani/gt"
)

func TestTemplateLoader(t *testing.T) {
	dir := t.TempDir()
	body := "# Finance Compliance Policy\n- Max ₹5000 per claim\n- Receipts required\n"
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "finance.txt"), []byte(body), 0600))

	loader := policy.NewTemplateLoader(dir)

	t.Run("existing template", func(t *testing.T) {
		gt.Value(t, loader.Load(types.SectorFinance)).Equal(body)
	})

	t.Run("missing template yields placeholder", func(t *testing.T) {
		gt.Value(t, loader.Load(types.SectorTravel)).Equal("⚠️ Template for travel not found.")
	})

	t.Run("missing directory yields placeholder", func(t *testing.T) {
		loader := policy.NewTemplateLoader(filepath.Join(dir, "nope"))
		gt.Value(t, loader.Load(types.SectorHealthcare)).Equal("⚠️ Template for healthcare not found.")
	})
}
