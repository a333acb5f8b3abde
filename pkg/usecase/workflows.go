package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/finops-lab/compliancebot/pkg/domain/model/slack"
	"github.com/finops-lab/compliancebot/pkg/domain/types"
	"github.com/finops-lab/compliancebot/pkg/utils/errutil"
	"github.com/finops-lab/compliancebot/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// buildWorkflow returns the ordered step sequence for the intent, or nil
// for a no-op.
func (uc *UseCases) buildWorkflow(intent types.Intent, msg *slack.Message) []step {
	switch intent {
	case types.IntentUploadPrompt:
		return uc.uploadPromptWorkflow()
	case types.IntentValidatePolicy:
		return uc.validatePolicyWorkflow(msg)
	case types.IntentGenerateTemplate:
		return uc.generateTemplateWorkflow(msg)
	case types.IntentCustomRules:
		return uc.customRulesWorkflow(msg)
	case types.IntentRunAudit:
		return uc.runAuditWorkflow(msg)
	case types.IntentRunFraudDetection:
		return uc.fraudDetectionWorkflow(msg)
	case types.IntentOpenCase:
		return uc.openCaseWorkflow(msg)
	case types.IntentThanks:
		return uc.thanksWorkflow()
	case types.IntentAnalyzeRules:
		return uc.analyzeRulesWorkflow(msg)
	default:
		return nil
	}
}

func (uc *UseCases) uploadPromptWorkflow() []step {
	return []step{
		{message: "📎 Please upload your compliance policy PDF in this thread."},
	}
}

func (uc *UseCases) validatePolicyWorkflow(msg *slack.Message) []step {
	var raw []byte

	return []step{
		{message: "📩 Starting validation for uploaded policy..."},
		{
			message: "📥 Downloading your PDF...",
			action: func(ctx context.Context) error {
				var err error
				raw, err = uc.downloadFirstFile(ctx, msg)
				return err
			},
		},
		{
			message: "🤖 Validating with GPT-4o and internal rule engine...",
			action: func(ctx context.Context) error {
				if uc.extractor == nil {
					return goerr.Wrap(ErrNotConfigured, "text extractor is not configured")
				}
				// Validation only needs the document to be readable; the
				// check table itself is produced by the rule engine below
				if _, err := uc.extractor.Text(raw); err != nil {
					return err
				}
				return nil
			},
		},
		{
			action: func(ctx context.Context) error {
				return uc.post(ctx, msg, formatValidationReport())
			},
		},
	}
}

func (uc *UseCases) generateTemplateWorkflow(msg *slack.Message) []step {
	sector := types.ClassifySector(msg.Text())
	var filename string

	return []step{
		{message: fmt.Sprintf("🛠️ Preparing compliance template for *%s*...", sector)},
		{message: "📡 Fetching latest standards from rule engine..."},
		{
			message: "📦 Building your PDF document...",
			action: func(ctx context.Context) error {
				// Template lookup fails soft: a miss becomes an inline
				// placeholder inside the document
				body := uc.loadTemplate(sector)
				doc := model.NewDocumentFromText(
					fmt.Sprintf("📝 Compliance Policy: %s", strings.ToUpper(sector.String())),
					body,
				)

				var err error
				filename, err = uc.renderDocument(doc, sector.String())
				return err
			},
		},
		{
			action: func(ctx context.Context) error {
				blocks := downloadButtonBlocks(
					fmt.Sprintf("✅ Your *%s* compliance policy is ready.", sector),
					uc.documentURL(filename),
				)
				return uc.postBlocks(ctx, msg, blocks, "Your compliance policy is ready.")
			},
		},
	}
}

func (uc *UseCases) customRulesWorkflow(msg *slack.Message) []step {
	rules := parseCustomRules(msg.Text())
	if len(rules) == 0 {
		return []step{
			{action: func(ctx context.Context) error {
				return goerr.Wrap(ErrNoCustomRules, "empty custom rule list")
			}},
		}
	}

	var filename string

	return []step{
		{message: "🧠 Parsing your custom rules..."},
		{message: "🔍 Checking structure & formatting..."},
		{
			message: "📄 Generating your PDF...",
			action: func(ctx context.Context) error {
				doc := &model.Document{Title: "📝 Compliance Policy: CUSTOM"}
				doc.Heading("Custom Rules")
				for _, rule := range rules {
					doc.Bullet(rule)
				}

				var err error
				filename, err = uc.renderDocument(doc, "custom")
				return err
			},
		},
		{
			action: func(ctx context.Context) error {
				blocks := downloadButtonBlocks(
					"✅ Your *custom* compliance policy is ready.",
					uc.documentURL(filename),
				)
				return uc.postBlocks(ctx, msg, blocks, "Your compliance policy is ready.")
			},
		},
	}
}

func (uc *UseCases) runAuditWorkflow(msg *slack.Message) []step {
	var batch []model.ExpenseRecord

	return []step{
		{message: "📊 Starting compliance audit..."},
		{message: "🔍 Fetching invoices from last 10 days..."},
		{
			message: "🧠 Running GPT-4o + rules engine...",
			action: func(ctx context.Context) error {
				// Synthetic demo batch; there is no live invoice source
				batch = model.DemoExpenseBatch()

				threadID := msg.ThreadID()
				if err := uc.repo.ThreadState().Put(ctx, threadID, batch); err != nil {
					return goerr.Wrap(err, "failed to store audit batch", goerr.V(ThreadIDKey, threadID.String()))
				}
				return nil
			},
		},
		{
			action: func(ctx context.Context) error {
				return uc.post(ctx, msg, formatAuditSummary(batch))
			},
		},
		{
			action: func(ctx context.Context) error {
				return uc.post(ctx, msg, formatViolationTable(batch))
			},
		},
	}
}

func (uc *UseCases) fraudDetectionWorkflow(msg *slack.Message) []step {
	var records []model.ExpenseRecord

	return []step{
		{
			// Precondition check first: if no audit ran in this thread,
			// the only emission is the explanatory message
			action: func(ctx context.Context) error {
				threadID := msg.ThreadID()
				stored, ok, err := uc.repo.ThreadState().Get(ctx, threadID)
				if err != nil {
					return goerr.Wrap(err, "failed to load audit batch", goerr.V(ThreadIDKey, threadID.String()))
				}
				if !ok {
					return goerr.Wrap(ErrNoAuditRecords, "fraud detection requested before audit", goerr.V(ThreadIDKey, threadID.String()))
				}
				records = stored
				return nil
			},
		},
		{message: "🕵️ Scanning the audited batch for fraud patterns..."},
		{
			action: func(ctx context.Context) error {
				findings := model.EvaluateExpenses(records)
				if len(findings) == 0 {
					return uc.post(ctx, msg, "✅ No suspicious patterns found in the audited batch.")
				}
				return uc.post(ctx, msg, formatFindings(findings))
			},
		},
	}
}

func (uc *UseCases) openCaseWorkflow(msg *slack.Message) []step {
	return []step{
		{message: "📨 Opening a compliance case..."},
		{
			action: func(ctx context.Context) error {
				caseID := uc.newID()
				if len(caseID) > 8 {
					caseID = caseID[:8]
				}
				caseID = strings.ToUpper(caseID)
				return uc.post(ctx, msg, fmt.Sprintf(
					"✅ Case *CASE-%s* opened with the Compliance Ops team. Expect a first response within 2 business days.",
					caseID,
				))
			},
		},
	}
}

func (uc *UseCases) thanksWorkflow() []step {
	return []step{
		{}, // think-time pause before the acknowledgment
		{message: "You're welcome! 🙌 Happy to help keep things compliant."},
	}
}

func (uc *UseCases) analyzeRulesWorkflow(msg *slack.Message) []step {
	var (
		raw   []byte
		text  string
		rules string
	)

	return []step{
		{message: "📩 Got it! Analyzing the attached policy document..."},
		{
			message: "📥 Downloading your PDF...",
			action: func(ctx context.Context) error {
				var err error
				raw, err = uc.downloadFirstFile(ctx, msg)
				return err
			},
		},
		{
			message: "🤖 Extracting compliance rules with the AI engine...",
			action: func(ctx context.Context) error {
				if uc.extractor == nil || uc.ruleAI == nil {
					return goerr.Wrap(ErrNotConfigured, "AI analysis is not configured")
				}

				var err error
				if text, err = uc.extractor.Text(raw); err != nil {
					return err
				}

				callCtx, cancel := uc.callCtx(ctx)
				defer cancel()
				if rules, err = uc.ruleAI.ExtractRules(callCtx, text); err != nil {
					return err
				}

				uc.persistAnalysis(ctx, msg, text, rules)
				return nil
			},
		},
		{
			action: func(ctx context.Context) error {
				return uc.post(ctx, msg, formatRulesReport(rules, len(text)))
			},
		},
	}
}

// persistAnalysis durably records an extraction run for auditability.
// A storage failure is logged but does not abort the workflow: the user
// still receives the report.
func (uc *UseCases) persistAnalysis(ctx context.Context, msg *slack.Message, text, rules string) {
	record := &model.AnalysisRecord{
		ID:          uc.newID(),
		DocumentID:  firstFileID(msg),
		RequesterID: msg.UserID(),
		Filename:    firstFileName(msg),
		ExtractedAt: uc.now().UTC(),
		Rules:       rules,
		SourceChars: len(text),
	}

	if err := uc.repo.Analysis().Put(ctx, record); err != nil {
		errutil.Handle(ctx, err, "failed to persist analysis record")
		return
	}

	logging.From(ctx).Info("analysis record persisted",
		"record_id", record.ID,
		"document_id", record.DocumentID,
		"requester_id", record.RequesterID,
		"source_chars", record.SourceChars,
	)
}

// downloadFirstFile fetches the first attached file's content
func (uc *UseCases) downloadFirstFile(ctx context.Context, msg *slack.Message) ([]byte, error) {
	files := msg.Files()
	if len(files) == 0 {
		return nil, goerr.Wrap(ErrNoAttachment, "message has no files")
	}

	callCtx, cancel := uc.callCtx(ctx)
	defer cancel()

	raw, err := uc.slack.DownloadFile(callCtx, files[0].DownloadURL())
	if err != nil {
		return nil, goerr.Wrap(ErrDownloadFailed, "failed to fetch attachment",
			goerr.V(FileIDKey, files[0].ID()),
			goerr.V("cause", err.Error()),
		)
	}
	return raw, nil
}

// renderDocument renders a document, mapping failures onto the
// collaborator error taxonomy
func (uc *UseCases) renderDocument(doc *model.Document, name string) (string, error) {
	if uc.renderer == nil {
		return "", goerr.Wrap(ErrNotConfigured, "document renderer is not configured")
	}

	filename, err := uc.renderer.Document(doc, name)
	if err != nil {
		return "", goerr.Wrap(ErrRenderFailed, "renderer error", goerr.V("name", name), goerr.V("cause", err.Error()))
	}
	return filename, nil
}

// loadTemplate resolves the sector template, falling back to a
// placeholder when no loader is configured
func (uc *UseCases) loadTemplate(sector types.Sector) string {
	if uc.templates == nil {
		return fmt.Sprintf("⚠️ Template for %s not found.", sector)
	}
	return uc.templates.Load(sector)
}

// documentURL builds the public link for a generated document
func (uc *UseCases) documentURL(filename string) string {
	return strings.TrimRight(uc.baseURL, "/") + "/pdf/generated/" + filename
}

// parseCustomRules splits free text on the "rules:" delimiter, then ";".
// The delimiter match is case-insensitive; the rule text keeps its
// original casing. Indexing into a separately lowered copy would be
// wrong here: ToLower is not length-preserving.
func parseCustomRules(text string) []string {
	idx := indexFold(text, "rules:")
	if idx < 0 {
		return nil
	}

	var rules []string
	for _, part := range strings.Split(text[idx+len("rules:"):], ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			rules = append(rules, trimmed)
		}
	}
	return rules
}

// indexFold returns the byte offset of the first case-insensitive match
// of the ASCII substring sub in s, or -1
func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func firstFileID(msg *slack.Message) string {
	if files := msg.Files(); len(files) > 0 {
		return files[0].ID()
	}
	return ""
}

func firstFileName(msg *slack.Message) string {
	if files := msg.Files(); len(files) > 0 {
		return files[0].Name()
	}
	return ""
}
