package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	slackmodel "github.com/finops-lab/compliancebot/pkg/domain/model/slack"
	"github.com/finops-lab/compliancebot/pkg/domain/types"
	"github.com/finops-lab/compliancebot/pkg/repository/memory"
	"github.com/finops-lab/compliancebot/pkg/service/ai"
	"github.com/finops-lab/compliancebot/pkg/service/extract"
	"github.com/finops-lab/compliancebot/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	libslack "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// slackRecorder is a fake Slack service capturing outbound messages
type slackRecorder struct {
	messages    []string
	blockTexts  []string
	fileContent []byte
	downloadErr error
}

func (r *slackRecorder) PostMessage(ctx context.Context, channelID, text, threadTS string) (string, error) {
	r.messages = append(r.messages, text)
	return "1700000099.000001", nil
}

func (r *slackRecorder) PostBlocks(ctx context.Context, channelID string, blocks []libslack.Block, text, threadTS string) (string, error) {
	r.blockTexts = append(r.blockTexts, text)
	return "1700000099.000002", nil
}

func (r *slackRecorder) DownloadFile(ctx context.Context, downloadURL string) ([]byte, error) {
	if r.downloadErr != nil {
		return nil, r.downloadErr
	}
	return r.fileContent, nil
}

// fixedExtractor is a fake text extractor
type fixedExtractor struct {
	text string
	err  error
}

func (x *fixedExtractor) Text(raw []byte) (string, error) {
	if x.err != nil {
		return "", x.err
	}
	return x.text, nil
}

// fixedRenderer is a fake document renderer
type fixedRenderer struct {
	filename string
	docs     []*model.Document
}

func (x *fixedRenderer) Document(doc *model.Document, name string) (string, error) {
	x.docs = append(x.docs, doc)
	return x.filename, nil
}

// fixedRuleAI is a fake rule extractor
type fixedRuleAI struct {
	rules  string
	err    error
	called int
}

func (x *fixedRuleAI) ExtractRules(ctx context.Context, text string) (string, error) {
	x.called++
	if x.err != nil {
		return "", x.err
	}
	return x.rules, nil
}

func newMessage(text string, files []slackmodel.File) *slackmodel.Message {
	return slackmodel.NewMessageFromData(
		"1700000001.000100", "C123", "", "T123", "U123",
		text, "1700000001.000100", files, time.Now(),
	)
}

func pdfFile() []slackmodel.File {
	return []slackmodel.File{
		slackmodel.NewFileFromData(
			"F001", "policy.pdf", "application/pdf", "pdf", 2048,
			"https://files.slack.com/private/policy.pdf",
			"https://files.slack.com/download/policy.pdf",
		),
	}
}

func newTestUseCases(recorder *slackRecorder, opts ...usecase.Option) *usecase.UseCases {
	base := []usecase.Option{
		usecase.WithSleeper(func(ctx context.Context, d time.Duration) {}),
		usecase.WithBaseURL("https://compliancebot.example.com"),
		usecase.WithIDSource(func() string { return "cafe0123-4567-89ab-cdef-000000000000" }),
		usecase.WithClock(func() time.Time { return time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC) }),
	}
	return usecase.New(memory.New(), recorder, append(base, opts...)...)
}

func TestAuditThenFraudDetection(t *testing.T) {
	ctx := context.Background()
	recorder := &slackRecorder{}
	repo := memory.New()
	uc := usecase.New(repo, recorder,
		usecase.WithSleeper(func(ctx context.Context, d time.Duration) {}),
	)

	gt.NoError(t, uc.HandleMessage(ctx, newMessage("run an audit", nil))).Required()

	// Three progress messages, the summary, and the violation table
	gt.Array(t, recorder.messages).Length(5).Required()
	gt.String(t, recorder.messages[3]).Contains("AUDIT SUMMARY: 5 invoices")
	gt.String(t, recorder.messages[4]).Contains("INVOICE DETAILS")

	// Records are stored under the same thread
	threadID := types.NewThreadID("C123", "", "1700000001.000100")
	records, ok, err := repo.ThreadState().Get(ctx, threadID)
	gt.NoError(t, err)
	gt.Bool(t, ok).True()
	gt.Array(t, records).Length(5)

	recorder.messages = nil
	gt.NoError(t, uc.HandleMessage(ctx, newMessage("run fraud detection", nil))).Required()

	gt.Array(t, recorder.messages).Length(2).Required()
	gt.String(t, recorder.messages[0]).Contains("Scanning the audited batch")

	report := recorder.messages[1]
	gt.String(t, report).Contains("5 suspicious pattern(s)")
	gt.String(t, report).Contains("4900")
	gt.String(t, report).Contains("alice.k")
	gt.String(t, report).Contains("sam.p")
	gt.String(t, report).Contains("4950")
	gt.String(t, report).Contains("unauthorized.user")
}

func TestFraudDetectionWithoutAudit(t *testing.T) {
	ctx := context.Background()
	recorder := &slackRecorder{}
	uc := newTestUseCases(recorder)

	gt.NoError(t, uc.HandleMessage(ctx, newMessage("run fraud detection", nil))).Required()

	// Only the precondition message; the evaluator never ran
	gt.Array(t, recorder.messages).Length(1).Required()
	gt.String(t, recorder.messages[0]).Contains("Run an audit first")
}

func TestValidatePolicy(t *testing.T) {
	t.Run("readable document produces the validation report", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{fileContent: []byte("%PDF-1.4 ...")}
		uc := newTestUseCases(recorder,
			usecase.WithExtractor(&fixedExtractor{text: "max 5000 per claim"}),
		)

		gt.NoError(t, uc.HandleMessage(ctx, newMessage("validate this policy", pdfFile()))).Required()

		gt.Array(t, recorder.messages).Length(4).Required()
		gt.String(t, recorder.messages[3]).Contains("COMPLIANCE VALIDATION REPORT")
		gt.String(t, recorder.messages[3]).Contains("3/5 checks passed")
	})

	t.Run("unreadable document stops before the report", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{fileContent: []byte("encrypted junk")}
		uc := newTestUseCases(recorder,
			usecase.WithExtractor(&fixedExtractor{err: goerr.Wrap(extract.ErrUnreadable, "encrypted")}),
		)

		gt.NoError(t, uc.HandleMessage(ctx, newMessage("validate this policy", pdfFile()))).Required()

		last := recorder.messages[len(recorder.messages)-1]
		gt.String(t, last).Contains("Could not parse your PDF")
		for _, msg := range recorder.messages {
			gt.Bool(t, strings.Contains(msg, "VALIDATION REPORT")).False()
		}
	})
}

func TestGenerateTemplate(t *testing.T) {
	ctx := context.Background()
	recorder := &slackRecorder{}
	renderer := &fixedRenderer{filename: "healthcare_1750852800000.pdf"}
	uc := newTestUseCases(recorder,
		usecase.WithRenderer(renderer),
	)

	gt.NoError(t, uc.HandleMessage(ctx, newMessage("generate template for healthcare", nil))).Required()

	gt.Array(t, recorder.messages).Length(3).Required()
	gt.String(t, recorder.messages[0]).Contains("healthcare")

	// Without a template loader the document carries the placeholder body
	gt.Array(t, renderer.docs).Length(1).Required()
	gt.Value(t, renderer.docs[0].Title).Equal("📝 Compliance Policy: HEALTHCARE")

	// The final artifact is the download button
	gt.Array(t, recorder.blockTexts).Length(1)
}

func TestCustomRules(t *testing.T) {
	t.Run("renders one bullet per rule", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{}
		renderer := &fixedRenderer{filename: "custom_1750852800000.pdf"}
		uc := newTestUseCases(recorder, usecase.WithRenderer(renderer))

		msg := newMessage("apply these rules: max ₹5000 per claim; receipts required; no backdated approvals", nil)
		gt.NoError(t, uc.HandleMessage(ctx, msg)).Required()

		gt.Array(t, renderer.docs).Length(1).Required()
		doc := renderer.docs[0]

		var bullets []string
		for _, line := range doc.Lines {
			if line.Kind == model.LineBullet {
				bullets = append(bullets, line.Text)
			}
		}
		gt.Array(t, bullets).Length(3)
		gt.Value(t, bullets[0]).Equal("max ₹5000 per claim")
		gt.Array(t, recorder.blockTexts).Length(1)
	})

	t.Run("multibyte case-shifting text before the delimiter", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{}
		renderer := &fixedRenderer{filename: "custom_1750852800000.pdf"}
		uc := newTestUseCases(recorder, usecase.WithRenderer(renderer))

		msg := newMessage("İstanbul Ⱥ-team Rules: receipts required; no backdating", nil)
		gt.NoError(t, uc.HandleMessage(ctx, msg)).Required()

		gt.Array(t, renderer.docs).Length(1).Required()
		var bullets []string
		for _, line := range renderer.docs[0].Lines {
			if line.Kind == model.LineBullet {
				bullets = append(bullets, line.Text)
			}
		}
		gt.Array(t, bullets).Length(2).Required()
		gt.Value(t, bullets[0]).Equal("receipts required")
		gt.Value(t, bullets[1]).Equal("no backdating")
	})

	t.Run("empty rule list gets an explanatory message", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{}
		uc := newTestUseCases(recorder)

		gt.NoError(t, uc.HandleMessage(ctx, newMessage("rules: ; ;", nil))).Required()

		gt.Array(t, recorder.messages).Length(1).Required()
		gt.String(t, recorder.messages[0]).Contains("couldn't find any rules")
	})
}

func TestAnalyzeRules(t *testing.T) {
	t.Run("persists the analysis record and posts the report", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{fileContent: []byte("%PDF-1.4 ...")}
		repo := memory.New()
		ruleAI := &fixedRuleAI{rules: "1. Receipts required\n2. Max ₹5000 per claim"}
		uc := usecase.New(repo, recorder,
			usecase.WithSleeper(func(ctx context.Context, d time.Duration) {}),
			usecase.WithExtractor(&fixedExtractor{text: "policy body text"}),
			usecase.WithRuleExtractor(ruleAI),
			usecase.WithIDSource(func() string { return "rec-1" }),
			usecase.WithClock(func() time.Time { return time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC) }),
		)

		msg := newMessage("analyze the rules in this document", pdfFile())
		gt.NoError(t, uc.HandleMessage(ctx, msg)).Required()

		last := recorder.messages[len(recorder.messages)-1]
		gt.String(t, last).Contains("Extracted Rules")
		gt.String(t, last).Contains("Receipts required")

		record, err := repo.Analysis().Get(ctx, "rec-1")
		gt.NoError(t, err).Required()
		gt.Value(t, record.DocumentID).Equal("F001")
		gt.Value(t, record.RequesterID).Equal("U123")
		gt.Value(t, record.Filename).Equal("policy.pdf")
		gt.Value(t, record.SourceChars).Equal(len("policy body text"))
	})

	t.Run("classified AI failure becomes one user-facing message", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{fileContent: []byte("%PDF-1.4 ...")}
		ruleAI := &fixedRuleAI{err: goerr.Wrap(ai.ErrQuotaExceeded, "429 from upstream")}
		uc := newTestUseCases(recorder,
			usecase.WithExtractor(&fixedExtractor{text: "policy body text"}),
			usecase.WithRuleExtractor(ruleAI),
		)

		msg := newMessage("analyze the rules in this document", pdfFile())
		gt.NoError(t, uc.HandleMessage(ctx, msg)).Required()

		last := recorder.messages[len(recorder.messages)-1]
		gt.String(t, last).Contains("quota is exhausted")
		for _, posted := range recorder.messages {
			gt.Bool(t, strings.Contains(posted, "Extracted Rules")).False()
		}
	})
}

func TestUploadPromptAndThanks(t *testing.T) {
	ctx := context.Background()
	recorder := &slackRecorder{}
	uc := newTestUseCases(recorder)

	gt.NoError(t, uc.HandleMessage(ctx, newMessage("how do I upload my policy?", nil)))
	gt.NoError(t, uc.HandleMessage(ctx, newMessage("thanks!", nil)))

	gt.Array(t, recorder.messages).Length(2).Required()
	gt.String(t, recorder.messages[0]).Contains("upload your compliance policy PDF")
	gt.String(t, recorder.messages[1]).Contains("welcome")
}

func TestOpenCase(t *testing.T) {
	t.Run("case ID from the first 8 ID chars", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{}
		uc := newTestUseCases(recorder)

		gt.NoError(t, uc.HandleMessage(ctx, newMessage("please open a case", nil))).Required()

		gt.Array(t, recorder.messages).Length(2).Required()
		gt.String(t, recorder.messages[1]).Contains("CASE-CAFE0123")
	})

	t.Run("short ID source is used as-is", func(t *testing.T) {
		ctx := context.Background()
		recorder := &slackRecorder{}
		uc := newTestUseCases(recorder,
			usecase.WithIDSource(func() string { return "ab" }),
		)

		gt.NoError(t, uc.HandleMessage(ctx, newMessage("please open a case", nil))).Required()

		gt.Array(t, recorder.messages).Length(2).Required()
		gt.String(t, recorder.messages[1]).Contains("CASE-AB*")
	})
}

func TestUnrecognizedIsNoOp(t *testing.T) {
	ctx := context.Background()
	recorder := &slackRecorder{}
	uc := newTestUseCases(recorder)

	gt.NoError(t, uc.HandleMessage(ctx, newMessage("what's for lunch?", nil)))
	gt.Array(t, recorder.messages).Length(0)
	gt.Array(t, recorder.blockTexts).Length(0)
}

func TestBotMessagesAreIgnored(t *testing.T) {
	ctx := context.Background()
	recorder := &slackRecorder{}
	uc := newTestUseCases(recorder)

	// A bot-authored event must not re-trigger workflows
	ev := &slackevents.EventsAPIEvent{
		Type:   slackevents.CallbackEvent,
		TeamID: "T123",
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "message",
			Data: &slackevents.MessageEvent{
				Type:      "message",
				BotID:     "B999",
				Text:      "run an audit",
				TimeStamp: "1700000001.000100",
				Channel:   "C123",
			},
		},
	}
	botMsg := slackmodel.NewMessage(ctx, ev, nil)
	gt.NoError(t, uc.HandleMessage(ctx, botMsg))
	gt.Array(t, recorder.messages).Length(0)
}
