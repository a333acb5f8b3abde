package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/finops-lab/compliancebot/pkg/domain/interfaces"
	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/finops-lab/compliancebot/pkg/domain/types"
	slacksvc "github.com/finops-lab/compliancebot/pkg/service/slack"
	"github.com/google/uuid"
)

// Default think-time range between workflow emissions (the bot simulates
// processing work). Tunable via options; never zero, never unbounded.
const (
	DefaultThinkTimeMin  = 1500 * time.Millisecond
	DefaultThinkTimeSpan = 3000 * time.Millisecond
	DefaultCallTimeout   = 30 * time.Second
)

// TextExtractor extracts plain text from a downloaded document
type TextExtractor interface {
	Text(raw []byte) (string, error)
}

// DocumentRenderer renders structured content into a stored document and
// returns its filename
type DocumentRenderer interface {
	Document(doc *model.Document, name string) (string, error)
}

// TemplateLoader resolves a sector policy template body; it never fails
type TemplateLoader interface {
	Load(sector types.Sector) string
}

// RuleExtractor extracts compliance rules from document text via an
// external language model
type RuleExtractor interface {
	ExtractRules(ctx context.Context, text string) (string, error)
}

// Sleeper suspends the workflow for the given duration, returning early
// if the context is cancelled
type Sleeper func(ctx context.Context, d time.Duration)

// UseCases drives the chat workflows
type UseCases struct {
	repo      interfaces.Repository
	slack     slacksvc.Service
	extractor TextExtractor
	renderer  DocumentRenderer
	templates TemplateLoader
	ruleAI    RuleExtractor

	baseURL       string
	thinkTimeMin  time.Duration
	thinkTimeSpan time.Duration
	callTimeout   time.Duration
	sleeper       Sleeper
	newID         func() string
	now           func() time.Time
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithExtractor sets the document text extractor
func WithExtractor(x TextExtractor) Option {
	return func(uc *UseCases) { uc.extractor = x }
}

// WithRenderer sets the document renderer
func WithRenderer(r DocumentRenderer) Option {
	return func(uc *UseCases) { uc.renderer = r }
}

// WithTemplates sets the sector template loader
func WithTemplates(t TemplateLoader) Option {
	return func(uc *UseCases) { uc.templates = t }
}

// WithRuleExtractor sets the AI rule extractor
func WithRuleExtractor(x RuleExtractor) Option {
	return func(uc *UseCases) { uc.ruleAI = x }
}

// WithBaseURL sets the public base URL used in generated document links
func WithBaseURL(baseURL string) Option {
	return func(uc *UseCases) { uc.baseURL = baseURL }
}

// WithThinkTime sets the simulated processing delay range [min, min+span]
func WithThinkTime(min, span time.Duration) Option {
	return func(uc *UseCases) {
		uc.thinkTimeMin = min
		uc.thinkTimeSpan = span
	}
}

// WithCallTimeout bounds each outbound collaborator call
func WithCallTimeout(d time.Duration) Option {
	return func(uc *UseCases) { uc.callTimeout = d }
}

// WithSleeper overrides the think-time sleeper (tests inject a no-op)
func WithSleeper(s Sleeper) Option {
	return func(uc *UseCases) { uc.sleeper = s }
}

// WithIDSource overrides the ID generator (for deterministic tests)
func WithIDSource(f func() string) Option {
	return func(uc *UseCases) { uc.newID = f }
}

// WithClock overrides the time source (for deterministic tests)
func WithClock(f func() time.Time) Option {
	return func(uc *UseCases) { uc.now = f }
}

// New creates the use case layer. repo and slack are required; the other
// collaborators are optional and their workflows fail with an explanatory
// message when unset.
func New(repo interfaces.Repository, slack slacksvc.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		slack:         slack,
		thinkTimeMin:  DefaultThinkTimeMin,
		thinkTimeSpan: DefaultThinkTimeSpan,
		callTimeout:   DefaultCallTimeout,
		sleeper:       sleepWithContext,
		newID:         uuid.NewString,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// thinkTime draws one simulated processing pause, uniform in
// [min, min+span]
func (uc *UseCases) thinkTime() time.Duration {
	if uc.thinkTimeSpan <= 0 {
		return uc.thinkTimeMin
	}
	return uc.thinkTimeMin + time.Duration(rand.Int64N(int64(uc.thinkTimeSpan)+1))
}

// callCtx bounds an outbound collaborator call
func (uc *UseCases) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, uc.callTimeout)
}
