package usecase

import (
	"errors"

	"github.com/finops-lab/compliancebot/pkg/service/ai"
	"github.com/finops-lab/compliancebot/pkg/service/extract"
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for the workflow layer. User-input and precondition
// errors terminate a workflow early with a single explanatory message and
// never propagate past the workflow boundary.
var (
	ErrNoAttachment   = goerr.New("no document attached")
	ErrNoCustomRules  = goerr.New("no custom rules found after delimiter")
	ErrNoAuditRecords = goerr.New("no audit records stored for thread")
	ErrDownloadFailed = goerr.New("file download failed")
	ErrRenderFailed   = goerr.New("document rendering failed")
	ErrNotConfigured  = goerr.New("workflow collaborator not configured")
)

// Context keys for error values
const (
	ThreadIDKey = "thread_id"
	IntentKey   = "intent"
	FileIDKey   = "file_id"
)

// userMessage maps a workflow error onto the single explanatory message
// posted to the originating thread. The second return value is false when
// the error has no specific mapping (internal error).
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrNoAttachment):
		return "📎 Please attach your policy PDF to that message and try again.", true
	case errors.Is(err, ErrNoCustomRules):
		return "⚠️ I couldn't find any rules after `rules:`. Separate each rule with `;`, e.g. `rules: max ₹5000 per claim; receipts required`.", true
	case errors.Is(err, ErrNoAuditRecords):
		return "⚠️ No audit data for this thread yet. Run an audit first, then try fraud detection.", true
	case errors.Is(err, extract.ErrUnreadable):
		return "⚠️ Could not parse your PDF. Please upload a valid, non-encrypted file.", true
	case errors.Is(err, ErrDownloadFailed):
		return "⚠️ I couldn't download that file from Slack. Please re-upload it and try again.", true
	case errors.Is(err, ErrRenderFailed):
		return "⚠️ Building the PDF document failed. Please try again later.", true
	case errors.Is(err, ErrNotConfigured):
		return "⚠️ That feature is not configured on this bot. Ask an admin to finish the setup.", true
	case errors.Is(err, ai.ErrNoCredentials),
		errors.Is(err, ai.ErrEmptyInput),
		errors.Is(err, ai.ErrQuotaExceeded),
		errors.Is(err, ai.ErrInvalidCredentials),
		errors.Is(err, ai.ErrUnknown):
		return ai.UserMessage(err), true
	default:
		return "⚠️ Something went wrong while processing that request. The team has been notified.", false
	}
}
