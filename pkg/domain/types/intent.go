package types

import "strings"

// Intent represents the symbolic classification of an inbound command message
type Intent string

const (
	IntentUploadPrompt      Intent = "UPLOAD_PROMPT"
	IntentValidatePolicy    Intent = "VALIDATE_POLICY"
	IntentGenerateTemplate  Intent = "GENERATE_TEMPLATE"
	IntentCustomRules       Intent = "CUSTOM_RULES"
	IntentRunAudit          Intent = "RUN_AUDIT"
	IntentRunFraudDetection Intent = "RUN_FRAUD_DETECTION"
	IntentOpenCase          Intent = "OPEN_CASE"
	IntentAnalyzeRules      Intent = "ANALYZE_RULES"
	IntentThanks            Intent = "THANKS"
	IntentUnknown           Intent = "UNKNOWN"
)

// AllIntents returns all valid intents
func AllIntents() []Intent {
	return []Intent{
		IntentUploadPrompt,
		IntentValidatePolicy,
		IntentGenerateTemplate,
		IntentCustomRules,
		IntentRunAudit,
		IntentRunFraudDetection,
		IntentOpenCase,
		IntentAnalyzeRules,
		IntentThanks,
		IntentUnknown,
	}
}

// IsValid checks if the intent is valid
func (x Intent) IsValid() bool {
	switch x {
	case IntentUploadPrompt,
		IntentValidatePolicy,
		IntentGenerateTemplate,
		IntentCustomRules,
		IntentRunAudit,
		IntentRunFraudDetection,
		IntentOpenCase,
		IntentAnalyzeRules,
		IntentThanks,
		IntentUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the intent
func (x Intent) String() string {
	return string(x)
}

// intentRule matches a message when all substrings are present and, for
// file-bound intents, the message carries at least one attachment.
type intentRule struct {
	substrings   []string
	requiresFile bool
	intent       Intent
}

// intentRules is evaluated in order and the first full match wins.
// "generate audit summary" and "run fraud detection" are deliberately
// tested before the bare "audit" substring to avoid prefix capture.
var intentRules = []intentRule{
	{substrings: []string{"analyze", "rules"}, requiresFile: true, intent: IntentAnalyzeRules},
	{substrings: []string{"validate"}, requiresFile: true, intent: IntentValidatePolicy},
	{substrings: []string{"generate template"}, intent: IntentGenerateTemplate},
	{substrings: []string{"template for"}, intent: IntentGenerateTemplate},
	{substrings: []string{"rules:"}, intent: IntentCustomRules},
	{substrings: []string{"generate audit summary"}, intent: IntentRunAudit},
	{substrings: []string{"run fraud detection"}, intent: IntentRunFraudDetection},
	{substrings: []string{"audit"}, intent: IntentRunAudit},
	{substrings: []string{"open", "case"}, intent: IntentOpenCase},
	{substrings: []string{"upload"}, intent: IntentUploadPrompt},
	{substrings: []string{"thank"}, intent: IntentThanks},
}

// ClassifyIntent maps raw message text to exactly one intent. The text is
// lowercased and matched against the ordered rule table; hasFiles gates
// the intents that operate on an attached document.
func ClassifyIntent(text string, hasFiles bool) Intent {
	lowered := strings.ToLower(text)

	for _, rule := range intentRules {
		if rule.requiresFile && !hasFiles {
			continue
		}

		matched := true
		for _, sub := range rule.substrings {
			if !strings.Contains(lowered, sub) {
				matched = false
				break
			}
		}
		if matched {
			return rule.intent
		}
	}

	return IntentUnknown
}
