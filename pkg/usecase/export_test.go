package usecase

// Expose the report formatters and the rule parser to tests
var (
	ParseCustomRules       = parseCustomRules
	FormatValidationReport = formatValidationReport
	FormatAuditSummary     = formatAuditSummary
	FormatViolationTable   = formatViolationTable
	FormatFindings         = formatFindings
	FormatRulesReport      = formatRulesReport
	DownloadButtonBlocks   = downloadButtonBlocks
)
