package model

import (
	"fmt"
	"strconv"
)

// FraudRule identifies one of the fixed fraud heuristics
type FraudRule string

const (
	FraudRuleSplitClaim        FraudRule = "split_claim"
	FraudRuleNoReceipt         FraudRule = "high_value_no_receipt"
	FraudRuleBackdatedApproval FraudRule = "backdated_approval"
)

// Finding is one fraud-rule violation surfaced for one expense record
type Finding struct {
	Rule     FraudRule
	Severity string
	Text     string
}

// String returns the rendered finding line
func (x Finding) String() string {
	return x.Severity + " " + x.Text
}

const splitClaimLimit = 5000
const noReceiptLimit = 3000

// EvaluateExpenses applies the fixed fraud heuristics to each record and
// returns the findings in record order, then rule order within a record.
// The function is pure: it never mutates its input and the same input
// always yields the same output. A record may contribute zero to three
// findings.
func EvaluateExpenses(records []ExpenseRecord) []Finding {
	var findings []Finding

	for _, r := range records {
		if r.Amount < splitClaimLimit && r.Split && r.SameDay {
			findings = append(findings, Finding{
				Rule:     FraudRuleSplitClaim,
				Severity: "🚨",
				Text:     fmt.Sprintf("Possible split claim: ₹%s by %s (same-day duplicate under approval limit)", formatAmount(r.Amount), r.User),
			})
		}
		if r.NoReceipt && r.Amount > noReceiptLimit {
			findings = append(findings, Finding{
				Rule:     FraudRuleNoReceipt,
				Severity: "⚠️",
				Text:     fmt.Sprintf("High-value claim without receipt: ₹%s by %s", formatAmount(r.Amount), r.User),
			})
		}
		if r.BackdatedApproval {
			findings = append(findings, Finding{
				Rule:     FraudRuleBackdatedApproval,
				Severity: "🚨",
				Text:     fmt.Sprintf("Backdated approval by %s for %s", r.Approver, r.User),
			})
		}
	}

	return findings
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
