package model

// ExpenseRecord is one expense claim examined by the audit and fraud
// detection workflows. Records are immutable once synthesized by the
// audit step.
type ExpenseRecord struct {
	User              string
	Amount            float64
	Split             bool
	SameDay           bool
	NoReceipt         bool
	BackdatedApproval bool
	Approver          string
}

// DemoExpenseBatch returns the fixed batch of expense records the audit
// workflow operates on. This is an explicit synthetic/demo data mode;
// there is no live invoice source behind it.
func DemoExpenseBatch() []ExpenseRecord {
	return []ExpenseRecord{
		{User: "john.doe", Amount: 4900, Split: true, SameDay: true},
		{User: "alice.k", Amount: 5200, NoReceipt: true},
		{User: "sam.p", Amount: 4800, NoReceipt: true},
		{User: "john.doe", Amount: 4950, Split: true, SameDay: true},
		{User: "dev.admin", Amount: 2500, BackdatedApproval: true, Approver: "unauthorized.user"},
	}
}

// CopyExpenseRecords returns a defensive copy of the given records
func CopyExpenseRecords(records []ExpenseRecord) []ExpenseRecord {
	if records == nil {
		return nil
	}
	copied := make([]ExpenseRecord, len(records))
	copy(copied, records)
	return copied
}
