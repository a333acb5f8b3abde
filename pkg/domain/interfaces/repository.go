package interfaces

import (
	"context"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/finops-lab/compliancebot/pkg/domain/types"
)

// ThreadStateRepository retains the most recent audit record set per
// conversation thread. Last write wins per thread; entries live for the
// process lifetime without eviction.
type ThreadStateRepository interface {
	// Put stores the audit records for the thread, replacing any
	// previous set
	Put(ctx context.Context, threadID types.ThreadID, records []model.ExpenseRecord) error

	// Get returns the stored records for the thread. The second return
	// value reports whether any records were stored.
	Get(ctx context.Context, threadID types.ThreadID) ([]model.ExpenseRecord, bool, error)
}

// AnalysisRepository persists auditable AI rule-extraction records
type AnalysisRepository interface {
	// Put durably stores an analysis record
	Put(ctx context.Context, record *model.AnalysisRecord) error

	// Get retrieves an analysis record by ID
	Get(ctx context.Context, id string) (*model.AnalysisRecord, error)

	// ListByRequester returns the records created for a requester,
	// newest first
	ListByRequester(ctx context.Context, requesterID string) ([]*model.AnalysisRecord, error)
}

// Repository is the composed persistence interface
type Repository interface {
	ThreadState() ThreadStateRepository
	Analysis() AnalysisRepository
	Close() error
}
