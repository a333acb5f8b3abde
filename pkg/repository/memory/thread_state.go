package memory

import (
	"context"
	"sync"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/finops-lab/compliancebot/pkg/domain/types"
)

type threadStateRepository struct {
	mu      sync.RWMutex
	entries map[types.ThreadID][]model.ExpenseRecord
}

func newThreadStateRepository() *threadStateRepository {
	return &threadStateRepository{
		entries: make(map[types.ThreadID][]model.ExpenseRecord),
	}
}

func (r *threadStateRepository) Put(ctx context.Context, threadID types.ThreadID, records []model.ExpenseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[threadID] = model.CopyExpenseRecords(records)
	return nil
}

func (r *threadStateRepository) Get(ctx context.Context, threadID types.ThreadID) ([]model.ExpenseRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, ok := r.entries[threadID]
	if !ok {
		return nil, false, nil
	}
	return model.CopyExpenseRecords(records), true, nil
}
