package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

type analysisRepository struct {
	mu      sync.RWMutex
	entries map[string]*model.AnalysisRecord
}

func newAnalysisRepository() *analysisRepository {
	return &analysisRepository{
		entries: make(map[string]*model.AnalysisRecord),
	}
}

func copyAnalysis(r *model.AnalysisRecord) *model.AnalysisRecord {
	copied := *r
	return &copied
}

func (r *analysisRepository) Put(ctx context.Context, record *model.AnalysisRecord) error {
	if err := record.Validate(); err != nil {
		return goerr.Wrap(err, "invalid analysis record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[record.ID] = copyAnalysis(record)
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.entries[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "analysis record not found", goerr.V("id", id))
	}
	return copyAnalysis(record), nil
}

func (r *analysisRepository) ListByRequester(ctx context.Context, requesterID string) ([]*model.AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.AnalysisRecord
	for _, record := range r.entries {
		if record.RequesterID == requesterID {
			result = append(result, copyAnalysis(record))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ExtractedAt.After(result[j].ExtractedAt)
	})

	return result, nil
}
