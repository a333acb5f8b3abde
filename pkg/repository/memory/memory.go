package memory

import (
	"github.com/finops-lab/compliancebot/pkg/domain/interfaces"
)

// Repository is an in-memory implementation of interfaces.Repository
type Repository struct {
	threadState *threadStateRepository
	analysis    *analysisRepository
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		threadState: newThreadStateRepository(),
		analysis:    newAnalysisRepository(),
	}
}

func (r *Repository) ThreadState() interfaces.ThreadStateRepository {
	return r.threadState
}

func (r *Repository) Analysis() interfaces.AnalysisRepository {
	return r.analysis
}

func (r *Repository) Close() error {
	return nil
}
