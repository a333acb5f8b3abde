package sqlite

import (
	"context"
	"database/sql"

	"github.com/finops-lab/compliancebot/pkg/domain/interfaces"
	"github.com/finops-lab/compliancebot/pkg/repository/memory"
	"github.com/m-mizutani/goerr/v2"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_records (
	id            TEXT PRIMARY KEY,
	document_id   TEXT NOT NULL,
	requester_id  TEXT NOT NULL,
	filename      TEXT NOT NULL,
	extracted_at  TIMESTAMP NOT NULL,
	rules         TEXT NOT NULL,
	source_chars  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_requester
	ON analysis_records (requester_id, extracted_at);
`

// Repository persists analysis records in SQLite. Thread state stays in
// process memory even on this backend: audit batches are demo data scoped
// to the process lifetime by contract.
type Repository struct {
	db          *sql.DB
	threadState interfaces.ThreadStateRepository
	analysis    *analysisRepository
}

// New opens (or creates) the SQLite database at path and prepares the
// schema.
func New(ctx context.Context, path string) (*Repository, error) {
	if path == "" {
		return nil, goerr.New("sqlite database path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to prepare sqlite schema", goerr.V("path", path))
	}

	return &Repository{
		db:          db,
		threadState: memory.New().ThreadState(),
		analysis:    &analysisRepository{db: db},
	}, nil
}

func (r *Repository) ThreadState() interfaces.ThreadStateRepository {
	return r.threadState
}

func (r *Repository) Analysis() interfaces.AnalysisRepository {
	return r.analysis
}

func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite database")
	}
	return nil
}
