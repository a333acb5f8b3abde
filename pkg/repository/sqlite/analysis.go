package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/finops-lab/compliancebot/pkg/repository/memory"
	"github.com/m-mizutani/goerr/v2"
)

type analysisRepository struct {
	db *sql.DB
}

func (r *analysisRepository) Put(ctx context.Context, record *model.AnalysisRecord) error {
	if err := record.Validate(); err != nil {
		return goerr.Wrap(err, "invalid analysis record")
	}

	const query = `
		INSERT OR REPLACE INTO analysis_records
			(id, document_id, requester_id, filename, extracted_at, rules, source_chars)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.DocumentID,
		record.RequesterID,
		record.Filename,
		record.ExtractedAt,
		record.Rules,
		record.SourceChars,
	); err != nil {
		return goerr.Wrap(err, "failed to insert analysis record", goerr.V("id", record.ID))
	}

	return nil
}

func (r *analysisRepository) Get(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	const query = `
		SELECT id, document_id, requester_id, filename, extracted_at, rules, source_chars
		FROM analysis_records WHERE id = ?`

	var record model.AnalysisRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.DocumentID,
		&record.RequesterID,
		&record.Filename,
		&record.ExtractedAt,
		&record.Rules,
		&record.SourceChars,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(memory.ErrNotFound, "analysis record not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query analysis record", goerr.V("id", id))
	}

	return &record, nil
}

func (r *analysisRepository) ListByRequester(ctx context.Context, requesterID string) ([]*model.AnalysisRecord, error) {
	const query = `
		SELECT id, document_id, requester_id, filename, extracted_at, rules, source_chars
		FROM analysis_records
		WHERE requester_id = ?
		ORDER BY extracted_at DESC`

	rows, err := r.db.QueryContext(ctx, query, requesterID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query analysis records", goerr.V("requester_id", requesterID))
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*model.AnalysisRecord
	for rows.Next() {
		var record model.AnalysisRecord
		if err := rows.Scan(
			&record.ID,
			&record.DocumentID,
			&record.RequesterID,
			&record.Filename,
			&record.ExtractedAt,
			&record.Rules,
			&record.SourceChars,
		); err != nil {
			return nil, goerr.Wrap(err, "failed to scan analysis record")
		}
		result = append(result, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate analysis records")
	}

	return result, nil
}
