package model

import "time"

// AnalysisRecord is the auditable record persisted after an AI rule
// extraction run.
type AnalysisRecord struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	RequesterID string    `json:"requester_id"`
	Filename    string    `json:"filename"`
	ExtractedAt time.Time `json:"extracted_at"`
	Rules       string    `json:"rules"`
	SourceChars int       `json:"source_chars"`
}

// Validate checks the record has the fields required for persistence
func (x *AnalysisRecord) Validate() error {
	if x.ID == "" {
		return ErrMissingAnalysisID
	}
	if x.DocumentID == "" {
		return ErrMissingDocumentID
	}
	return nil
}
