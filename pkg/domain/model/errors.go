package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrMissingAnalysisID = goerr.New("analysis record ID is required")
	ErrMissingDocumentID = goerr.New("document ID is required")
)
