package services

import "errors"

var (
	// ErrValidation marks bad input: empty or oversized documents, wrong file types.
	ErrValidation = errors.New("validation error")
	// ErrExtraction marks documents from which no text could be produced.
	ErrExtraction = errors.New("extraction error")
	// ErrClassification marks failures of the completion capability.
	ErrClassification = errors.New("classification error")
	// ErrIndexDisabled is returned by search when no portfolio index is configured.
	ErrIndexDisabled = errors.New("portfolio index is not configured")
)
