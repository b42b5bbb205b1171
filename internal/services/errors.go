package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoEmbeddings is returned when a provider answers with fewer vectors than inputs.
var ErrNoEmbeddings = errors.New("embedding provider returned no vectors")

// DocumentParseError reports a PDF or DOCX payload that could not be read.
type DocumentParseError struct {
	Filename string
	Cause    error
}

func (e *DocumentParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse document %q: %v", e.Filename, e.Cause)
	}
	return fmt.Sprintf("failed to parse document %q", e.Filename)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Cause
}

// ExtractionProviderError reports a keyphrase provider failure. It is absorbed
// by the keyword fallback and never reaches HTTP callers.
type ExtractionProviderError struct {
	Provider string
	Cause    error
}

func (e *ExtractionProviderError) Error() string {
	return fmt.Sprintf("keyphrase provider %s failed: %v", e.Provider, e.Cause)
}

func (e *ExtractionProviderError) Unwrap() error {
	return e.Cause
}

type AnalysisStage string

const (
	StageExtraction AnalysisStage = "extraction"
	StageScoring    AnalysisStage = "scoring"
)

// AnalysisError is the single error type surfaced by the analysis engine.
type AnalysisError struct {
	Stage AnalysisStage
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed during %s: %v", e.Stage, e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code the HTTP layer should answer with.
func HTTPStatus(err error) int {
	var parseErr *DocumentParseError
	if errors.As(err, &parseErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ClientMessage returns an error message that is safe to show to API clients.
func ClientMessage(err error) string {
	var parseErr *DocumentParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("could not read document %q; make sure it is a valid PDF, DOCX or text file", parseErr.Filename)
	}
	return "internal server error"
}
