package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("bad xref")
	parseErr := &DocumentParseError{Filename: "cv.pdf", Cause: cause}
	wrapped := &AnalysisError{Stage: StageExtraction, Cause: parseErr}

	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "extraction")
	assert.Contains(t, wrapped.Error(), "cv.pdf")

	providerErr := &ExtractionProviderError{Provider: "gemini", Cause: cause}
	assert.ErrorIs(t, providerErr, cause)
	assert.Contains(t, providerErr.Error(), "gemini")
}

func TestHTTPStatus(t *testing.T) {
	parseErr := &DocumentParseError{Filename: "cv.docx"}

	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(parseErr))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(fmt.Errorf("failed to analyze: %w", parseErr)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&AnalysisError{Stage: StageScoring, Cause: errors.New("boom")}))
}

func TestClientMessageHidesInternals(t *testing.T) {
	internal := &AnalysisError{Stage: StageScoring, Cause: errors.New("dial tcp 10.0.0.5:6334: connection refused")}

	assert.Equal(t, "internal server error", ClientMessage(internal))
	assert.NotContains(t, ClientMessage(&DocumentParseError{Filename: "cv.pdf", Cause: errors.New("xref offset 1234")}), "xref")
}
