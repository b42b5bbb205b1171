package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type MockAnalyzerService struct {
	mock.Mock
}

func (m *MockAnalyzerService) Analyze(ctx context.Context, resumeText string, jdText *string, useGPT bool) (*models.AnalysisResult, error) {
	args := m.Called(ctx, resumeText, jdText, useGPT)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}

func (m *MockAnalyzerService) AnalyzeDocuments(ctx context.Context, resume models.Document, jd *models.Document, useGPT bool) (*models.AnalysisResult, error) {
	args := m.Called(ctx, resume, jd, useGPT)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}

func (m *MockAnalyzerService) GetKeywords(ctx context.Context, text string, topN int) []string {
	args := m.Called(ctx, text, topN)

	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).([]string)
}

func (m *MockAnalyzerService) ComputeATSScore(ctx context.Context, resumeText string, jdText *string) models.ATSResult {
	args := m.Called(ctx, resumeText, jdText)
	return args.Get(0).(models.ATSResult)
}

func (m *MockAnalyzerService) TextSimilarity(ctx context.Context, a, b string) (float64, error) {
	args := m.Called(ctx, a, b)
	return args.Get(0).(float64), args.Error(1)
}
