package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockKeywordExtractor struct {
	mock.Mock
}

func (m *MockKeywordExtractor) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	args := m.Called(ctx, text, topN)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}
