package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEmbeddingProvider struct {
	mock.Mock
}

func (m *MockEmbeddingProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEmbeddingProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([][]float32), args.Error(1)
}
