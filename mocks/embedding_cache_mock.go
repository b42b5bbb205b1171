package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEmbeddingCache struct {
	mock.Mock
}

func (m *MockEmbeddingCache) Lookup(ctx context.Context, model string, texts []string) (map[int][]float32, error) {
	args := m.Called(ctx, model, texts)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[int][]float32), args.Error(1)
}

func (m *MockEmbeddingCache) Store(ctx context.Context, model string, texts []string, vectors [][]float32) error {
	args := m.Called(ctx, model, texts, vectors)
	return args.Error(0)
}
