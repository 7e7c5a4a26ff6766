package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gigmatch/internal/embeddings"
)

// MockCache is a mock implementation of Cache using testify/mock.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetTaxonomyVectors(ctx context.Context, model string) ([]embeddings.Vector, error) {
	args := m.Called(ctx, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]embeddings.Vector), args.Error(1)
}

func (m *MockCache) SetTaxonomyVectors(ctx context.Context, model string, vecs []embeddings.Vector, ttl time.Duration) error {
	args := m.Called(ctx, model, vecs, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
