package service

import (
	"context"
	"time"

	"quiz-synth/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockAcquirer ---
type MockAcquirer struct {
	mock.Mock
}

func (m *MockAcquirer) Acquire(doc *domain.RawDocument) (*domain.ParsedText, error) {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedText), args.Error(1)
}

func (m *MockAcquirer) AcquireText(text, name string) (*domain.ParsedText, error) {
	args := m.Called(text, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedText), args.Error(1)
}

// --- MockGenerator ---
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateQuiz(ctx context.Context, req *domain.GenerationRequest) (*domain.Quiz, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	_ domain.DocumentAcquirer      = (*MockAcquirer)(nil)
	_ domain.QuizGenerationService = (*MockGenerator)(nil)
	_ domain.Cache                 = (*MockCache)(nil)
)
