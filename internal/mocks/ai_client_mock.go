package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/F3lipe-Silva/sistemalife-sub002/pkg/ai"
)

// MockAIClient is a mock type for the ai.Client type
type MockAIClient struct {
	mock.Mock
}

// GenerateText provides a mock function with given fields: ctx, systemPrompt, userInput, structured
func (_m *MockAIClient) GenerateText(ctx context.Context, systemPrompt string, userInput string, structured bool) (string, ai.UsageInfo, error) {
	ret := _m.Called(ctx, systemPrompt, userInput, structured)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, string, bool) string); ok {
		r0 = rf(ctx, systemPrompt, userInput, structured)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	var r1 ai.UsageInfo
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(ai.UsageInfo)
	}

	r2 := ret.Error(2)

	return r0, r1, r2
}

// NewMockAIClient creates a new instance of MockAIClient and registers the
// testing interface on the mock.
func NewMockAIClient(t interface {
	mock.TestingT
	Helper()
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ ai.Client = (*MockAIClient)(nil)
