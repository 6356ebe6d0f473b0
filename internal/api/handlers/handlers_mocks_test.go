package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Pranavupp12/review-platform/internal/application/services"
)

type MockQueryRouter struct {
	mock.Mock
}

func (m *MockQueryRouter) Resolve(ctx context.Context, req services.RouteRequest) *services.RouteDecision {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*services.RouteDecision)
}

type MockCompanySearcher struct {
	mock.Mock
}

func (m *MockCompanySearcher) Search(ctx context.Context, req services.SearchRequest) (*services.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SearchResponse), args.Error(1)
}

type MockAspectExtractor struct {
	mock.Mock
}

func (m *MockAspectExtractor) Extract(ctx context.Context, reviewText string) ([]string, error) {
	args := m.Called(ctx, reviewText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}
