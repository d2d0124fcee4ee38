// Package mocks holds hand-written testify mocks for the core ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/netobserve/location-audit/internal/core/domain"
)

// MockWorkbookSource is a mock implementation of ports.WorkbookSource.
type MockWorkbookSource struct {
	mock.Mock
}

func (m *MockWorkbookSource) SheetNames() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockWorkbookSource) ReadSheet(ctx context.Context, name string) (*domain.Sheet, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sheet), args.Error(1)
}

// MockWorkbookSink is a mock implementation of ports.WorkbookSink.
type MockWorkbookSink struct {
	mock.Mock
}

func (m *MockWorkbookSink) WriteResults(ctx context.Context, sheet *domain.Sheet, results []domain.RowResult) error {
	args := m.Called(ctx, sheet, results)
	return args.Error(0)
}

func (m *MockWorkbookSink) WriteSummary(ctx context.Context, summaries []domain.SheetSummary, total domain.SheetSummary) error {
	args := m.Called(ctx, summaries, total)
	return args.Error(0)
}

func (m *MockWorkbookSink) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockInventoryClient is a mock implementation of ports.InventoryClient.
type MockInventoryClient struct {
	mock.Mock
}

func (m *MockInventoryClient) Lookup(ctx context.Context, hostname string) (*domain.DeviceInfo, error) {
	args := m.Called(ctx, hostname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeviceInfo), args.Error(1)
}

// MockResolver is a mock implementation of ports.Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, hostname string) domain.DNSResult {
	args := m.Called(ctx, hostname)
	return args.Get(0).(domain.DNSResult)
}

// MockReporter is a mock implementation of ports.Reporter.
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, report domain.RunReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
