package report

import (
	"context"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/report"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) InventoryTotals(ctx context.Context, lowStockThreshold int, expiringBefore time.Time) (*report.InventoryTotals, error) {
	args := m.Called(ctx, lowStockThreshold, expiringBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.InventoryTotals), args.Error(1)
}

func (m *MockReportRepository) InvoiceTotalsByStatus(ctx context.Context, status string) (*report.InvoiceTotals, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.InvoiceTotals), args.Error(1)
}

func (m *MockReportRepository) CountVendors(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountPendingShopping(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) ValueByCategory(ctx context.Context) ([]report.CategoryValue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.CategoryValue), args.Error(1)
}

func (m *MockReportRepository) VendorSpend(ctx context.Context, from, to *time.Time) ([]report.VendorSpend, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]report.VendorSpend), args.Error(1)
}

// MockItemRepository only answers FindAll
type MockItemRepository struct {
	mock.Mock
	inventory.Repository
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

type staticSettings settings.Values

func (s staticSettings) Values(context.Context) (settings.Values, error) {
	return settings.Values(s), nil
}

// fakePDF records the table it was asked to print
type fakePDF struct {
	table *report.Table
}

func (f *fakePDF) RenderTable(_ context.Context, t *report.Table) ([]byte, error) {
	f.table = t
	return []byte("%PDF-1.4"), nil
}
