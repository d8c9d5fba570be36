package partner

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id int64) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByName(ctx context.Context, name string) (*partner.Vendor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) CountItems(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, v *partner.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockItemRepository mocks the inventory lookups a vendor needs; other methods panic
type MockItemRepository struct {
	mock.Mock
	inventory.Repository
}

func (m *MockItemRepository) FindByVendor(ctx context.Context, vendorID int64, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

// MockInvoiceRepository mocks the invoice lookups a vendor needs; other methods panic
type MockInvoiceRepository struct {
	mock.Mock
	invoice.Repository
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoice.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]invoice.Invoice), args.Error(1)
}
