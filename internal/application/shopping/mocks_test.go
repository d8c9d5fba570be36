package shopping

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"github.com/stretchr/testify/mock"
)

// MockShoppingRepository is a mock implementation of shopping.Repository
type MockShoppingRepository struct {
	mock.Mock
}

func (m *MockShoppingRepository) FindByID(ctx context.Context, id int64) (*shopping.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Item), args.Error(1)
}

func (m *MockShoppingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shopping.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shopping.Item), args.Error(1)
}

func (m *MockShoppingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShoppingRepository) PendingInventoryIDs(ctx context.Context) (map[int64]bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockShoppingRepository) Save(ctx context.Context, item *shopping.Item) error {
	args := m.Called(ctx, item)
	if item.ID == 0 {
		item.ID = 100
	}
	return args.Error(0)
}

func (m *MockShoppingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShoppingRepository) DeletePurchased(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository answers the inventory lookups the shopping list needs
type MockItemRepository struct {
	mock.Mock
	inventory.Repository
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

type staticSettings settings.Values

func (s staticSettings) Values(context.Context) (settings.Values, error) {
	return settings.Values(s), nil
}
