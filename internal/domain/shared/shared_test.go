package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("load vendor: %w", NotFound("vendor"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, "load vendor: vendor not found", err.Error())

	var de *DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("item", "upc", "012345678905")
	assert.Equal(t, "ALREADY_EXISTS", err.Code)
	assert.Equal(t, "item with upc '012345678905' already exists", err.Message)
}

func TestFilter_With(t *testing.T) {
	base := DefaultFilter()
	f := base.With("category", "Dairy")

	assert.Equal(t, "Dairy", f.Filters["category"])
	assert.NotContains(t, base.Filters, "category", "original filter is not modified")

	unpaged := f.Unpaged()
	assert.Zero(t, unpaged.Page)
	assert.Zero(t, unpaged.PageSize)
	assert.Equal(t, 20, f.PageSize)
}

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		want     int
	}{
		{"exact pages", 20, 10, 2},
		{"partial last page", 25, 10, 3},
		{"empty", 0, 10, 0},
		{"unpaged", 25, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginated([]int{}, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.want, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestBaseEntity(t *testing.T) {
	e := NewBaseEntity()
	assert.True(t, e.IsNew())
	assert.False(t, e.CreatedAt.IsZero())

	before := e.UpdatedAt
	e.ID = 7
	e.Touch()
	assert.False(t, e.IsNew())
	assert.Equal(t, int64(7), e.GetID())
	assert.False(t, e.GetUpdatedAt().Before(before))
}
