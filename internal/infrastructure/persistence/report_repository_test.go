package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shashia401/FRESH-CHOICE-sub000/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportRepository_InventoryTotals(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	db, mock := mdb.DB, mdb.Mock
	defer mdb.Close()
	repo := NewGormReportRepository(db)

	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_items,.* FROM "inventory"`).
		WithArgs(10, cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"total_items", "total_units", "cost_value", "retail_value", "low_stock_count", "expiring_count"}).
			AddRow(42, 1300, "5120.50", "8300.00", 6, 2))

	totals, err := repo.InventoryTotals(context.Background(), 10, cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(42), totals.TotalItems)
	assert.Equal(t, int64(1300), totals.TotalUnits)
	assert.True(t, totals.CostValue.Equal(decimal.RequireFromString("5120.50")))
	assert.Equal(t, int64(6), totals.LowStockCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReportRepository_InvoiceTotalsByStatus(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	db, mock := mdb.DB, mdb.Mock
	defer mdb.Close()
	repo := NewGormReportRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS count, COALESCE\(SUM\(total\), 0\) AS amount FROM "invoices" WHERE status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count", "amount"}).AddRow(3, "412.75"))

	totals, err := repo.InvoiceTotalsByStatus(context.Background(), "pending")

	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.Count)
	assert.True(t, totals.Amount.Equal(decimal.RequireFromString("412.75")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReportRepository_VendorSpend(t *testing.T) {
	t.Run("applies date bounds and excludes cancelled", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		db, mock := mdb.DB, mdb.Mock
		defer mdb.Close()
		repo := NewGormReportRepository(db)

		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		vendorID := int64(2)

		mock.ExpectQuery(`SELECT i.vendor_id AS vendor_id,.* FROM invoices AS i LEFT JOIN vendors AS v ON v.id = i.vendor_id WHERE i.status <> \$1 AND i.invoice_date >= \$2 AND i.invoice_date <= \$3 GROUP BY i.vendor_id, v.name ORDER BY total DESC`).
			WithArgs("cancelled", from, to).
			WillReturnRows(sqlmock.NewRows([]string{"vendor_id", "vendor_name", "invoice_count", "total", "paid", "outstanding"}).
				AddRow(vendorID, "Valley Farms", 4, "1000.00", "600.00", "400.00").
				AddRow(nil, "Unassigned", 1, "50.00", "0", "50.00"))

		rows, err := repo.VendorSpend(context.Background(), &from, &to)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.NotNil(t, rows[0].VendorID)
		assert.Equal(t, vendorID, *rows[0].VendorID)
		assert.True(t, rows[0].Outstanding.Equal(decimal.NewFromInt(400)))
		assert.Nil(t, rows[1].VendorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unbounded", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		db, mock := mdb.DB, mdb.Mock
		defer mdb.Close()
		repo := NewGormReportRepository(db)

		mock.ExpectQuery(`WHERE i.status <> \$1 GROUP BY`).
			WithArgs("cancelled").
			WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}))

		rows, err := repo.VendorSpend(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReportRepository_ValueByCategory(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	db, mock := mdb.DB, mdb.Mock
	defer mdb.Close()
	repo := NewGormReportRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(NULLIF\(category, ''\), 'Uncategorized'\) AS category,.* FROM "inventory" GROUP BY COALESCE\(NULLIF\(category, ''\), 'Uncategorized'\) ORDER BY retail_value DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "item_count", "units", "cost_value", "retail_value", "potential_profit"}).
			AddRow("Produce", 10, 300, "150.00", "420.00", "270.00"))

	rows, err := repo.ValueByCategory(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Produce", rows[0].Category)
	assert.True(t, rows[0].PotentialProfit.Equal(decimal.NewFromInt(270)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
