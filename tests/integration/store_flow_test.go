package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
	partnerapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/partner"
	reportapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/report"
	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
	shoppingapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/shopping"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/persistence"
	"github.com/shashia401/FRESH-CHOICE-sub000/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// services is the application layer wired to one test database
type services struct {
	settings  *settingsapp.SettingsService
	inventory *inventoryapp.InventoryService
	vendors   *partnerapp.VendorService
	invoices  *invoiceapp.InvoiceService
	shopping  *shoppingapp.ShoppingService
	reports   *reportapp.ReportService
}

func newServices(tdb *TestDB) *services {
	itemRepo := persistence.NewGormInventoryRepository(tdb.DB)
	vendorRepo := persistence.NewGormVendorRepository(tdb.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(tdb.DB)
	importCfg := inventoryapp.ImportConfig{MaxErrors: 50, MaxRows: 1000}

	settingsSvc := settingsapp.NewSettingsService(persistence.NewGormSettingsRepository(tdb.DB), itemRepo, nil)
	return &services{
		settings:  settingsSvc,
		inventory: inventoryapp.NewInventoryService(itemRepo, vendorRepo, settingsSvc, importCfg, nil),
		vendors:   partnerapp.NewVendorService(vendorRepo, itemRepo, invoiceRepo, settingsSvc, importCfg, nil),
		invoices: invoiceapp.NewInvoiceService(
			invoiceRepo, vendorRepo, persistence.NewGormTransactionScope(tdb.DB), settingsSvc, importCfg, nil,
		),
		shopping: shoppingapp.NewShoppingService(persistence.NewGormShoppingRepository(tdb.DB), itemRepo, settingsSvc, nil),
		reports:  reportapp.NewReportService(persistence.NewGormReportRepository(tdb.DB), itemRepo, settingsSvc, nil),
	}
}

// TestStoreFlow_Integration walks a delivery from invoice to shelf to reorder on PostgreSQL
func TestStoreFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc := newServices(tdb)
	fx := testutil.NewFixtures(2026)
	ctx := context.Background()

	values, err := svc.settings.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Choice", values.StoreName, "migrations seed the default settings")

	vendor, err := svc.vendors.Create(ctx, fx.VendorRequest())
	require.NoError(t, err)

	stocked := fx.ItemRequest()
	stocked.VendorID = &vendor.ID
	stocked.Quantity = 4
	stocked.WeeklySales = decimal.NewFromInt(5)
	item, err := svc.inventory.Create(ctx, stocked)
	require.NoError(t, err)

	t.Run("search is case insensitive", func(t *testing.T) {
		page, err := svc.inventory.List(ctx, inventoryapp.ListFilter{Search: strings.ToUpper(item.Name[:3])})
		require.NoError(t, err)
		require.NotEmpty(t, page.Items)
		assert.Equal(t, item.ID, page.Items[0].ID)
	})

	newUPC := fx.UPC()
	req := fx.InvoiceRequest(&vendor.ID, time.Now(), item.UPC, newUPC)
	req.Items[0].Quantity = 12
	req.Items[0].UnitCost = decimal.RequireFromString("1.75")
	req.Items[1].Description = "Goat Cheese"
	inv, err := svc.invoices.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "pending", inv.Status)

	t.Run("receive restocks and creates unknown items atomically", func(t *testing.T) {
		received, err := svc.invoices.Receive(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "received", received.Invoice.Status)
		require.Len(t, received.Received, 2)

		restocked, err := svc.inventory.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 16, restocked.Quantity)
		assert.True(t, restocked.CostPrice.Equal(decimal.RequireFromString("1.75")))

		created, err := svc.inventory.GetByUPC(ctx, newUPC)
		require.NoError(t, err)
		assert.Equal(t, "Goat Cheese", created.Name)
		assert.Equal(t, req.Items[1].Quantity, created.Quantity)
		require.NotNil(t, created.VendorID)
		assert.Equal(t, vendor.ID, *created.VendorID)

		_, err = svc.invoices.Receive(ctx, inv.ID)
		assert.Error(t, err, "an invoice is received once")
	})

	t.Run("pay", func(t *testing.T) {
		paid, err := svc.invoices.Pay(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "paid", paid.Status)
	})

	t.Run("reorder generation uses the seeded multiplier", func(t *testing.T) {
		low := fx.ItemRequest()
		low.Quantity = 1
		low.WeeklySales = decimal.Zero
		lowItem, err := svc.inventory.Create(ctx, low)
		require.NoError(t, err)

		gen, err := svc.shopping.Generate(ctx)
		require.NoError(t, err)

		var found bool
		for _, entry := range gen.Items {
			if entry.InventoryID != nil && *entry.InventoryID == lowItem.ID {
				found = true
				assert.Equal(t, "critical", entry.Priority)
				assert.Equal(t, 19, entry.Quantity)
			}
		}
		assert.True(t, found, "critical item is put on the list")

		again, err := svc.shopping.Generate(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, again.Added)
	})

	t.Run("dashboard aggregates in SQL", func(t *testing.T) {
		d, err := svc.reports.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), d.Inventory.TotalItems)
		assert.Equal(t, int64(1), d.VendorCount)
		assert.Equal(t, int64(0), d.PendingInvoices.Count)
		assert.Positive(t, d.PendingShopping)
	})

	t.Run("deleting a vendor keeps its items", func(t *testing.T) {
		require.NoError(t, svc.vendors.Delete(ctx, vendor.ID))

		orphan, err := svc.inventory.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, orphan.VendorID)
	})
}

// TestImport_Integration runs the CSV importers against PostgreSQL constraints
func TestImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc := newServices(tdb)
	fx := testutil.NewFixtures(7)
	ctx := context.Background()

	rows := make([]inventoryapp.CreateItemRequest, 25)
	for i := range rows {
		rows[i] = fx.ItemRequest()
	}
	rows = append(rows, rows[3]) // a UPC repeated within the batch fails

	result, err := svc.inventory.BulkImport(ctx, rows, false)
	require.NoError(t, err)
	assert.Equal(t, 25, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "upc", result.Errors[0].Field)

	page, err := svc.inventory.List(ctx, inventoryapp.ListFilter{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	tdb.CleanTables()
	page, err = svc.inventory.List(ctx, inventoryapp.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}
