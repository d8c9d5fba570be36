package testutil

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
	partnerapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/partner"
	"github.com/shopspring/decimal"
)

// Fixtures builds realistic requests from a seeded faker so failures reproduce
type Fixtures struct {
	faker *gofakeit.Faker
	seq   int
}

// NewFixtures creates a fixture builder; the same seed yields the same data
func NewFixtures(seed uint64) *Fixtures {
	return &Fixtures{faker: gofakeit.New(seed)}
}

// Faker exposes the underlying generator for one-off values
func (f *Fixtures) Faker() *gofakeit.Faker {
	return f.faker
}

func (f *Fixtures) next() int {
	f.seq++
	return f.seq
}

// UPC returns a 12 digit code unique within this builder
func (f *Fixtures) UPC() string {
	return fmt.Sprintf("%s%04d", f.faker.Numerify("########"), f.next())
}

// Money returns a price between lo and hi rounded to cents
func (f *Fixtures) Money(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(f.faker.Price(lo, hi)).Round(2)
}

// ItemRequest returns a stocked item priced with a positive margin
func (f *Fixtures) ItemRequest() inventoryapp.CreateItemRequest {
	cost := f.Money(0.5, 20)
	return inventoryapp.CreateItemRequest{
		UPC:         f.UPC(),
		Name:        fmt.Sprintf("%s %d", f.faker.ProductName(), f.next()),
		Category:    f.faker.ProductCategory(),
		Brand:       f.faker.Company(),
		Location:    fmt.Sprintf("Aisle %d", f.faker.IntRange(1, 12)),
		CostPrice:   cost,
		SellPrice:   cost.Mul(decimal.NewFromFloat(1.4)).Round(2),
		Quantity:    f.faker.IntRange(20, 200),
		WeeklySales: decimal.NewFromInt(int64(f.faker.IntRange(1, 10))),
	}
}

// VendorRequest returns a vendor with full contact details
func (f *Fixtures) VendorRequest() partnerapp.CreateVendorRequest {
	lead := f.faker.IntRange(1, 14)
	return partnerapp.CreateVendorRequest{
		Name:         fmt.Sprintf("%s %d", f.faker.Company(), f.next()),
		ContactName:  f.faker.Name(),
		Email:        f.faker.Email(),
		Phone:        f.faker.Phone(),
		Address:      f.faker.Address().Address,
		PaymentTerms: "Net 30",
		LeadTimeDays: &lead,
	}
}

// InvoiceRequest returns a pending invoice dated at with one line per UPC
func (f *Fixtures) InvoiceRequest(vendorID *int64, at time.Time, upcs ...string) invoiceapp.CreateInvoiceRequest {
	lines := make([]invoiceapp.LineItemRequest, len(upcs))
	for i, upc := range upcs {
		lines[i] = invoiceapp.LineItemRequest{
			UPC:         upc,
			Description: f.faker.ProductName(),
			Quantity:    f.faker.IntRange(1, 24),
			UnitCost:    f.Money(0.5, 20),
		}
	}
	return invoiceapp.CreateInvoiceRequest{
		InvoiceNumber: fmt.Sprintf("INV-%s-%d", f.faker.Numerify("####"), f.next()),
		VendorID:      vendorID,
		InvoiceDate:   at.Format("2006-01-02"),
		Items:         lines,
	}
}
