package invoice

import (
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a vendor invoice
type Status string

const (
	StatusPending   Status = "pending"
	StatusReceived  Status = "received"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReceived, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusReceived || target == StatusPaid || target == StatusCancelled
	case StatusReceived:
		return target == StatusPaid
	case StatusPaid, StatusCancelled:
		return false
	}
	return false
}

// LineItem is one line of an invoice
type LineItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID   int64           `gorm:"not null;index"`
	InventoryID *int64          `gorm:"index"`
	UPC         string          `gorm:"type:varchar(50)"`
	Description string          `gorm:"type:varchar(255)"`
	Quantity    int             `gorm:"not null"`
	UnitCost    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "invoice_items"
}

// NewLineItem creates a new invoice line, computing its total
func NewLineItem(inventoryID *int64, upc, description string, quantity int, unitCost decimal.Decimal) (*LineItem, error) {
	upc = strings.TrimSpace(upc)
	description = strings.TrimSpace(description)
	if inventoryID == nil && upc == "" && description == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item needs an inventory_id, upc or description")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	unitCost = unitCost.Round(2)
	return &LineItem{
		InventoryID: inventoryID,
		UPC:         upc,
		Description: description,
		Quantity:    quantity,
		UnitCost:    unitCost,
		LineTotal:   unitCost.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Invoice is a vendor invoice with its lines
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	VendorID      *int64          `gorm:"index"`
	InvoiceDate   time.Time       `gorm:"type:date;not null"`
	DueDate       *time.Time      `gorm:"type:date"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'pending'"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	ReceivedAt    *time.Time
	Items         []LineItem `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new pending invoice
func NewInvoice(invoiceNumber string, invoiceDate time.Time) (*Invoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 100 characters")
	}
	if invoiceDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INVOICE_DATE", "Invoice date is required")
	}

	return &Invoice{
		BaseEntity:    shared.NewBaseEntity(),
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   truncateDay(invoiceDate),
		Status:        StatusPending,
		Subtotal:      decimal.Zero,
		Tax:           decimal.Zero,
		Total:         decimal.Zero,
		Items:         make([]LineItem, 0),
	}, nil
}

// CanModify reports whether header fields and lines may still change
func (inv *Invoice) CanModify() bool {
	return inv.Status != StatusReceived && inv.Status != StatusCancelled
}

// ChangeNumber replaces the invoice number
func (inv *Invoice) ChangeNumber(invoiceNumber string) error {
	if err := inv.ensureModifiable(); err != nil {
		return err
	}
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	inv.InvoiceNumber = invoiceNumber
	inv.Touch()
	return nil
}

// SetDates sets the invoice and due dates
func (inv *Invoice) SetDates(invoiceDate time.Time, dueDate *time.Time) error {
	if err := inv.ensureModifiable(); err != nil {
		return err
	}
	if invoiceDate.IsZero() {
		return shared.NewDomainError("INVALID_INVOICE_DATE", "Invoice date is required")
	}
	invoiceDate = truncateDay(invoiceDate)
	if dueDate != nil {
		d := truncateDay(*dueDate)
		if d.Before(invoiceDate) {
			return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before invoice date")
		}
		dueDate = &d
	}
	inv.InvoiceDate = invoiceDate
	inv.DueDate = dueDate
	inv.Touch()
	return nil
}

// AssignVendor sets or clears the vendor
func (inv *Invoice) AssignVendor(vendorID *int64) error {
	if err := inv.ensureModifiable(); err != nil {
		return err
	}
	inv.VendorID = vendorID
	inv.Touch()
	return nil
}

// SetNotes sets free-form notes
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = strings.TrimSpace(notes)
	inv.Touch()
}

// SetTax sets the tax amount and recomputes the total
func (inv *Invoice) SetTax(tax decimal.Decimal) error {
	if err := inv.ensureModifiable(); err != nil {
		return err
	}
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_TAX", "Tax cannot be negative")
	}
	inv.Tax = tax.Round(2)
	inv.RecalculateTotals()
	return nil
}

// ApplyTaxRate sets tax to subtotal × rate / 100
func (inv *Invoice) ApplyTaxRate(ratePercent decimal.Decimal) error {
	return inv.SetTax(inv.Subtotal.Mul(ratePercent).Div(decimal.NewFromInt(100)))
}

// AddItem appends a line and recomputes totals
func (inv *Invoice) AddItem(item *LineItem) error {
	if err := inv.ensureModifiable(); err != nil {
		return err
	}
	item.InvoiceID = inv.ID
	inv.Items = append(inv.Items, *item)
	inv.RecalculateTotals()
	return nil
}

// ReplaceItems swaps the whole line set and recomputes totals
func (inv *Invoice) ReplaceItems(items []LineItem) error {
	if err := inv.ensureModifiable(); err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	inv.Items = items
	inv.RecalculateTotals()
	return nil
}

// RemoveItem removes a persisted line by its ID
func (inv *Invoice) RemoveItem(itemID int64) error {
	if err := inv.ensureModifiable(); err != nil {
		return err
	}
	for i := range inv.Items {
		if inv.Items[i].ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			inv.RecalculateTotals()
			return nil
		}
	}
	return shared.NotFound("Invoice item")
}

// RecalculateTotals recomputes subtotal and total from the lines
func (inv *Invoice) RecalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	inv.Subtotal = subtotal.Round(2)
	inv.Total = inv.Subtotal.Add(inv.Tax).Round(2)
	inv.Touch()
}

// MarkReceived moves a pending invoice to received
func (inv *Invoice) MarkReceived() error {
	if !inv.Status.CanTransitionTo(StatusReceived) {
		return shared.InvalidState("Only pending invoices can be received")
	}
	if len(inv.Items) == 0 {
		return shared.InvalidState("Cannot receive an invoice without items")
	}
	now := time.Now()
	inv.Status = StatusReceived
	inv.ReceivedAt = &now
	inv.Touch()
	return nil
}

// MarkPaid moves a pending or received invoice to paid
func (inv *Invoice) MarkPaid() error {
	if !inv.Status.CanTransitionTo(StatusPaid) {
		return shared.InvalidState("Only pending or received invoices can be paid")
	}
	inv.Status = StatusPaid
	inv.Touch()
	return nil
}

// Cancel moves a pending invoice to cancelled
func (inv *Invoice) Cancel() error {
	if !inv.Status.CanTransitionTo(StatusCancelled) {
		return shared.InvalidState("Only pending invoices can be cancelled")
	}
	inv.Status = StatusCancelled
	inv.Touch()
	return nil
}

// GetItem returns the line with the given ID, or nil
func (inv *Invoice) GetItem(itemID int64) *LineItem {
	for i := range inv.Items {
		if inv.Items[i].ID == itemID {
			return &inv.Items[i]
		}
	}
	return nil
}

// ItemCount returns the number of lines
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// IsOverdue reports whether an unpaid invoice is past its due date
func (inv *Invoice) IsOverdue(now time.Time) bool {
	if inv.DueDate == nil || inv.Status == StatusPaid || inv.Status == StatusCancelled {
		return false
	}
	return truncateDay(now).After(*inv.DueDate)
}

func (inv *Invoice) ensureModifiable() error {
	if !inv.CanModify() {
		return shared.InvalidState("Invoice cannot be modified once " + inv.Status.String())
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
