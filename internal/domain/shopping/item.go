package shopping

import (
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
)

// Priority ranks how urgently something needs to be bought
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid checks if the priority is known
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// String returns the string representation of Priority
func (p Priority) String() string {
	return string(p)
}

// Rank orders priorities with critical first
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Priorities lists every priority, most urgent first
func Priorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

// Item is one entry on the shopping list
type Item struct {
	shared.BaseEntity
	InventoryID *int64     `gorm:"index"`
	VendorID    *int64     `gorm:"index"`
	ItemName    string     `gorm:"type:varchar(200);not null"`
	UPC         string     `gorm:"type:varchar(50)"`
	Quantity    int        `gorm:"not null;default:1"`
	Priority    Priority   `gorm:"type:varchar(20);not null;default:'medium'"`
	Notes       string     `gorm:"type:text"`
	Purchased   bool       `gorm:"not null;default:false;index"`
	PurchasedAt *time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "shopping_list"
}

// NewItem creates a new unpurchased shopping-list entry
func NewItem(itemName string, quantity int, priority Priority) (*Item, error) {
	itemName = strings.TrimSpace(itemName)
	if err := validateItemName(itemName); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium, high or critical")
	}

	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		ItemName:   itemName,
		Quantity:   quantity,
		Priority:   priority,
	}, nil
}

// Rename changes the item name
func (i *Item) Rename(itemName string) error {
	itemName = strings.TrimSpace(itemName)
	if err := validateItemName(itemName); err != nil {
		return err
	}
	i.ItemName = itemName
	i.Touch()
	return nil
}

// SetQuantity changes how many to buy
func (i *Item) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.Touch()
	return nil
}

// SetPriority changes the priority
func (i *Item) SetPriority(priority Priority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium, high or critical")
	}
	i.Priority = priority
	i.Touch()
	return nil
}

// LinkInventory ties the entry to an inventory row and its vendor
func (i *Item) LinkInventory(inventoryID int64, upc string, vendorID *int64) {
	i.InventoryID = &inventoryID
	i.UPC = strings.TrimSpace(upc)
	i.VendorID = vendorID
	i.Touch()
}

// SetNotes sets free-form notes
func (i *Item) SetNotes(notes string) {
	i.Notes = strings.TrimSpace(notes)
	i.Touch()
}

// MarkPurchased sets or clears the purchased flag and its timestamp
func (i *Item) MarkPurchased(purchased bool) {
	i.Purchased = purchased
	if purchased {
		now := time.Now()
		i.PurchasedAt = &now
	} else {
		i.PurchasedAt = nil
	}
	i.Touch()
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	return nil
}
