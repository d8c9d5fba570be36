package partner

import (
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
)

// DefaultLeadTimeDays is used when a vendor has no lead time recorded
const DefaultLeadTimeDays = 7

// Vendor is a supplier that inventory is bought from
type Vendor struct {
	shared.BaseEntity
	Name         string `gorm:"type:varchar(200);not null"`
	ContactName  string `gorm:"type:varchar(100)"`
	Email        string `gorm:"type:varchar(200)"`
	Phone        string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:text"`
	Website      string `gorm:"type:varchar(255)"`
	PaymentTerms string `gorm:"type:varchar(100)"`
	LeadTimeDays int    `gorm:"not null;default:7"`
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with required fields
func NewVendor(name string) (*Vendor, error) {
	name = strings.TrimSpace(name)
	if err := validateVendorName(name); err != nil {
		return nil, err
	}

	return &Vendor{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		LeadTimeDays: DefaultLeadTimeDays,
	}, nil
}

// Rename changes the vendor's name
func (v *Vendor) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateVendorName(name); err != nil {
		return err
	}
	v.Name = name
	v.Touch()
	return nil
}

// SetContact sets the vendor's contact information
func (v *Vendor) SetContact(contactName, email, phone string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	v.ContactName = strings.TrimSpace(contactName)
	v.Email = email
	v.Phone = strings.TrimSpace(phone)
	v.Touch()
	return nil
}

// SetLeadTime sets how many days an order from this vendor takes to arrive
func (v *Vendor) SetLeadTime(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_LEAD_TIME", "Lead time cannot be negative")
	}
	v.LeadTimeDays = days
	v.Touch()
	return nil
}

func validateVendorName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}
	return nil
}
