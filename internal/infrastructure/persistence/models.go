package persistence

import (
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/identity"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
)

// Models lists every persisted domain model in dependency order
func Models() []interface{} {
	return []interface{}{
		&identity.User{},
		&partner.Vendor{},
		&inventory.Item{},
		&invoice.Invoice{},
		&invoice.LineItem{},
		&shopping.Item{},
		&settings.Setting{},
	}
}
