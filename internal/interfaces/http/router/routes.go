package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/handler"
)

// Handlers holds every API handler the router mounts
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Inventory *handler.InventoryHandler
	Vendors   *handler.VendorHandler
	Invoices  *handler.InvoiceHandler
	Shopping  *handler.ShoppingHandler
	Settings  *handler.SettingsHandler
	Reports   *handler.ReportHandler
}

// Guards are the access-control middleware applied per route.
// AuthRateLimit may be nil.
type Guards struct {
	Auth          gin.HandlerFunc
	OptionalAuth  gin.HandlerFunc
	Admin         gin.HandlerFunc
	AuthRateLimit gin.HandlerFunc
}

// APIGroups builds the domain groups of the versioned API
func APIGroups(h Handlers, g Guards) []*DomainGroup {
	return []*DomainGroup{
		authGroup(h.Auth, g),
		NewDomainGroup("users", "/users").
			Use(g.Auth, g.Admin).
			GET("", h.Users.List).
			DELETE("/:id", h.Users.Delete),
		inventoryGroup(h.Inventory, g),
		vendorGroup(h.Vendors, g),
		invoiceGroup(h.Invoices, g),
		shoppingGroup(h.Shopping, g),
		settingsGroup(h.Settings, g),
		reportGroup(h.Reports, g),
	}
}

func authGroup(h *handler.AuthHandler, g Guards) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		Use(g.AuthRateLimit).
		POST("/register", g.OptionalAuth, h.Register).
		POST("/login", h.Login).
		POST("/refresh", h.RefreshToken).
		POST("/logout", g.Auth, h.Logout).
		GET("/me", g.Auth, h.GetCurrentUser).
		PUT("/password", g.Auth, h.ChangePassword)
}

func inventoryGroup(h *handler.InventoryHandler, g Guards) *DomainGroup {
	return NewDomainGroup("inventory", "/inventory").
		Use(g.Auth).
		GET("", h.List).
		POST("", h.Create).
		GET("/categories", h.Categories).
		GET("/low-stock", h.LowStock).
		GET("/expiring", h.Expiring).
		GET("/export", h.ExportCSV).
		POST("/bulk", h.BulkImport).
		POST("/import", h.ImportCSV).
		GET("/upc/:upc", h.GetByUPC).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		PATCH("/:id/quantity", h.AdjustQuantity).
		DELETE("/:id", h.Delete)
}

func vendorGroup(h *handler.VendorHandler, g Guards) *DomainGroup {
	return NewDomainGroup("vendors", "/vendors").
		Use(g.Auth).
		GET("", h.List).
		POST("", h.Create).
		GET("/export", h.ExportCSV).
		POST("/import", h.ImportCSV).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		GET("/:id/inventory", h.Items).
		GET("/:id/invoices", h.Invoices)
}

func invoiceGroup(h *handler.InvoiceHandler, g Guards) *DomainGroup {
	return NewDomainGroup("invoices", "/invoices").
		Use(g.Auth).
		GET("", h.List).
		POST("", h.Create).
		GET("/export", h.ExportCSV).
		POST("/import", h.ImportCSV).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		POST("/:id/items", h.AddItem).
		DELETE("/:id/items/:itemId", h.RemoveItem).
		POST("/:id/receive", h.Receive).
		POST("/:id/pay", h.Pay).
		POST("/:id/cancel", h.Cancel)
}

func shoppingGroup(h *handler.ShoppingHandler, g Guards) *DomainGroup {
	return NewDomainGroup("shopping-list", "/shopping-list").
		Use(g.Auth).
		GET("", h.List).
		POST("", h.Create).
		GET("/export", h.ExportCSV).
		POST("/generate", h.Generate).
		DELETE("/purchased", h.ClearPurchased).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		PATCH("/:id/purchased", h.MarkPurchased)
}

func settingsGroup(h *handler.SettingsHandler, g Guards) *DomainGroup {
	return NewDomainGroup("settings", "/settings").
		Use(g.Auth).
		GET("", h.List).
		PUT("", g.Admin, h.SetAll).
		GET("/reorder-points", h.ReorderPoints).
		GET("/:key", h.Get).
		PUT("/:key", g.Admin, h.Set)
}

func reportGroup(h *handler.ReportHandler, g Guards) *DomainGroup {
	return NewDomainGroup("reports", "/reports").
		Use(g.Auth).
		GET("/dashboard", h.Dashboard).
		GET("/inventory-value", h.InventoryValue).
		GET("/margins", h.Margins).
		GET("/vendor-spend", h.VendorSpend).
		GET("/low-stock", h.LowStock).
		GET("/expiring", h.Expiring).
		GET("/:type/export", h.Export).
		POST("/:type/archive", h.Archive)
}
