package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/report"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PDFRenderer turns a report table into a PDF document
type PDFRenderer interface {
	RenderTable(ctx context.Context, table *report.Table) ([]byte, error)
}

// Option configures optional ReportService collaborators
type Option func(*ReportService)

// WithPDFRenderer enables PDF export
func WithPDFRenderer(r PDFRenderer) Option {
	return func(s *ReportService) { s.pdf = r }
}

// WithArchive enables report archiving to object storage
func WithArchive(store storage.ObjectStore, presignTTL time.Duration) Option {
	return func(s *ReportService) {
		s.store = store
		s.presignTTL = presignTTL
	}
}

// ReportService answers the dashboard and report queries and exports them
type ReportService struct {
	repo       report.Repository
	itemRepo   inventory.Repository
	settings   inventoryapp.SettingsProvider
	pdf        PDFRenderer
	store      storage.ObjectStore
	presignTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	repo report.Repository,
	itemRepo inventory.Repository,
	settingsProvider inventoryapp.SettingsProvider,
	logger *zap.Logger,
	opts ...Option,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReportService{
		repo:       repo,
		itemRepo:   itemRepo,
		settings:   settingsProvider,
		presignTTL: 15 * time.Minute,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReportService) values(ctx context.Context) (settings.Values, error) {
	if s.settings == nil {
		return settings.DefaultValues(), nil
	}
	return s.settings.Values(ctx)
}

func (s *ReportService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Dashboard returns the headline numbers for the home screen
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}
	expiringBefore := s.today().AddDate(0, 0, v.ExpirationWarningDays)

	totals, err := s.repo.InventoryTotals(ctx, v.LowStockThreshold, expiringBefore)
	if err != nil {
		return nil, err
	}
	vendors, err := s.repo.CountVendors(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.InvoiceTotalsByStatus(ctx, string(invoice.StatusPending))
	if err != nil {
		return nil, err
	}
	shoppingCount, err := s.repo.CountPendingShopping(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Inventory:       *totals,
		VendorCount:     vendors,
		PendingInvoices: *pending,
		PendingShopping: shoppingCount,
		ExpiringWindow:  v.ExpirationWarningDays,
		GeneratedAt:     s.now(),
	}, nil
}

// InventoryValue groups stock value by category
func (s *ReportService) InventoryValue(ctx context.Context) (*InventoryValueResponse, error) {
	categories, err := s.repo.ValueByCategory(ctx)
	if err != nil {
		return nil, err
	}
	resp := &InventoryValueResponse{Categories: categories}
	for _, c := range categories {
		resp.TotalItems += c.ItemCount
		resp.TotalUnits += c.Units
		resp.CostValue = resp.CostValue.Add(c.CostValue)
		resp.RetailValue = resp.RetailValue.Add(c.RetailValue)
		resp.PotentialProfit = resp.PotentialProfit.Add(c.PotentialProfit)
	}
	return resp, nil
}

// Margins lists per-item margins, highest first, with category and overall averages.
// Averages cover only the listed items.
func (s *ReportService) Margins(ctx context.Context, p Params) (*MarginsResponse, error) {
	minMargin, err := parseOptionalDecimal("min_margin", p.MinMargin)
	if err != nil {
		return nil, err
	}
	maxMargin, err := parseOptionalDecimal("max_margin", p.MaxMargin)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindAll(ctx, shared.DefaultFilter().Unpaged())
	if err != nil {
		return nil, err
	}

	resp := &MarginsResponse{Items: make([]MarginLine, 0, len(items)), Categories: make([]CategoryMargin, 0)}
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	total := decimal.Zero
	for i := range items {
		item := &items[i]
		pct := item.MarginPercent()
		if minMargin != nil && pct.LessThan(*minMargin) {
			continue
		}
		if maxMargin != nil && pct.GreaterThan(*maxMargin) {
			continue
		}
		resp.Items = append(resp.Items, MarginLine{
			ID:            item.ID,
			UPC:           item.UPC,
			Name:          item.Name,
			Category:      item.Category,
			CostPrice:     item.CostPrice,
			SellPrice:     item.SellPrice,
			Margin:        item.Margin(),
			MarginPercent: pct,
		})
		category := categoryLabel(item.Category)
		sums[category] = sums[category].Add(pct)
		counts[category]++
		total = total.Add(pct)
	}

	sort.SliceStable(resp.Items, func(i, j int) bool {
		return resp.Items[i].MarginPercent.GreaterThan(resp.Items[j].MarginPercent)
	})
	for category, n := range counts {
		resp.Categories = append(resp.Categories, CategoryMargin{
			Category:             category,
			ItemCount:            n,
			AverageMarginPercent: sums[category].Div(decimal.NewFromInt(int64(n))).Round(2),
		})
	}
	sort.Slice(resp.Categories, func(i, j int) bool {
		return resp.Categories[i].Category < resp.Categories[j].Category
	})
	if n := len(resp.Items); n > 0 {
		resp.AverageMarginPercent = total.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	return resp, nil
}

func categoryLabel(c string) string {
	if c == "" {
		return "Uncategorized"
	}
	return c
}

// VendorSpend totals non-cancelled invoices per vendor within optional dates
func (s *ReportService) VendorSpend(ctx context.Context, p Params) (*VendorSpendResponse, error) {
	from, err := parseOptionalDate("from", p.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", p.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, shared.InvalidInput("'to' must not be before 'from'")
	}

	vendors, err := s.repo.VendorSpend(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := &VendorSpendResponse{Vendors: vendors}
	if from != nil {
		d := csvimport.FormatDate(from)
		resp.From = &d
	}
	if to != nil {
		d := csvimport.FormatDate(to)
		resp.To = &d
	}
	for _, v := range vendors {
		resp.Total = resp.Total.Add(v.Total)
		resp.Paid = resp.Paid.Add(v.Paid)
		resp.Outstanding = resp.Outstanding.Add(v.Outstanding)
	}
	return resp, nil
}

// LowStock lists low-stock items with their reorder priority, most urgent first
func (s *ReportService) LowStock(ctx context.Context, p Params) (*LowStockReportResponse, error) {
	var want shopping.Priority
	if p.Priority != "" {
		want = shopping.Priority(strings.ToLower(p.Priority))
		if !want.IsValid() {
			return nil, shared.InvalidInput(fmt.Sprintf("Unknown priority '%s'", p.Priority))
		}
	}
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindAll(ctx, shared.DefaultFilter().Unpaged().With(inventory.FilterLowStock, v.LowStockThreshold))
	if err != nil {
		return nil, err
	}

	points := settings.CalculateReorderPoints(items, v)
	summary := settings.SummarizeReorderPoints(points)
	resp := &LowStockReportResponse{
		Threshold: v.LowStockThreshold,
		Items:     make([]settingsapp.ReorderPointResponse, 0, len(points)),
		Summary:   make(map[string]int, len(summary)),
	}
	for pr, n := range summary {
		resp.Summary[pr.String()] = n
	}
	for _, pt := range points {
		if want != "" && pt.Priority != want {
			continue
		}
		resp.Items = append(resp.Items, settingsapp.ToReorderPointResponse(pt))
	}
	return resp, nil
}

// Expiring lists items expiring within days (the expiration_warning_days setting
// when omitted), already-expired ones included, soonest first
func (s *ReportService) Expiring(ctx context.Context, p Params) (*ExpiringReportResponse, error) {
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}
	window := v.ExpirationWarningDays
	if p.Days != nil {
		if *p.Days < 0 {
			return nil, shared.InvalidInput("days must not be negative")
		}
		window = *p.Days
	}

	items, err := s.itemRepo.FindAll(ctx, shared.DefaultFilter().Unpaged().With(inventory.FilterExpiringWithin, window))
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := &ExpiringReportResponse{Days: window, Items: make([]ExpiringLine, 0, len(items))}
	for i := range items {
		item := &items[i]
		left := item.DaysUntilExpiration(now)
		if left == nil || *left > window {
			continue
		}
		line := ExpiringLine{
			ID:             item.ID,
			UPC:            item.UPC,
			Name:           item.Name,
			Category:       item.Category,
			Quantity:       item.Quantity,
			ExpirationDate: csvimport.FormatDate(item.ExpirationDate),
			DaysLeft:       *left,
			Expired:        *left < 0,
			CostValue:      item.TotalValue(),
		}
		if line.Expired {
			resp.ExpiredCount++
		}
		resp.ValueAtRisk = resp.ValueAtRisk.Add(line.CostValue)
		resp.Items = append(resp.Items, line)
	}
	sort.SliceStable(resp.Items, func(i, j int) bool {
		return resp.Items[i].DaysLeft < resp.Items[j].DaysLeft
	})
	return resp, nil
}

func parseOptionalDecimal(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, shared.InvalidInput(fmt.Sprintf("%s must be a number", field))
	}
	return &d, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, ok := csvimport.ParseDate(raw)
	if !ok {
		return nil, shared.InvalidInput(fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field))
	}
	return &t, nil
}
