package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CSVColumns are the inventory CSV headers, shared by import and export
var CSVColumns = []string{
	"upc", "sku", "name", "description", "category", "brand", "unit", "location", "vendor",
	"cost_price", "sell_price", "quantity", "min_stock", "weekly_sales", "expiration_date",
}

var exportColumns = append(append([]string{"id"}, CSVColumns...),
	"margin", "margin_percent", "total_value", "retail_value", "is_low_stock")

var rowValidator = csvimport.NewRowValidator()

// BulkImport creates each row, or updates the existing item when upsert is set.
// Rows are independent: a failing row is reported and the rest still run.
func (s *InventoryService) BulkImport(ctx context.Context, rows []CreateItemRequest, upsert bool) (*csvimport.Result, error) {
	return s.bulkImport(ctx, len(rows), upsert, func(i int, _ *csvimport.ErrorCollection) (CreateItemRequest, bool) {
		return rows[i], true
	})
}

// BulkImportJSON is BulkImport over undecoded JSON rows. A row that does not
// decode into CreateItemRequest fails on its own instead of rejecting the batch.
func (s *InventoryService) BulkImportJSON(ctx context.Context, rows []json.RawMessage, upsert bool) (*csvimport.Result, error) {
	return s.bulkImport(ctx, len(rows), upsert, func(i int, errs *csvimport.ErrorCollection) (CreateItemRequest, bool) {
		return decodeJSONRow(i+1, rows[i], errs)
	})
}

func (s *InventoryService) bulkImport(
	ctx context.Context,
	total int,
	upsert bool,
	rowAt func(i int, errs *csvimport.ErrorCollection) (CreateItemRequest, bool),
) (*csvimport.Result, error) {
	if s.importCfg.MaxRows > 0 && total > s.importCfg.MaxRows {
		return nil, shared.InvalidInput(fmt.Sprintf("Import is limited to %d rows", s.importCfg.MaxRows))
	}

	errs := csvimport.NewErrorCollection(s.importCfg.MaxErrors)
	result := &csvimport.Result{TotalRows: total}
	seen := make(map[string]int, total)

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req, ok := rowAt(i, errs)
		if !ok {
			result.Failed++
			continue
		}
		s.importRow(ctx, i+1, req, upsert, seen, errs, result)
	}

	s.logger.Info("Inventory import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result.Finish(errs), nil
}

// decodeJSONRow reports a row whose JSON does not fit CreateItemRequest
func decodeJSONRow(line int, raw json.RawMessage, errs *csvimport.ErrorCollection) (CreateItemRequest, bool) {
	var req CreateItemRequest
	err := json.Unmarshal(raw, &req)
	if err == nil {
		return req, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		errs.AddType(line, typeErr.Field, typeErr.Type.String(), typeErr.Value)
	} else {
		errs.AddMessage(line, "", csvimport.CodeInvalidType, err.Error())
	}
	return CreateItemRequest{}, false
}

// ImportCSV reads an inventory CSV and imports it with BulkImport semantics.
// Row numbers in errors are file line numbers.
func (s *InventoryService) ImportCSV(ctx context.Context, r io.Reader, upsert bool) (*csvimport.Result, error) {
	parser, err := csvimport.NewParser(r, csvimport.WithMaxRows(s.importCfg.MaxRows))
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}
	if missing := parser.MissingHeaders("upc", "name"); len(missing) > 0 {
		return nil, shared.InvalidInput("Missing required columns: " + strings.Join(missing, ", "))
	}
	rows, err := parser.ReadAll()
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}

	errs := csvimport.NewErrorCollection(s.importCfg.MaxErrors)
	result := &csvimport.Result{TotalRows: len(rows)}
	seen := make(map[string]int, len(rows))
	vendorIDs := make(map[string]*int64)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req, ok := s.decodeRow(ctx, row, vendorIDs, errs)
		if !ok {
			result.Failed++
			continue
		}
		s.importRow(ctx, row.LineNumber, req, upsert, seen, errs, result)
	}

	s.logger.Info("Inventory CSV import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result.Finish(errs), nil
}

func (s *InventoryService) decodeRow(ctx context.Context, row *csvimport.Row, vendorIDs map[string]*int64, errs *csvimport.ErrorCollection) (CreateItemRequest, bool) {
	f := csvimport.NewFieldReader(row, errs)
	req := CreateItemRequest{
		UPC:         f.Required("upc"),
		SKU:         f.String("sku"),
		Name:        f.Required("name"),
		Description: f.String("description"),
		Category:    f.String("category"),
		Brand:       f.String("brand"),
		Unit:        f.String("unit"),
		Location:    f.String("location"),
		CostPrice:   f.Decimal("cost_price", decimal.Zero),
		SellPrice:   f.Decimal("sell_price", decimal.Zero),
		Quantity:    f.Int("quantity", 0),
		MinStock:    f.Int("min_stock", 0),
		WeeklySales: f.Decimal("weekly_sales", decimal.Zero),
	}
	if exp := f.Date("expiration_date"); exp != nil {
		d := exp.Format("2006-01-02")
		req.ExpirationDate = &d
	}
	if name := f.String("vendor"); name != "" {
		req.VendorID = s.resolveVendor(ctx, name, vendorIDs)
	}
	return req, f.OK()
}

// resolveVendor maps a vendor name to its id; unknown names leave the item unassigned
func (s *InventoryService) resolveVendor(ctx context.Context, name string, cache map[string]*int64) *int64 {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id
	}
	var id *int64
	if s.vendorRepo != nil {
		if v, err := s.vendorRepo.FindByName(ctx, name); err == nil {
			id = &v.ID
		}
	}
	cache[key] = id
	return id
}

func (s *InventoryService) importRow(
	ctx context.Context,
	line int,
	row CreateItemRequest,
	upsert bool,
	seen map[string]int,
	errs *csvimport.ErrorCollection,
	result *csvimport.Result,
) {
	if !rowValidator.Check(line, row, errs) {
		result.Failed++
		return
	}

	upc := inventory.NormalizeUPC(row.UPC)
	if _, dup := seen[upc]; dup {
		errs.AddDuplicate(line, "upc", upc, false)
		result.Failed++
		return
	}
	seen[upc] = line

	existing, err := s.itemRepo.FindByUPC(ctx, upc)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		recordRowError(errs, line, err)
		result.Failed++
		return
	}

	if existing != nil {
		if !upsert {
			errs.AddDuplicate(line, "upc", upc, true)
			result.Skipped++
			return
		}
		if err := s.applyCreate(ctx, existing, row); err != nil {
			recordRowError(errs, line, err)
			result.Failed++
			return
		}
		if err := s.saveChecked(ctx, existing); err != nil {
			recordRowError(errs, line, err)
			result.Failed++
			return
		}
		result.Updated++
		return
	}

	item, err := s.buildItem(ctx, row)
	if err == nil {
		err = s.saveChecked(ctx, item)
	}
	if err != nil {
		recordRowError(errs, line, err)
		result.Failed++
		return
	}
	result.Imported++
}

func (s *InventoryService) saveChecked(ctx context.Context, item *inventory.Item) error {
	if err := s.checkUnique(ctx, item); err != nil {
		return err
	}
	return s.itemRepo.Save(ctx, item)
}

// recordRowError converts a domain error into a row error; INVALID_<FIELD> codes name the field
func recordRowError(errs *csvimport.ErrorCollection, line int, err error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		errs.AddMessage(line, "", csvimport.CodeValidation, err.Error())
		return
	}
	switch {
	case de.Code == "ALREADY_EXISTS":
		errs.AddMessage(line, "", csvimport.CodeAlreadyExists, de.Message)
	case de.Code == "NOT_FOUND":
		errs.AddMessage(line, "", csvimport.CodeReferenceNotFound, de.Message)
	case de.Code == "INVALID_INPUT":
		errs.AddMessage(line, "", csvimport.CodeValidation, de.Message)
	case strings.HasPrefix(de.Code, "INVALID_"):
		field := strings.ToLower(strings.TrimPrefix(de.Code, "INVALID_"))
		errs.AddMessage(line, field, csvimport.CodeValidation, de.Message)
	default:
		errs.AddMessage(line, "", de.Code, de.Message)
	}
}

// ExportCSV writes every item matching the filter, pagination ignored
func (s *InventoryService) ExportCSV(ctx context.Context, f ListFilter, w io.Writer) error {
	filter, err := s.BuildFilter(ctx, f)
	if err != nil {
		return err
	}
	v, err := s.values(ctx)
	if err != nil {
		return err
	}
	items, err := s.itemRepo.FindAll(ctx, filter.Unpaged())
	if err != nil {
		return err
	}
	vendorNames, err := s.vendorNames(ctx)
	if err != nil {
		return err
	}

	out, err := csvimport.NewWriter(w, exportColumns...)
	if err != nil {
		return err
	}
	for i := range items {
		item := &items[i]
		sku := ""
		if item.SKU != nil {
			sku = *item.SKU
		}
		vendorName := ""
		if item.VendorID != nil {
			vendorName = vendorNames[*item.VendorID]
		}
		if err := out.Write(
			strconv.FormatInt(item.ID, 10),
			item.UPC, sku, item.Name, item.Description, item.Category, item.Brand, item.Unit, item.Location, vendorName,
			csvimport.FormatMoney(item.CostPrice),
			csvimport.FormatMoney(item.SellPrice),
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinStock),
			item.WeeklySales.String(),
			csvimport.FormatDate(item.ExpirationDate),
			csvimport.FormatMoney(item.Margin()),
			item.MarginPercent().StringFixed(2),
			csvimport.FormatMoney(item.TotalValue()),
			csvimport.FormatMoney(item.RetailValue()),
			strconv.FormatBool(item.IsLowStock(v.LowStockThreshold)),
		); err != nil {
			return err
		}
	}
	return out.Flush()
}

func (s *InventoryService) vendorNames(ctx context.Context) (map[int64]string, error) {
	names := make(map[int64]string)
	if s.vendorRepo == nil {
		return names, nil
	}
	vendors, err := s.vendorRepo.FindAll(ctx, shared.DefaultFilter().Unpaged())
	if err != nil {
		return nil, err
	}
	for _, v := range vendors {
		names[v.ID] = v.Name
	}
	return names, nil
}
