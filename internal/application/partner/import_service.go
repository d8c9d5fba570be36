package partner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"go.uber.org/zap"
)

// CSVColumns are the vendor CSV headers, shared by import and export
var CSVColumns = []string{
	"name", "contact_name", "email", "phone", "address", "website", "payment_terms", "lead_time_days", "notes",
}

var rowValidator = csvimport.NewRowValidator()

// ImportCSV creates a vendor per row, or updates the one with the same name when upsert is set
func (s *VendorService) ImportCSV(ctx context.Context, r io.Reader, upsert bool) (*csvimport.Result, error) {
	parser, err := csvimport.NewParser(r, csvimport.WithMaxRows(s.importCfg.MaxRows))
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}
	if missing := parser.MissingHeaders("name"); len(missing) > 0 {
		return nil, shared.InvalidInput("Missing required columns: " + strings.Join(missing, ", "))
	}
	rows, err := parser.ReadAll()
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}

	errs := csvimport.NewErrorCollection(s.importCfg.MaxErrors)
	result := &csvimport.Result{TotalRows: len(rows)}
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := csvimport.NewFieldReader(row, errs)
		req := CreateVendorRequest{
			Name:         f.Required("name"),
			ContactName:  f.String("contact_name"),
			Email:        f.String("email"),
			Phone:        f.String("phone"),
			Address:      f.String("address"),
			Website:      f.String("website"),
			PaymentTerms: f.String("payment_terms"),
			Notes:        f.String("notes"),
		}
		if f.String("lead_time_days") != "" {
			days := f.Int("lead_time_days", partner.DefaultLeadTimeDays)
			req.LeadTimeDays = &days
		}
		if !f.OK() || !rowValidator.Check(row.LineNumber, req, errs) {
			result.Failed++
			continue
		}

		key := strings.ToLower(strings.TrimSpace(req.Name))
		if seen[key] {
			errs.AddDuplicate(row.LineNumber, "name", req.Name, false)
			result.Failed++
			continue
		}
		seen[key] = true

		s.importRow(ctx, row.LineNumber, req, upsert, errs, result)
	}

	s.logger.Info("Vendor CSV import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result.Finish(errs), nil
}

func (s *VendorService) importRow(ctx context.Context, line int, req CreateVendorRequest, upsert bool, errs *csvimport.ErrorCollection, result *csvimport.Result) {
	existing, err := s.vendorRepo.FindByName(ctx, strings.TrimSpace(req.Name))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		errs.AddMessage(line, "", csvimport.CodeValidation, err.Error())
		result.Failed++
		return
	}

	if existing != nil {
		if !upsert {
			errs.AddDuplicate(line, "name", req.Name, true)
			result.Skipped++
			return
		}
		if err := applyCreate(existing, req); err != nil {
			addDomainError(errs, line, err)
			result.Failed++
			return
		}
		if err := s.vendorRepo.Save(ctx, existing); err != nil {
			addDomainError(errs, line, err)
			result.Failed++
			return
		}
		result.Updated++
		return
	}

	v, err := buildVendor(req)
	if err == nil {
		err = s.vendorRepo.Save(ctx, v)
	}
	if err != nil {
		addDomainError(errs, line, err)
		result.Failed++
		return
	}
	result.Imported++
}

func addDomainError(errs *csvimport.ErrorCollection, line int, err error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		errs.AddMessage(line, "", csvimport.CodeValidation, err.Error())
		return
	}
	if field, ok := strings.CutPrefix(de.Code, "INVALID_"); ok && de.Code != "INVALID_INPUT" {
		errs.AddMessage(line, strings.ToLower(field), csvimport.CodeValidation, de.Message)
		return
	}
	errs.AddMessage(line, "", de.Code, de.Message)
}

// ExportCSV writes every vendor matching the search, with item counts
func (s *VendorService) ExportCSV(ctx context.Context, f ListFilter, w io.Writer) error {
	vendors, err := s.vendorRepo.FindAll(ctx, buildFilter(f).Unpaged())
	if err != nil {
		return err
	}

	out, err := csvimport.NewWriter(w, append([]string{"id"}, append(CSVColumns, "item_count")...)...)
	if err != nil {
		return err
	}
	for i := range vendors {
		v := &vendors[i]
		count, err := s.vendorRepo.CountItems(ctx, v.ID)
		if err != nil {
			return fmt.Errorf("count items for vendor %d: %w", v.ID, err)
		}
		if err := out.Write(
			strconv.FormatInt(v.ID, 10),
			v.Name, v.ContactName, v.Email, v.Phone, v.Address, v.Website, v.PaymentTerms,
			strconv.Itoa(v.LeadTimeDays),
			v.Notes,
			strconv.FormatInt(count, 10),
		); err != nil {
			return err
		}
	}
	return out.Flush()
}
