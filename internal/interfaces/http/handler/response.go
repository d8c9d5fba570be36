package handler

import (
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
)

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool                   `json:"success" example:"false"`
	Error   string                 `json:"error" example:"Inventory item not found"`
	Code    string                 `json:"code" example:"NOT_FOUND"`
	Details []dto.ValidationDetail `json:"details,omitempty"`
}

// ImportResponse documents the body of every import endpoint
// @Description Best-effort import outcome
type ImportResponse = csvimport.Result

// ImportRecorder counts import row outcomes
type ImportRecorder interface {
	RecordImport(entity string, imported, updated, skipped, failed int)
}

func recordImport(rec ImportRecorder, entity string, r *csvimport.Result) {
	if rec == nil || r == nil {
		return
	}
	rec.RecordImport(entity, r.Imported, r.Updated, r.Skipped, r.Failed)
}
