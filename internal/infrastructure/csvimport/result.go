package csvimport

import "sort"

// Result summarises a best-effort import
type Result struct {
	TotalRows       int        `json:"total_rows"`
	Imported        int        `json:"imported"`
	Updated         int        `json:"updated"`
	Skipped         int        `json:"skipped"`
	Failed          int        `json:"failed"`
	Errors          []RowError `json:"errors"`
	ErrorsTruncated bool       `json:"errors_truncated,omitempty"`
}

// Finish copies the collected errors into the result, ordered by row
func (r *Result) Finish(errs *ErrorCollection) *Result {
	r.Errors = errs.Errors()
	sort.SliceStable(r.Errors, func(i, j int) bool {
		return r.Errors[i].Row < r.Errors[j].Row
	})
	r.ErrorsTruncated = errs.IsTruncated()
	return r
}
