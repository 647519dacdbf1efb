package models

// ClassifyRequest is the body of POST /api/v1/classify. Either PowerKW or all
// three phase readings (W) must be set.
type ClassifyRequest struct {
	PowerKW *float64 `json:"power_kw,omitempty"`
	P1      *float64 `json:"p1,omitempty"`
	P2      *float64 `json:"p2,omitempty"`
	P3      *float64 `json:"p3,omitempty"`
}

// RateQuery is the query of GET /api/v1/tariff/rate.
type RateQuery struct {
	Time string `form:"time" binding:"required"` // any accepted sample timestamp
}

// ReportQuery holds the optional query parameters of the report endpoints.
type ReportQuery struct {
	IncludeLedger bool `form:"include_ledger"` // default: false
}

// ExportQuery is the query of GET /api/v1/reports/:id/export.
type ExportQuery struct {
	Format string `form:"format"` // "xlsx" (default), "pdf", "csv"
}
