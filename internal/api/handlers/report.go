package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"motor-audit/internal/api/models"
	"motor-audit/internal/audit"
	"motor-audit/internal/data"
	"motor-audit/internal/model"
	"motor-audit/internal/report"
)

// ReportObserver is notified of every completed audit run.
type ReportObserver interface {
	ObserveReport(res *audit.Result)
}

// ReportOptions tune a ReportHandler. Zero values are usable.
type ReportOptions struct {
	CurrencyUnit   string
	MaxUploadBytes int64 // 0 = unlimited
	Observer       ReportObserver
	Logger         logrus.FieldLogger
}

// ReportHandler runs audits on uploaded CSVs and serves the cached results
type ReportHandler struct {
	engine *audit.Engine
	cache  *audit.ResultCache
	opts   ReportOptions
}

// NewReportHandler creates a new report handler
func NewReportHandler(engine *audit.Engine, cache *audit.ResultCache, opts ReportOptions) *ReportHandler {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &ReportHandler{engine: engine, cache: cache, opts: opts}
}

// CreateReport handles POST /api/v1/reports
//
// Multipart form: "energy" (required) feeds the energy and cost reports,
// "power" (optional, defaults to energy) feeds the periods report.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var q models.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if h.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}

	energyFile, err := c.FormFile("energy")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart file \"energy\" is required", map[string]interface{}{
			"reason": err.Error(),
		})
		return
	}
	energy, err := readUpload(energyFile)
	if err != nil {
		respondAuditError(c, err)
		return
	}
	sources := []string{energyFile.Filename}

	power := energy
	powerFile, err := c.FormFile("power")
	switch {
	case err == nil:
		power, err = readUpload(powerFile)
		if err != nil {
			respondAuditError(c, err)
			return
		}
		sources = append(sources, powerFile.Filename)
	case !errors.Is(err, http.ErrMissingFile):
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	res, err := h.engine.Run(energy, power)
	if err != nil {
		respondAuditError(c, err)
		return
	}
	stored := h.cache.Put(res, sources...)
	if h.opts.Observer != nil {
		h.opts.Observer.ObserveReport(res)
	}

	h.opts.Logger.WithFields(logrus.Fields{
		"id":             stored.ID,
		"sources":        sources,
		"energy_samples": len(energy),
		"power_samples":  len(power),
	}).Info("report created")

	c.JSON(http.StatusCreated, buildResponse(stored, h.opts.CurrencyUnit, q.IncludeLedger))
}

// GetReport handles GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	stored, ok := h.lookup(c)
	if !ok {
		return
	}
	var q models.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, buildResponse(stored, h.opts.CurrencyUnit, q.IncludeLedger))
}

// GetLedger handles GET /api/v1/reports/:id/ledger
func (h *ReportHandler) GetLedger(c *gin.Context) {
	stored, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:     stored.ID,
		Ledger: buildLedger(stored.Result.Ledger),
	})
}

// ExportReport handles GET /api/v1/reports/:id/export?format=xlsx|pdf|csv
func (h *ReportHandler) ExportReport(c *gin.Context) {
	stored, ok := h.lookup(c)
	if !ok {
		return
	}
	var q models.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if q.Format == "" {
		q.Format = "xlsx"
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	switch q.Format {
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		body, err = report.BuildXLSX(stored.Result, h.opts.CurrencyUnit)
	case "pdf":
		contentType = "application/pdf"
		body, err = report.BuildPDF(stored.Result, h.opts.CurrencyUnit)
	case "csv":
		contentType = "text/csv"
		var buf bytes.Buffer
		err = report.EncodeLedgerCSV(&buf, stored.Result.Ledger)
		body = buf.Bytes()
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", fmt.Sprintf("unsupported export format %q", q.Format), map[string]interface{}{
			"supported": []string{"xlsx", "pdf", "csv"},
		})
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"report-%s.%s\"", stored.ID, q.Format))
	c.Data(http.StatusOK, contentType, body)
}

func (h *ReportHandler) lookup(c *gin.Context) (*audit.StoredResult, bool) {
	id := c.Param("id")
	stored, ok := h.cache.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "REPORT_NOT_FOUND", "report not found or expired", map[string]interface{}{
			"id": id,
		})
		return nil, false
	}
	return stored, true
}

func readUpload(fh *multipart.FileHeader) ([]model.Sample, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return data.ReadSamples(f, fh.Filename)
}
