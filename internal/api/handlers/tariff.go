package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motor-audit/internal/api/models"
	"motor-audit/internal/data"
	"motor-audit/internal/model"
)

// TariffHandler serves the time-of-use tariff
type TariffHandler struct {
	tariff model.TariffTable
	unit   string
}

// NewTariffHandler creates a new tariff handler
func NewTariffHandler(tariff model.TariffTable, unit string) *TariffHandler {
	return &TariffHandler{tariff: tariff, unit: unit}
}

// GetTariff handles GET /api/v1/tariff
func (h *TariffHandler) GetTariff(c *gin.Context) {
	bands := make([]models.BandInfo, 0, len(h.tariff.Bands))
	for _, b := range h.tariff.Bands {
		bands = append(bands, models.BandInfo{
			Name:      b.Name,
			StartHour: b.StartHour,
			EndHour:   b.EndHour,
			Rate:      b.Rate,
		})
	}
	c.JSON(http.StatusOK, models.TariffInfo{
		CurrencyUnit: h.unit,
		DefaultRate:  h.tariff.DefaultRate,
		DefaultName:  h.tariff.DefaultName,
		Bands:        bands,
	})
}

// GetRate handles GET /api/v1/tariff/rate?time=...
func (h *TariffHandler) GetRate(c *gin.Context) {
	var q models.RateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	at, err := data.ParseTimestamp(q.Time)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_TIME", err.Error(), map[string]interface{}{
			"time": q.Time,
		})
		return
	}

	band := h.tariff.BandFor(at)
	c.JSON(http.StatusOK, models.RateResponse{
		Time:         at,
		Band:         band.Name,
		Rate:         band.Rate,
		CurrencyUnit: h.unit,
	})
}
