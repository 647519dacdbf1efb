package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"motor-audit/internal/api/models"
	"motor-audit/internal/model"
)

// MotorHandler serves the motor profile and classifies single readings
type MotorHandler struct {
	name  string
	motor model.MotorProfile
}

// NewMotorHandler creates a new motor handler
func NewMotorHandler(name string, motor model.MotorProfile) *MotorHandler {
	return &MotorHandler{name: name, motor: motor}
}

// GetMotor handles GET /api/v1/motor
func (h *MotorHandler) GetMotor(c *gin.Context) {
	th := h.motor.Thresholds()
	c.JSON(http.StatusOK, models.MotorInfo{
		Name:              h.name,
		EquipmentRatingKW: h.motor.EquipmentRatingKW,
		Efficiency:        h.motor.Efficiency,
		ServiceFactor:     h.motor.ServiceFactor,
		RatedPowerKW:      h.motor.RatedPowerKW(),
		Thresholds: models.Thresholds{
			VampireKW:  th.VampireKW,
			IdleKW:     th.IdleKW,
			OverloadKW: th.OverloadKW,
		},
	})
}

// Classify handles POST /api/v1/classify
func (h *MotorHandler) Classify(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	var kw float64
	switch {
	case req.PowerKW != nil:
		kw = *req.PowerKW
	case req.P1 != nil && req.P2 != nil && req.P3 != nil:
		kw = model.Sample{P1: *req.P1, P2: *req.P2, P3: *req.P3}.PowerKW()
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "either power_kw or p1, p2 and p3 are required", nil)
		return
	}
	if math.IsNaN(kw) || math.IsInf(kw, 0) {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "power must be finite", nil)
		return
	}

	c.JSON(http.StatusOK, models.ClassifyResponse{
		PowerKW: kw,
		State:   string(h.motor.Classify(kw)),
	})
}
