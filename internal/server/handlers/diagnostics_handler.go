package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/autodiag/internal/domain/models"
	"github.com/mbodji/autodiag/internal/service/diagnosis"
)

// DiagnosticsHandler serves the measurement-normalization endpoints used by
// the browser UI.
type DiagnosticsHandler struct {
	logger *zap.Logger
}

// NewDiagnosticsHandler constructs the HTTP handler adapter.
func NewDiagnosticsHandler(logger *zap.Logger) *DiagnosticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagnosticsHandler{logger: logger}
}

// chargingRequest accepts the voltage as any JSON value so that malformed
// readings degrade to UNKNOWN instead of a 4xx. The UI submits whatever the
// user typed.
type chargingRequest struct {
	Voltage any                `json:"voltage"`
	Load    models.LoadContext `json:"load"`
}

// ClassifyCharging normalizes one charging-system measurement.
func (h *DiagnosticsHandler) ClassifyCharging(c *gin.Context) {
	var req chargingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid charging payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	measurement := models.ChargingMeasurement{
		Voltage: coerceVoltage(req.Voltage),
		Load:    req.Load,
	}
	status := diagnosis.ClassifyMeasurement(measurement)

	c.JSON(http.StatusOK, gin.H{
		"system": "charging",
		"status": status,
	})
}

// Exception reports one-hop measurement-exception eligibility for the given
// strength.
func (h *DiagnosticsHandler) Exception(c *gin.Context) {
	strength := c.Query("strength")
	c.JSON(http.StatusOK, diagnosis.ExceptionEligibility(strength))
}

// coerceVoltage maps the loosely typed JSON voltage onto the measurement
// model. Numbers pass through, strings are parsed leniently, anything else is
// treated as missing.
func coerceVoltage(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case string:
		parsed := diagnosis.ParseVoltage(v)
		if math.IsNaN(parsed) {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}
