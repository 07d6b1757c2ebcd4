package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/autodiag/internal/domain/models"
	"github.com/mbodji/autodiag/internal/repository/mongodb"
	"github.com/mbodji/autodiag/internal/service/reporting"
)

// VehicleHandler serves the per-vehicle history and summary endpoints.
type VehicleHandler struct {
	repo         mongodb.Repository
	reportingSvc *reporting.Service
	logger       *zap.Logger
}

// NewVehicleHandler constructs the HTTP handler adapter.
func NewVehicleHandler(repo mongodb.Repository, reportingSvc *reporting.Service, logger *zap.Logger) *VehicleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VehicleHandler{repo: repo, reportingSvc: reportingSvc, logger: logger}
}

type mileageRequest struct {
	Date    time.Time `json:"date" binding:"required"`
	Mileage float64   `json:"mileage" binding:"required"`
	Source  string    `json:"source"`
}

// AddMileage records an odometer reading for a vehicle.
func (h *VehicleHandler) AddMileage(c *gin.Context) {
	var req mileageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid mileage payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	entry := models.MileageEntry{
		VehicleID: c.Param("id"),
		Date:      req.Date,
		Mileage:   req.Mileage,
		Source:    req.Source,
		CreatedAt: time.Now(),
	}

	if err := h.repo.InsertMileageEntry(c.Request.Context(), entry); err != nil {
		h.logger.Error("failed storing mileage entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListMileage returns the odometer history for a vehicle, oldest first.
func (h *VehicleHandler) ListMileage(c *gin.Context) {
	entries, err := h.repo.ListMileageEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing mileage entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list entries"})
		return
	}
	if entries == nil {
		entries = []models.MileageEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

type maintenanceRequest struct {
	Date    time.Time `json:"date" binding:"required"`
	Type    string    `json:"type" binding:"required"`
	Mileage float64   `json:"mileage" binding:"required"`
	Notes   string    `json:"notes"`
}

// AddMaintenance records a service event for a vehicle.
func (h *VehicleHandler) AddMaintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid maintenance payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	event := models.MaintenanceEvent{
		VehicleID: c.Param("id"),
		Date:      req.Date,
		Type:      req.Type,
		Mileage:   req.Mileage,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	if err := h.repo.InsertMaintenanceEvent(c.Request.Context(), event); err != nil {
		h.logger.Error("failed storing maintenance event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListMaintenance returns the service history for a vehicle, oldest first.
func (h *VehicleHandler) ListMaintenance(c *gin.Context) {
	events, err := h.repo.ListMaintenanceEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing maintenance events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	if events == nil {
		events = []models.MaintenanceEvent{}
	}
	c.JSON(http.StatusOK, events)
}

// Summary returns the computed maintenance outlook for a vehicle. An optional
// interval query parameter overrides the configured oil-change interval.
func (h *VehicleHandler) Summary(c *gin.Context) {
	var interval float64
	if raw := c.Query("interval"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "interval must be a positive number"})
			return
		}
		interval = parsed
	}

	summary, err := h.reportingSvc.BuildSummary(c.Request.Context(), c.Param("id"), interval)
	if err != nil {
		h.logger.Error("failed building summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
