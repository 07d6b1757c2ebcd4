package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mbodji/autodiag/internal/domain/models"
	"github.com/mbodji/autodiag/internal/repository/mongodb"
	"github.com/mbodji/autodiag/internal/repository/sheets"
	"github.com/mbodji/autodiag/internal/service/maintenance"
)

// Service assembles maintenance summaries from the recorded vehicle history
// and fans them out to storage and the optional spreadsheet export.
type Service struct {
	repo     mongodb.Repository
	exporter sheets.Exporter
	interval float64
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. The exporter may be nil
// when the sheets integration is disabled; interval <= 0 selects the default
// oil-change interval.
func NewService(repo mongodb.Repository, exporter sheets.Exporter, interval float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = maintenance.DefaultOilChangeInterval
	}
	return &Service{
		repo:     repo,
		exporter: exporter,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildSummary computes the maintenance outlook for a vehicle from its stored
// history. An interval override <= 0 keeps the configured interval. Missing
// history never fails; it surfaces as null fields and "Unknown" text, which
// callers must treat as legitimate results.
func (s *Service) BuildSummary(ctx context.Context, vehicleID string, intervalOverride float64) (models.MaintenanceSummary, error) {
	interval := s.interval
	if intervalOverride > 0 {
		interval = intervalOverride
	}

	entries, err := s.repo.ListMileageEntries(ctx, vehicleID)
	if err != nil {
		return models.MaintenanceSummary{}, fmt.Errorf("load mileage history: %w", err)
	}
	events, err := s.repo.ListMaintenanceEvents(ctx, vehicleID)
	if err != nil {
		return models.MaintenanceSummary{}, fmt.Errorf("load maintenance history: %w", err)
	}

	now := s.now()

	var current float64
	for _, e := range entries {
		if e.Mileage > current {
			current = e.Mileage
		}
	}

	weeklyAvg := maintenance.WeeklyMileageAverage(entries, now)
	miles, milesOK := maintenance.MilesUntilOilChange(current, events, interval)

	var days float64
	daysOK := false
	if milesOK {
		days, daysOK = maintenance.DaysUntilOilChange(miles, weeklyAvg)
	}

	summary := models.MaintenanceSummary{
		VehicleID:       vehicleID,
		GeneratedAt:     now,
		CurrentMileage:  current,
		WeeklyAverage:   weeklyAvg,
		MilesRemText:    maintenance.FormatMilesRemaining(miles, milesOK),
		DaysRemText:     maintenance.FormatDaysRemaining(days, daysOK),
		IntervalApplied: interval,
	}
	if milesOK {
		summary.MilesRemaining = &miles
	}
	if daysOK {
		summary.DaysRemaining = &days
	}

	return summary, nil
}

// RecordSummary builds a summary, persists it, and exports it to the shared
// spreadsheet when the export is enabled. Export failures are logged rather
// than propagated; the stored summary is the source of truth.
func (s *Service) RecordSummary(ctx context.Context, vehicleID string, intervalOverride float64) (models.MaintenanceSummary, error) {
	summary, err := s.BuildSummary(ctx, vehicleID, intervalOverride)
	if err != nil {
		return models.MaintenanceSummary{}, err
	}

	if err := s.repo.SaveSummary(ctx, summary); err != nil {
		return models.MaintenanceSummary{}, fmt.Errorf("save summary: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendSummary(ctx, summary); err != nil {
			s.logger.Warn("sheet export failed",
				zap.String("vehicle_id", vehicleID),
				zap.Error(err))
		}
	}

	s.logger.Info("maintenance summary recorded",
		zap.String("vehicle_id", vehicleID),
		zap.Float64("weekly_average", summary.WeeklyAverage),
		zap.String("miles_remaining", summary.MilesRemText))

	return summary, nil
}
