package scheduler

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mbodji/autodiag/internal/config"
	"github.com/mbodji/autodiag/internal/domain/models"
	"github.com/mbodji/autodiag/internal/repository/mongodb"
	"github.com/mbodji/autodiag/internal/service/diagnosis"
	"github.com/mbodji/autodiag/internal/service/reporting"
	"github.com/mbodji/autodiag/pkg/clients/telematics"
)

// Scheduler manages the periodic telematics sync.
type Scheduler struct {
	cron         *cron.Cron
	repo         mongodb.Repository
	reportingSvc *reporting.Service
	client       telematics.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, repo mongodb.Repository, reportingSvc *reporting.Service, client telematics.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Sync.Timezone))
		loc = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		repo:         repo,
		reportingSvc: reportingSvc,
		client:       client,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the sync job and starts the cron loop. With telematics
// disabled there is nothing to schedule.
func (s *Scheduler) Start() {
	if !s.cfg.Telematics.Enabled() {
		s.logger.Info("telematics disabled, scheduler idle")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Sync.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Sync.CronSchedule, s.syncVehicles); err != nil {
		s.logger.Error("failed to schedule telematics sync", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) syncVehicles() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, vehicleID := range s.cfg.Telematics.VehicleIDs {
		if err := s.syncVehicle(ctx, vehicleID); err != nil {
			s.logger.Error("vehicle sync failed",
				zap.String("vehicle_id", vehicleID),
				zap.Error(err))
		}
	}
}

// syncVehicle pulls the latest odometer reading, records it, refreshes the
// maintenance summary, and logs the current charging classification.
func (s *Scheduler) syncVehicle(ctx context.Context, vehicleID string) error {
	reading, err := s.client.LatestOdometer(ctx, vehicleID)
	if err != nil {
		return err
	}

	mileage, err := strconv.ParseFloat(reading.Mileage, 64)
	if err != nil {
		s.logger.Warn("unparseable odometer value, skipping entry",
			zap.String("vehicle_id", vehicleID),
			zap.String("mileage", reading.Mileage))
	} else {
		entry := models.MileageEntry{
			VehicleID: vehicleID,
			Date:      parseTimestamp(reading.Timestamp),
			Mileage:   mileage,
			Source:    "telematics",
			CreatedAt: time.Now(),
		}
		if err := s.repo.InsertMileageEntry(ctx, entry); err != nil {
			return err
		}
	}

	if _, err := s.reportingSvc.RecordSummary(ctx, vehicleID, 0); err != nil {
		return err
	}

	snapshot, err := s.client.LatestElectrical(ctx, vehicleID)
	if err != nil {
		// The odometer sync already succeeded; a missing electrical snapshot
		// is only worth a log line.
		s.logger.Warn("electrical snapshot unavailable",
			zap.String("vehicle_id", vehicleID),
			zap.Error(err))
		return nil
	}

	status := diagnosis.ClassifyCharging(diagnosis.ParseVoltage(snapshot.Voltage), models.LoadContext{
		Headlights:  snapshot.Headlights,
		Blower:      snapshot.Blower,
		RearDefrost: snapshot.RearDefrost,
	})
	s.logger.Info("charging status",
		zap.String("vehicle_id", vehicleID),
		zap.String("status", string(status)))

	return nil
}

func parseTimestamp(raw string) time.Time {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	return time.Now()
}
