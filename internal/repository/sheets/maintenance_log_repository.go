package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mbodji/autodiag/internal/config"
	"github.com/mbodji/autodiag/internal/domain/models"
)

const summaryRange = "MaintenanceLog!A:H"

// Exporter appends maintenance summaries to the workshop's shared spreadsheet.
type Exporter interface {
	AppendSummary(ctx context.Context, summary models.MaintenanceSummary) error
}

// MaintenanceLogRepository implements Exporter using the official Google
// Sheets API.
type MaintenanceLogRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewMaintenanceLogRepository builds a Google Sheets backed exporter instance.
func NewMaintenanceLogRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &MaintenanceLogRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSummary appends one summary as a spreadsheet row.
func (r *MaintenanceLogRepository) AppendSummary(ctx context.Context, summary models.MaintenanceSummary) error {
	row := []interface{}{
		summary.GeneratedAt.Format("2006-01-02 15:04"),
		summary.VehicleID,
		summary.CurrentMileage,
		summary.WeeklyAverage,
		floatCell(summary.MilesRemaining),
		floatCell(summary.DaysRemaining),
		summary.MilesRemText,
		summary.DaysRemText,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, summaryRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row for %s: %w", summary.VehicleID, err)
	}

	r.logger.Debug("summary appended to sheet", zap.String("vehicle_id", summary.VehicleID))
	return nil
}

// floatCell renders a nullable number for the spreadsheet; missing values
// become an empty cell instead of a misleading zero.
func floatCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
