package telematics

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mbodji/autodiag/internal/config"
	"github.com/mbodji/autodiag/internal/domain/models"
)

// Client exposes the vehicle-data API operations used by the application.
type Client interface {
	LatestOdometer(ctx context.Context, vehicleID string) (*models.OdometerReading, error)
	LatestElectrical(ctx context.Context, vehicleID string) (*models.ElectricalSnapshot, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a vehicle-data API client using the provided configuration values.
func NewClient(cfg config.TelematicsConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIToken)).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// apiError represents a vehicle-data API error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// LatestOdometer fetches the most recent odometer reading for a vehicle.
func (c *APIClient) LatestOdometer(ctx context.Context, vehicleID string) (*models.OdometerReading, error) {
	result := new(models.OdometerReading)
	if err := c.get(ctx, fmt.Sprintf("/v1/vehicles/%s/odometer/latest", vehicleID), result); err != nil {
		return nil, fmt.Errorf("fetch odometer for %s: %w", vehicleID, err)
	}
	return result, nil
}

// LatestElectrical fetches the most recent charging-system snapshot for a vehicle.
func (c *APIClient) LatestElectrical(ctx context.Context, vehicleID string) (*models.ElectricalSnapshot, error) {
	result := new(models.ElectricalSnapshot)
	if err := c.get(ctx, fmt.Sprintf("/v1/vehicles/%s/electrical/latest", vehicleID), result); err != nil {
		return nil, fmt.Errorf("fetch electrical snapshot for %s: %w", vehicleID, err)
	}
	return result, nil
}

func (c *APIClient) get(ctx context.Context, path string, result interface{}) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return err
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error.Message
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("vehicle-data api error %d: %s", code, message)
	}

	return nil
}
