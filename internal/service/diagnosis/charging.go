// Package diagnosis normalizes raw charging-system measurements into a
// four-valued classification. It contains no scoring, diagnosis, or safety
// logic; callers decide what a classification means.
package diagnosis

import (
	"math"
	"strconv"
	"strings"

	"github.com/mbodji/autodiag/internal/domain/models"
)

// Voltage thresholds for the charging system, measured at the battery
// terminals with headlights, blower, and rear defroster all on.
const (
	chargingHighMin = 14.8
	chargingOKMin   = 13.2
)

// StrengthStrong is the only measurement strength that allows a one-hop
// exception.
const StrengthStrong = "strong"

// ClassifyCharging maps a voltage reading to OK, LOW, HIGH, or UNKNOWN.
// Readings taken without all three loads on carry no information about the
// charging system, so any partial load context yields UNKNOWN regardless of
// the voltage. Non-finite voltages also yield UNKNOWN.
func ClassifyCharging(voltage float64, load models.LoadContext) models.ChargingStatus {
	if !load.UnderLoad() {
		return models.ChargingUnknown
	}
	if math.IsNaN(voltage) || math.IsInf(voltage, 0) {
		return models.ChargingUnknown
	}

	switch {
	case voltage >= chargingHighMin:
		return models.ChargingHigh
	case voltage >= chargingOKMin:
		return models.ChargingOK
	default:
		return models.ChargingLow
	}
}

// ClassifyMeasurement classifies a full measurement record. A missing voltage
// degrades to UNKNOWN rather than failing.
func ClassifyMeasurement(m models.ChargingMeasurement) models.ChargingStatus {
	if m.Voltage == nil {
		return models.ChargingUnknown
	}
	return ClassifyCharging(*m.Voltage, m.Load)
}

// ParseVoltage converts a string-typed voltage (telematics payloads, form
// input) into a float64. Anything unparseable comes back as NaN, which
// ClassifyCharging treats as UNKNOWN.
func ParseVoltage(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ExceptionEligibility computes one-hop measurement-exception eligibility. A
// strong charging reading may stand in for exactly one dependent system, the
// battery. Every other strength is ineligible and allows nothing.
func ExceptionEligibility(strength string) models.Exception {
	if strength != StrengthStrong {
		return models.Exception{
			Eligible:          false,
			AllowedDependents: []string{},
			Notes: []string{
				"one-hop exception requires a strong charging measurement",
			},
		}
	}

	return models.Exception{
		Eligible:          true,
		AllowedDependents: []string{"battery"},
		Notes: []string{
			"strong charging voltage under full load implies the battery is being fed correctly",
			"exception covers the battery check only; no other system may be skipped",
		},
	}
}
