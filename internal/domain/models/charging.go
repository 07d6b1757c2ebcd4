package models

// ChargingStatus is the normalized classification of a charging-system voltage reading.
type ChargingStatus string

const (
	ChargingOK      ChargingStatus = "OK"
	ChargingLow     ChargingStatus = "LOW"
	ChargingHigh    ChargingStatus = "HIGH"
	ChargingUnknown ChargingStatus = "UNKNOWN"
)

// LoadContext captures which electrical consumers were switched on while the
// voltage was measured. A reading is only meaningful under full load.
type LoadContext struct {
	Headlights  bool `json:"headlights"`
	Blower      bool `json:"blower"`
	RearDefrost bool `json:"rear_defrost"`
}

// UnderLoad reports whether all three consumers were on simultaneously.
func (l LoadContext) UnderLoad() bool {
	return l.Headlights && l.Blower && l.RearDefrost
}

// ChargingMeasurement is a single unvalidated voltage reading plus its load
// context, as submitted by the UI or pulled from telematics. Voltage is a
// pointer so a missing field survives JSON binding and degrades to UNKNOWN.
type ChargingMeasurement struct {
	Voltage *float64    `json:"voltage"`
	Load    LoadContext `json:"load"`
}

// Exception is the one-hop measurement-exception eligibility result: a strong
// reading may directly stand in for exactly one dependent system. It reports
// eligibility only and never scores or diagnoses.
type Exception struct {
	Eligible          bool     `json:"eligible"`
	AllowedDependents []string `json:"allowed_dependents"`
	Notes             []string `json:"notes"`
}
