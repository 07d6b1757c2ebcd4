package models

// OdometerReading mirrors the odometer payload returned by the vehicle-data
// API. Mileage arrives as a string because some head units report it that way.
type OdometerReading struct {
	VehicleID string `json:"vehicle_id"`
	Timestamp string `json:"timestamp"`
	Mileage   string `json:"mileage"`
	Unit      string `json:"unit"`
}

// ElectricalSnapshot mirrors the charging-system payload from the vehicle-data
// API. Voltage is string typed upstream and parsed leniently on our side.
type ElectricalSnapshot struct {
	VehicleID   string `json:"vehicle_id"`
	Timestamp   string `json:"timestamp"`
	Voltage     string `json:"voltage"`
	Headlights  bool   `json:"headlights"`
	Blower      bool   `json:"blower"`
	RearDefrost bool   `json:"rear_defrost"`
}
