package models

import "time"

// MaintenanceOilChange is the event type tag used by the oil-change math.
const MaintenanceOilChange = "oil_change"

// MileageEntry is a dated odometer reading for one vehicle.
type MileageEntry struct {
	VehicleID string    `bson:"vehicle_id" json:"vehicle_id"`
	Date      time.Time `bson:"date" json:"date"`
	Mileage   float64   `bson:"mileage" json:"mileage"`
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MaintenanceEvent records a service performed on a vehicle at a given
// odometer reading.
type MaintenanceEvent struct {
	VehicleID string    `bson:"vehicle_id" json:"vehicle_id"`
	Date      time.Time `bson:"date" json:"date"`
	Type      string    `bson:"type" json:"type"`
	Mileage   float64   `bson:"mileage" json:"mileage"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
