package models

import "time"

// MaintenanceSummary is the computed maintenance outlook for a vehicle at a
// point in time. Nullable numbers are pointers so the API can return JSON null
// when history is missing, mirroring the sentinel contract of the calculators.
type MaintenanceSummary struct {
	VehicleID       string    `bson:"vehicle_id" json:"vehicle_id"`
	GeneratedAt     time.Time `bson:"generated_at" json:"generated_at"`
	CurrentMileage  float64   `bson:"current_mileage" json:"current_mileage"`
	WeeklyAverage   float64   `bson:"weekly_average" json:"weekly_average"`
	MilesRemaining  *float64  `bson:"miles_remaining" json:"miles_remaining"`
	DaysRemaining   *float64  `bson:"days_remaining" json:"days_remaining"`
	MilesRemText    string    `bson:"miles_rem_text" json:"miles_rem_text"`
	DaysRemText     string    `bson:"days_rem_text" json:"days_rem_text"`
	IntervalApplied float64   `bson:"interval_applied" json:"interval_applied"`
}
