package diagnosis

import (
	"math"
	"testing"

	"github.com/mbodji/autodiag/internal/domain/models"
)

var fullLoad = models.LoadContext{Headlights: true, Blower: true, RearDefrost: true}

func TestClassifyCharging_Boundaries(t *testing.T) {
	tests := []struct {
		voltage float64
		want    models.ChargingStatus
	}{
		{14.8, models.ChargingHigh},
		{15.2, models.ChargingHigh},
		{14.7999, models.ChargingOK},
		{13.2, models.ChargingOK},
		{14.0, models.ChargingOK},
		{13.1999, models.ChargingLow},
		{12.1, models.ChargingLow},
		{0, models.ChargingLow},
		{-1, models.ChargingLow},
	}
	for _, tt := range tests {
		got := ClassifyCharging(tt.voltage, fullLoad)
		if got != tt.want {
			t.Errorf("ClassifyCharging(%v) = %s, want %s", tt.voltage, got, tt.want)
		}
	}
}

func TestClassifyCharging_PartialLoadIsUnknown(t *testing.T) {
	contexts := []models.LoadContext{
		{},
		{Headlights: true},
		{Blower: true},
		{RearDefrost: true},
		{Headlights: true, Blower: true},
		{Headlights: true, RearDefrost: true},
		{Blower: true, RearDefrost: true},
	}
	for _, load := range contexts {
		for _, v := range []float64{12.0, 13.2, 14.0, 14.8, 15.5} {
			if got := ClassifyCharging(v, load); got != models.ChargingUnknown {
				t.Errorf("ClassifyCharging(%v, %+v) = %s, want UNKNOWN", v, load, got)
			}
		}
	}
}

func TestClassifyCharging_NonFiniteIsUnknown(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := ClassifyCharging(v, fullLoad); got != models.ChargingUnknown {
			t.Errorf("ClassifyCharging(%v) = %s, want UNKNOWN", v, got)
		}
	}
}

func TestClassifyMeasurement_MissingVoltage(t *testing.T) {
	m := models.ChargingMeasurement{Voltage: nil, Load: fullLoad}
	if got := ClassifyMeasurement(m); got != models.ChargingUnknown {
		t.Errorf("missing voltage classified as %s, want UNKNOWN", got)
	}

	v := 14.2
	m.Voltage = &v
	if got := ClassifyMeasurement(m); got != models.ChargingOK {
		t.Errorf("14.2V under full load classified as %s, want OK", got)
	}
}

func TestParseVoltage(t *testing.T) {
	if got := ParseVoltage(" 13.8 "); got != 13.8 {
		t.Errorf("ParseVoltage(\" 13.8 \") = %v, want 13.8", got)
	}
	for _, raw := range []string{"", "abc", "13,8", "--"} {
		if got := ParseVoltage(raw); !math.IsNaN(got) {
			t.Errorf("ParseVoltage(%q) = %v, want NaN", raw, got)
		}
	}
	if got := ClassifyCharging(ParseVoltage("nope"), fullLoad); got != models.ChargingUnknown {
		t.Errorf("unparseable voltage classified as %s, want UNKNOWN", got)
	}
}

func TestExceptionEligibility(t *testing.T) {
	ex := ExceptionEligibility("strong")
	if !ex.Eligible {
		t.Fatal("strength strong should be eligible")
	}
	if len(ex.AllowedDependents) != 1 || ex.AllowedDependents[0] != "battery" {
		t.Fatalf("allowed dependents = %v, want exactly [battery]", ex.AllowedDependents)
	}
	if len(ex.Notes) == 0 {
		t.Error("eligible result should carry explanatory notes")
	}

	for _, strength := range []string{"", "weak", "moderate", "STRONG", "Strong"} {
		ex := ExceptionEligibility(strength)
		if ex.Eligible {
			t.Errorf("strength %q should be ineligible", strength)
		}
		if len(ex.AllowedDependents) != 0 {
			t.Errorf("strength %q allowed dependents = %v, want empty", strength, ex.AllowedDependents)
		}
	}
}
