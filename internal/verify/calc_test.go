package verify

import (
	"strings"
	"testing"

	"github.com/hilldrive/invoice-engine/internal/booking"
)

func TestCalculationsGoldenBooking(t *testing.T) {
	rec := booking.NewRecord()
	rec.BaseRent = booking.Ptr(16200.0)
	rec.ExtraKM = booking.Ptr(551.0)
	rec.ExtraKMRate = booking.Ptr(8.0)
	rec.ExtraKMCharge = booking.Ptr(4408.0)
	rec.TotalAmount = booking.Ptr(20608.0)

	Calculations(rec)

	if !rec.CalculationVerified {
		t.Fatalf("16200+4408=20608 must verify, notes=%v", rec.Notes)
	}
	if rec.Notes != nil {
		t.Fatalf("no notes expected, got %q", *rec.Notes)
	}
}

func TestCalculationsDerivesExtraKMCharge(t *testing.T) {
	rec := booking.NewRecord()
	rec.ExtraKM = booking.Ptr(100.0)
	rec.ExtraKMRate = booking.Ptr(8.0)

	Calculations(rec)

	if rec.ExtraKMCharge == nil || *rec.ExtraKMCharge != 800 {
		t.Fatalf("extra_km_charge: got %v, want 800", rec.ExtraKMCharge)
	}
}

func TestCalculationsKeepsStatedExtraKMCharge(t *testing.T) {
	rec := booking.NewRecord()
	rec.ExtraKM = booking.Ptr(100.0)
	rec.ExtraKMRate = booking.Ptr(8.0)
	rec.ExtraKMCharge = booking.Ptr(900.0) // disagrees with 100*8 by 100

	Calculations(rec)

	if *rec.ExtraKMCharge != 900 {
		t.Fatalf("stated charge must never be overwritten, got %v", *rec.ExtraKMCharge)
	}
	if rec.Notes == nil || !strings.Contains(*rec.Notes, "Extra KM: Expected 800, Found 900") {
		t.Fatalf("mismatch note missing, notes=%v", rec.Notes)
	}
}

func TestCalculationsExtraKMWithinTolerance(t *testing.T) {
	rec := booking.NewRecord()
	rec.ExtraKM = booking.Ptr(100.0)
	rec.ExtraKMRate = booking.Ptr(8.0)
	rec.ExtraKMCharge = booking.Ptr(804.0) // off by 4, inside the 5-unit tolerance

	Calculations(rec)

	if rec.Notes != nil {
		t.Fatalf("within-tolerance mismatch must not be noted, got %q", *rec.Notes)
	}
}

func TestCalculationsTotalToleranceBoundary(t *testing.T) {
	cases := []struct {
		name     string
		total    float64
		verified bool
	}{
		{"exact", 20608, true},
		{"off by ten", 20618, true},
		{"off by eleven", 20619, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := booking.NewRecord()
			rec.BaseRent = booking.Ptr(16200.0)
			rec.ExtraKMCharge = booking.Ptr(4408.0)
			rec.TotalAmount = booking.Ptr(c.total)

			Calculations(rec)

			if rec.CalculationVerified != c.verified {
				t.Fatalf("verified = %v, want %v", rec.CalculationVerified, c.verified)
			}
			if !c.verified && (rec.Notes == nil || !strings.Contains(*rec.Notes, "Total: Expected")) {
				t.Fatalf("total mismatch note missing, notes=%v", rec.Notes)
			}
		})
	}
}

func TestCalculationsTotalIncludesAllComponents(t *testing.T) {
	rec := booking.NewRecord()
	rec.BaseRent = booking.Ptr(10000.0)
	rec.ExtraKMCharge = booking.Ptr(500.0)
	rec.ExtraHourCharge = booking.Ptr(300.0)
	rec.DriverAllowance = booking.Ptr(1200.0)
	rec.TotalAmount = booking.Ptr(12000.0)

	Calculations(rec)

	if !rec.CalculationVerified {
		t.Fatalf("10000+500+300+1200=12000 must verify, notes=%v", rec.Notes)
	}
}

func TestCalculationsSkipsWithoutAnchors(t *testing.T) {
	rec := booking.NewRecord()
	rec.TotalAmount = booking.Ptr(5000.0) // no base_rent

	Calculations(rec)

	if rec.CalculationVerified {
		t.Fatalf("verification without base_rent must stay false")
	}
	if rec.Notes != nil {
		t.Fatalf("no notes expected, got %q", *rec.Notes)
	}
}
