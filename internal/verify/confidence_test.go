package verify

import (
	"testing"

	"github.com/hilldrive/invoice-engine/internal/booking"
)

func fullAnchorRecord() *booking.Record {
	rec := booking.NewRecord()
	rec.CustomerName = booking.Ptr("Sharma Logistics Pvt Ltd")
	rec.MobileNumber = booking.Ptr("8889302969")
	rec.VehicleName = booking.Ptr("Innova Crysta")
	rec.StartDatetime = booking.Ptr("2026-01-25 07:00")
	rec.EndDatetime = booking.Ptr("2026-01-31 07:00")
	rec.BaseRent = booking.Ptr(16200.0)
	rec.TotalAmount = booking.Ptr(20608.0)
	return rec
}

func TestScore(t *testing.T) {
	rec := fullAnchorRecord()
	if got := Score(rec); got != 100 {
		t.Fatalf("full record score = %d, want 100", got)
	}

	if got := Score(booking.NewRecord()); got != 0 {
		t.Fatalf("empty record score = %d, want 0", got)
	}
}

func TestScoreIgnoresNonAnchorFields(t *testing.T) {
	rec := booking.NewRecord()
	rec.Address = booking.Ptr("Plot No 12 Industrial Area, Jaipur, 302013")
	rec.SecurityDeposit = booking.Ptr(5000.0)
	rec.FuelIncluded = booking.Ptr(false)

	if got := Score(rec); got != 0 {
		t.Fatalf("non-anchor fields must not score, got %d", got)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  booking.Confidence
	}{
		{100, booking.ConfidenceHigh},
		{80, booking.ConfidenceHigh},
		{79, booking.ConfidenceMedium},
		{50, booking.ConfidenceMedium},
		{49, booking.ConfidenceLow},
		{0, booking.ConfidenceLow},
	}
	for _, c := range cases {
		if got := Tier(c.score); got != c.want {
			t.Fatalf("Tier(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestConfidenceRecomputesFromScratch(t *testing.T) {
	rec := fullAnchorRecord()
	Confidence(rec)
	if rec.ExtractionConfidence != booking.ConfidenceHigh {
		t.Fatalf("full record tier = %q, want high", rec.ExtractionConfidence)
	}

	// Dropping both period anchors leaves 70: the tier must fall with it, not
	// stick at the previous value.
	rec.StartDatetime = nil
	rec.EndDatetime = nil
	Confidence(rec)
	if rec.ExtractionConfidence != booking.ConfidenceMedium {
		t.Fatalf("tier after losing anchors = %q, want medium", rec.ExtractionConfidence)
	}
}
