package verify

import "github.com/hilldrive/invoice-engine/internal/booking"

// Anchor weights sum to 100. The score is a completeness proxy over these
// seven fields only: it says nothing about whether the extracted values are
// correct.
var anchorWeights = []struct {
	weight  int
	present func(*booking.Record) bool
}{
	{15, func(r *booking.Record) bool { return r.CustomerName != nil }},
	{15, func(r *booking.Record) bool { return r.MobileNumber != nil }},
	{10, func(r *booking.Record) bool { return r.VehicleName != nil }},
	{15, func(r *booking.Record) bool { return r.StartDatetime != nil }},
	{15, func(r *booking.Record) bool { return r.EndDatetime != nil }},
	{15, func(r *booking.Record) bool { return r.BaseRent != nil }},
	{15, func(r *booking.Record) bool { return r.TotalAmount != nil }},
}

// Score sums the weights of non-nil anchor fields.
func Score(rec *booking.Record) int {
	score := 0
	for _, a := range anchorWeights {
		if a.present(rec) {
			score += a.weight
		}
	}
	return score
}

// Tier maps a score onto the three-tier confidence label.
func Tier(score int) booking.Confidence {
	switch {
	case score >= 80:
		return booking.ConfidenceHigh
	case score >= 50:
		return booking.ConfidenceMedium
	default:
		return booking.ConfidenceLow
	}
}

// Confidence recomputes the record's tier from scratch. It is deterministic
// in the set of populated anchors and never adjusted incrementally.
func Confidence(rec *booking.Record) {
	rec.ExtractionConfidence = Tier(Score(rec))
}
