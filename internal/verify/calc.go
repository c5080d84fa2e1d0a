// Package verify cross-checks arithmetic relationships on a populated booking
// record and scores its completeness.
package verify

import (
	"fmt"
	"math"

	"github.com/hilldrive/invoice-engine/internal/booking"
)

// Fixed policy tolerances, in the same currency unit as the monetary fields.
// Preserved as-is from the billing rules; no rationale is recorded for the
// exact values.
const (
	ExtraKMTolerance = 5.0
	TotalTolerance   = 10.0
)

// Calculations derives missing charge fields and flags soft-mismatches.
// Stated values are never overwritten by derived ones; disagreements beyond
// tolerance are appended to the record's notes instead.
func Calculations(rec *booking.Record) {
	verifyExtraKM(rec)
	verifyTotal(rec)
}

func verifyExtraKM(rec *booking.Record) {
	if rec.ExtraKM == nil || rec.ExtraKMRate == nil {
		return
	}
	derived := *rec.ExtraKM * *rec.ExtraKMRate
	if rec.ExtraKMCharge == nil {
		rec.ExtraKMCharge = &derived
		return
	}
	if math.Abs(derived-*rec.ExtraKMCharge) > ExtraKMTolerance {
		rec.AppendNote(fmt.Sprintf("Extra KM: Expected %g, Found %g", derived, *rec.ExtraKMCharge))
	}
}

func verifyTotal(rec *booking.Record) {
	if rec.BaseRent == nil || rec.TotalAmount == nil {
		return
	}
	expected := *rec.BaseRent
	if rec.ExtraKMCharge != nil {
		expected += *rec.ExtraKMCharge
	}
	if rec.ExtraHourCharge != nil {
		expected += *rec.ExtraHourCharge
	}
	if rec.DriverAllowance != nil {
		expected += *rec.DriverAllowance
	}

	if math.Abs(expected-*rec.TotalAmount) <= TotalTolerance {
		rec.CalculationVerified = true
		return
	}
	rec.CalculationVerified = false
	rec.AppendNote(fmt.Sprintf("Total: Expected %g, Found %g", expected, *rec.TotalAmount))
}
