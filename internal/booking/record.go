// Package booking defines the flat booking record produced by extraction.
package booking

import "strings"

// Confidence is the coarse completeness tier for an extracted record.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Record is the normalized shape every extraction strategy produces.
// Absence is a first-class state: nil means the field was never extracted,
// which is distinct from a zero value.
type Record struct {
	// Identity
	CustomerName *string `json:"customer_name"`
	CompanyName  *string `json:"company_name"`
	MobileNumber *string `json:"mobile_number"`
	Address      *string `json:"address"`
	TaxID        *string `json:"tax_id"`

	// Vehicle
	VehicleName   *string `json:"vehicle_name"`
	VehicleNumber *string `json:"vehicle_number"`
	IncludedKM    *int    `json:"included_km"`

	// Period
	StartDatetime *string `json:"start_datetime"` // "YYYY-MM-DD HH:MM"
	EndDatetime   *string `json:"end_datetime"`
	DurationDays  *int    `json:"duration_days"`

	// Pricing
	BaseRent          *float64 `json:"base_rent"`
	ExtraKM           *float64 `json:"extra_km"`
	ExtraKMRate       *float64 `json:"extra_km_rate"`
	ExtraKMCharge     *float64 `json:"extra_km_charge"`
	ExtraHours        *float64 `json:"extra_hours"`
	ExtraHourRate     *float64 `json:"extra_hour_rate"`
	ExtraHourCharge   *float64 `json:"extra_hour_charge"`
	DriverAllowance   *float64 `json:"driver_allowance"`
	PermitCharges     *float64 `json:"permit_charges"`
	ParkingCharges    *float64 `json:"parking_charges"`
	SecurityDeposit   *float64 `json:"security_deposit"`
	PickupDropCharges *float64 `json:"pickup_drop_charges"`
	OtherCharges      *float64 `json:"other_charges"`
	Subtotal          *float64 `json:"subtotal"`
	TotalAmount       *float64 `json:"total_amount"`
	AdvancePaid       *float64 `json:"advance_paid"`
	BalanceDue        *float64 `json:"balance_due"`

	// Flags (tri-state: nil = unknown)
	FuelIncluded    *bool `json:"fuel_included"`
	TollIncluded    *bool `json:"toll_included"`
	PickupDropExtra *bool `json:"pickup_drop_extra"`

	// Supplemental document fields
	PlaceOfSupply   *string `json:"place_of_supply"`
	DeliveryAddress *string `json:"delivery_address"`
	PaymentMode     *string `json:"payment_mode"`
	InvoiceNumber   *string `json:"invoice_number"`
	InvoiceDate     *string `json:"invoice_date"`

	// Metadata
	ExtractionMethod     string     `json:"extraction_method"`
	ExtractionConfidence Confidence `json:"extraction_confidence"`
	CalculationVerified  bool       `json:"calculation_verified"`
	Notes                *string    `json:"notes"`
}

// NewRecord returns an empty record at the lowest confidence tier.
func NewRecord() *Record {
	return &Record{ExtractionConfidence: ConfidenceLow}
}

// AppendNote records a soft-mismatch description. Notes accumulate with "; "
// separators and never cause extraction to fail.
func (r *Record) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if r.Notes == nil || *r.Notes == "" {
		r.Notes = &note
		return
	}
	joined := *r.Notes + "; " + note
	r.Notes = &joined
}

// Ptr returns a pointer to v. Convenience for building records in tests and
// for collaborators that assemble partial records.
func Ptr[T any](v T) *T { return &v }
