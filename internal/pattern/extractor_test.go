package pattern

import (
	"testing"
)

const bookingOCRText = `Hill Drive Rentals
Plot No 12 Industrial Area, Jaipur, 302013
GSTIN: 08ABCDE1234F1Z5
Bill To: sharma logistics pvt ltd
`

const bookingUserText = `Cat type - Innova Crysta (RJ14AB1234)
Mobile - 8889302969
Rent :-₹16200
Extra km charged:-551×8:-4408
Total:-20608
Duration -6 days
Start date and time - 25/01/2026 7am to 31/01/2026 7am
Fuel & Toll:-exclude
`

func TestExtractBookingMessage(t *testing.T) {
	rec := NewExtractor(nil).Extract(bookingOCRText, bookingUserText)

	strCases := []struct {
		field string
		got   *string
		want  string
	}{
		{"customer_name", rec.CustomerName, "Sharma Logistics Pvt Ltd"},
		{"company_name", rec.CompanyName, "Sharma Logistics Pvt Ltd"},
		{"mobile_number", rec.MobileNumber, "8889302969"},
		{"tax_id", rec.TaxID, "08ABCDE1234F1Z5"},
		{"address", rec.Address, "Plot No 12 Industrial Area, Jaipur, 302013"},
		{"vehicle_name", rec.VehicleName, "Innova Crysta"},
		{"vehicle_number", rec.VehicleNumber, "RJ14AB1234"},
		{"start_datetime", rec.StartDatetime, "2026-01-25 07:00"},
		{"end_datetime", rec.EndDatetime, "2026-01-31 07:00"},
	}
	for _, c := range strCases {
		if c.got == nil {
			t.Fatalf("%s: got nil, want %q", c.field, c.want)
		}
		if *c.got != c.want {
			t.Fatalf("%s: got %q, want %q", c.field, *c.got, c.want)
		}
	}

	numCases := []struct {
		field string
		got   *float64
		want  float64
	}{
		{"base_rent", rec.BaseRent, 16200},
		{"extra_km", rec.ExtraKM, 551},
		{"extra_km_rate", rec.ExtraKMRate, 8},
		{"extra_km_charge", rec.ExtraKMCharge, 4408},
		{"total_amount", rec.TotalAmount, 20608},
	}
	for _, c := range numCases {
		if c.got == nil {
			t.Fatalf("%s: got nil, want %v", c.field, c.want)
		}
		if *c.got != c.want {
			t.Fatalf("%s: got %v, want %v", c.field, *c.got, c.want)
		}
	}

	if rec.DurationDays == nil || *rec.DurationDays != 6 {
		t.Fatalf("duration_days: got %v, want 6", rec.DurationDays)
	}
	if rec.FuelIncluded == nil || *rec.FuelIncluded {
		t.Fatalf("fuel_included: got %v, want false", rec.FuelIncluded)
	}
	if rec.TollIncluded == nil || *rec.TollIncluded {
		t.Fatalf("toll_included: got %v, want false", rec.TollIncluded)
	}
}

func TestExtractEmptyText(t *testing.T) {
	rec := NewExtractor(nil).Extract("", "")

	if rec.CustomerName != nil || rec.MobileNumber != nil || rec.VehicleName != nil {
		t.Fatalf("empty input must leave identity fields nil, got %+v", rec)
	}
	if rec.BaseRent != nil || rec.TotalAmount != nil {
		t.Fatalf("empty input must leave pricing fields nil")
	}
	if rec.StartDatetime != nil || rec.DurationDays != nil {
		t.Fatalf("empty input must leave period fields nil")
	}
}

func TestExtractMobileNumber(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"labeled", "Cx no: 9876543210", "9876543210"},
		{"labeled with dash", "Mobile - 8889302969", "8889302969"},
		{"bare ten digits", "reach him at 9000000001 anytime", "9000000001"},
		{"labeled wins over bare", "id 1234567890\nPhone: 9876543210", "9876543210"},
	}
	e := NewExtractor(nil)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := e.Extract("", c.text)
			if rec.MobileNumber == nil {
				t.Fatalf("got nil, want %q", c.want)
			}
			if *rec.MobileNumber != c.want {
				t.Fatalf("got %q, want %q", *rec.MobileNumber, c.want)
			}
		})
	}
}

func TestExtractAddressRejectsShortMatch(t *testing.T) {
	// City plus pincode alone is too short to be a usable address.
	rec := NewExtractor(nil).Extract("Address: Kota 324001\n", "")
	if rec.Address != nil {
		t.Fatalf("short address must be rejected, got %q", *rec.Address)
	}
}

func TestExtractAddressTruncatesAfterPincode(t *testing.T) {
	text := "Office: 4th Floor Tower B Cyber City Jaipur 302013 landmark opposite metro\n"
	rec := NewExtractor(nil).Extract(text, "")
	if rec.Address == nil {
		t.Fatalf("address: got nil")
	}
	if got := *rec.Address; got != "4th Floor Tower B Cyber City Jaipur 302013" {
		t.Fatalf("address: got %q", got)
	}
}

func TestExtractVehicleStripsPlate(t *testing.T) {
	rec := NewExtractor(nil).Extract("", "Vehicle - swift dzire (rj45cd6789)\nRunning km - 1400")
	if rec.VehicleName == nil || *rec.VehicleName != "Swift Dzire" {
		t.Fatalf("vehicle_name: got %v, want Swift Dzire", rec.VehicleName)
	}
	if rec.VehicleNumber == nil || *rec.VehicleNumber != "RJ45CD6789" {
		t.Fatalf("vehicle_number: got %v, want RJ45CD6789", rec.VehicleNumber)
	}
	if rec.IncludedKM == nil || *rec.IncludedKM != 1400 {
		t.Fatalf("included_km: got %v, want 1400", rec.IncludedKM)
	}
}

func TestExtractPricingAmounts(t *testing.T) {
	text := "Rent: rs. 12,500.50\nSecurity - 5000\nOnline received: 2000\nPending amount: 10500\nPickup drop charges - 750\n"
	rec := NewExtractor(nil).Extract("", text)

	cases := []struct {
		field string
		got   *float64
		want  float64
	}{
		{"base_rent", rec.BaseRent, 12500.50},
		{"security_deposit", rec.SecurityDeposit, 5000},
		{"advance_paid", rec.AdvancePaid, 2000},
		{"balance_due", rec.BalanceDue, 10500},
		{"pickup_drop_charges", rec.PickupDropCharges, 750},
	}
	for _, c := range cases {
		if c.got == nil {
			t.Fatalf("%s: got nil, want %v", c.field, c.want)
		}
		if *c.got != c.want {
			t.Fatalf("%s: got %v, want %v", c.field, *c.got, c.want)
		}
	}
}

func TestExtractRatesWithoutTriple(t *testing.T) {
	rec := NewExtractor(nil).Extract("", "Extra km rate 12/km\nExtra hour rate 150/hour\n")
	if rec.ExtraKMRate == nil || *rec.ExtraKMRate != 12 {
		t.Fatalf("extra_km_rate: got %v, want 12", rec.ExtraKMRate)
	}
	if rec.ExtraHourRate == nil || *rec.ExtraHourRate != 150 {
		t.Fatalf("extra_hour_rate: got %v, want 150", rec.ExtraHourRate)
	}
	if rec.ExtraKMCharge != nil {
		t.Fatalf("extra_km_charge must stay nil without a stated charge")
	}
}

func TestExtractFlags(t *testing.T) {
	cases := []struct {
		name string
		text string
		fuel *bool
		toll *bool
	}{
		{"both excluded shorthand", "Fuel & Toll:-exclude", boolPtr(false), boolPtr(false)},
		{"fuel included", "booking with fuel included", boolPtr(true), nil},
		{"toll included", "toll included in rent", nil, boolPtr(true)},
		{"unknown stays nil", "plain booking text", nil, nil},
	}
	e := NewExtractor(nil)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := e.Extract("", c.text)
			checkFlag(t, "fuel_included", rec.FuelIncluded, c.fuel)
			checkFlag(t, "toll_included", rec.TollIncluded, c.toll)
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func checkFlag(t *testing.T, field string, got, want *bool) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("%s: got %v, want nil", field, *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("%s: got nil, want %v", field, *want)
	}
	if *got != *want {
		t.Fatalf("%s: got %v, want %v", field, *got, *want)
	}
}

func TestCleanValue(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  sharma   travels  ", "sharma travels"},
		{"innova crysta:-", "innova crysta"},
		{"name -", "name"},
	}
	for _, c := range cases {
		if got := cleanValue(c.in); got != c.want {
			t.Fatalf("cleanValue(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"16200", 16200, true},
		{"12,500.50", 12500.50, true},
		{" 4408 ", 4408, true},
		{"abc", 0, false},
		{"-5", 0, false},
	}
	for _, c := range cases {
		got, ok := parseAmount(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("parseAmount(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
