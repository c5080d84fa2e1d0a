// Package pattern implements the dependency-free fallback extractor: ordered
// regex rule tables per field group over the combined OCR and user text.
package pattern

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hilldrive/invoice-engine/internal/booking"
)

// Extractor populates a booking record from raw text. It holds no state
// between calls and cannot fail: fields that no pattern matches stay nil.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

var titleCaser = cases.Title(language.Und)

// Extract runs every field group in fixed order against the concatenation of
// ocrText and userText (OCR first) and returns a fresh record. Groups are
// write-once: a group never overwrites a field populated earlier.
func (e *Extractor) Extract(ocrText, userText string) *booking.Record {
	rec := booking.NewRecord()
	combined := ocrText + "\n" + userText

	e.extractIdentity(combined, rec)
	e.extractVehicle(combined, rec)
	e.extractPeriod(combined, rec)
	e.extractPricing(combined, rec)
	e.extractFlags(combined, rec)

	e.logger.Debug("pattern.extract.done",
		"ocr_bytes", len(ocrText),
		"user_bytes", len(userText),
	)
	return rec
}

func (e *Extractor) extractIdentity(text string, rec *booking.Record) {
	if m, ok := firstMatch(reCustomerName, text); ok && rec.CustomerName == nil {
		name := titleCaser.String(cleanValue(m[1]))
		rec.CustomerName = &name
		if rec.CompanyName == nil {
			company := name
			rec.CompanyName = &company
		}
	}
	if m := reTaxID.FindString(text); m != "" && rec.TaxID == nil {
		rec.TaxID = &m
	}
	if m, ok := firstMatch(reMobile, text); ok && rec.MobileNumber == nil {
		rec.MobileNumber = &m[1]
	}
	if rec.Address == nil {
		if addr, ok := extractAddress(text); ok {
			rec.Address = &addr
		}
	}
}

// extractAddress walks the prioritized address patterns, truncates the match
// right after the 6-digit postal code, and rejects anything 20 characters or
// shorter.
func extractAddress(text string) (string, bool) {
	for _, re := range reAddress {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		addr := m[1]
		if loc := rePincode.FindStringIndex(addr); loc != nil {
			addr = addr[:loc[1]]
		}
		addr = reCollapseSpace.ReplaceAllString(addr, " ")
		addr = strings.Trim(addr, ".,;: ")
		if rePincode.MatchString(addr) && len(addr) > 20 {
			return addr, true
		}
	}
	return "", false
}

func (e *Extractor) extractVehicle(text string, rec *booking.Record) {
	if m, ok := firstMatch(reVehicleName, text); ok && rec.VehicleName == nil {
		// Trailing parentheticals carry the registration plate, which is
		// extracted separately below.
		name := reParenthetic.ReplaceAllString(m[1], "")
		name = titleCaser.String(cleanValue(name))
		if name != "" {
			rec.VehicleName = &name
		}
	}
	if m := rePlate.FindStringSubmatch(text); m != nil && rec.VehicleNumber == nil {
		plate := strings.ToUpper(m[1])
		rec.VehicleNumber = &plate
	}
	if m := reRunningKM.FindStringSubmatch(text); m != nil && rec.IncludedKM == nil {
		if km, ok := parseInt(m[1]); ok {
			rec.IncludedKM = &km
		}
	}
}

func (e *Extractor) extractPeriod(text string, rec *booking.Record) {
	p, ok := parsePeriod(text)
	if !ok {
		return
	}
	if p.start != "" && rec.StartDatetime == nil {
		rec.StartDatetime = &p.start
	}
	if p.end != "" && rec.EndDatetime == nil {
		rec.EndDatetime = &p.end
	}
	if p.duration > 0 && rec.DurationDays == nil {
		rec.DurationDays = &p.duration
	}
}

func (e *Extractor) extractPricing(text string, rec *booking.Record) {
	setAmount := func(dst **float64, m []string, ok bool) {
		if !ok || *dst != nil {
			return
		}
		if v, good := parseAmount(m[1]); good {
			*dst = &v
		}
	}

	m, ok := firstMatch(reBaseRent, text)
	setAmount(&rec.BaseRent, m, ok)

	sm := reSecurity.FindStringSubmatch(text)
	setAmount(&rec.SecurityDeposit, sm, sm != nil)

	m, ok = firstMatch(reTotal, text)
	setAmount(&rec.TotalAmount, m, ok)

	m, ok = firstMatch(reAdvance, text)
	setAmount(&rec.AdvancePaid, m, ok)

	pm := rePending.FindStringSubmatch(text)
	setAmount(&rec.BalanceDue, pm, pm != nil)

	dm := rePickupDrop.FindStringSubmatch(text)
	setAmount(&rec.PickupDropCharges, dm, dm != nil)

	// Composite "A × B : C" triple: all three numbers are taken verbatim;
	// the verifier cross-checks the product afterwards.
	if tm := reExtraKMTriple.FindStringSubmatch(text); tm != nil {
		if rec.ExtraKM == nil {
			if v, good := parseAmount(tm[1]); good {
				rec.ExtraKM = &v
			}
		}
		if rec.ExtraKMRate == nil {
			if v, good := parseAmount(tm[2]); good {
				rec.ExtraKMRate = &v
			}
		}
		if rec.ExtraKMCharge == nil {
			if v, good := parseAmount(tm[3]); good {
				rec.ExtraKMCharge = &v
			}
		}
	}
	if rec.ExtraKMRate == nil {
		if rm := reExtraKMRate.FindStringSubmatch(text); rm != nil {
			if v, good := parseAmount(rm[1]); good {
				rec.ExtraKMRate = &v
			}
		}
	}
	if rec.ExtraHourRate == nil {
		if hm := reExtraHourRate.FindStringSubmatch(text); hm != nil {
			if v, good := parseAmount(hm[1]); good {
				rec.ExtraHourRate = &v
			}
		}
	}
}

func (e *Extractor) extractFlags(text string, rec *booking.Record) {
	lower := strings.ToLower(text)
	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}

	if rec.FuelIncluded == nil {
		if contains("fuel included", "with fuel") {
			rec.FuelIncluded = booking.Ptr(true)
		} else if contains("fuel not included", "without fuel", "excluding fuel", "fuel & toll:-exclude", "fuel exclude") {
			rec.FuelIncluded = booking.Ptr(false)
		}
	}
	if rec.TollIncluded == nil {
		if contains("toll included", "with toll") {
			rec.TollIncluded = booking.Ptr(true)
		} else if contains("toll not included", "without toll", "excluding toll", "fuel & toll:-exclude", "toll exclude") {
			rec.TollIncluded = booking.Ptr(false)
		}
	}
	if rec.PickupDropExtra == nil {
		if contains("pickup drop extra", "pickup/drop charges extra") {
			rec.PickupDropExtra = booking.Ptr(true)
		} else if contains("pickup drop included", "with pickup drop") {
			rec.PickupDropExtra = booking.Ptr(false)
		}
	}
}
