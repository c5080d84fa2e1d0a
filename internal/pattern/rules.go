package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// Each field group keeps an ordered list of candidate patterns. Evaluation is
// first-match-wins: once a pattern in the list matches, the rest of the list
// is skipped for that field. All patterns are compiled case-insensitive.

var (
	// identity
	reCustomerName = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:cx\s*name|customer\s*name|name)[:\s-]+([^\n]+)`),
		regexp.MustCompile(`(?i)bill\s*to:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)company[:\s]+([^\n]+)`),
	}
	reTaxID  = regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]\b`)
	reMobile = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:cx\s*no|mobile|mob|ph|phone|contact)[:\s-]*(\d{10})`),
		regexp.MustCompile(`\b(\d{10})\b`),
	}
	// Address patterns are ordered most-specific first; all require a 6-digit
	// postal code. The capture is truncated right after the code and rejected
	// when shorter than 21 characters.
	reAddress = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(plot\s+no\s+\d+[^,\n]+,[^,\n]+,\s*\d{6})`),
		regexp.MustCompile(`(?is)(plot\s+no\s+\d+.+?\d{6})`),
		regexp.MustCompile(`(?i)(?:office|address)[:\s]*([^\n]+\d{6})`),
		regexp.MustCompile(`(?i)([^\n]*(?:rajasthan|delhi|mumbai|bangalore|jaipur)[^\n]*\d{6})`),
	}
	rePincode = regexp.MustCompile(`\d{6}`)

	// vehicle
	reVehicleName = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:cat\s*type|vehicle|car)[:\s-]*([^\n(]+)`),
		regexp.MustCompile(`(?i)(?:vehicle|car)[:\s-]*([^\n]+)`),
	}
	rePlate       = regexp.MustCompile(`(?i)\(([A-Za-z]{2}\d{2}[A-Za-z]{2}\d{4})\)`)
	reParenthetic = regexp.MustCompile(`\([^)]*\)`)
	reRunningKM   = regexp.MustCompile(`(?i)running\s*km[:\s-]*(\d+)`)

	// pricing
	reBaseRent = []*regexp.Regexp{
		regexp.MustCompile(`(?i)rent[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)base\s*rent[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
	}
	reSecurity = regexp.MustCompile(`(?i)security[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)
	reTotal    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)total\s*amount[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
	}
	reAdvance = []*regexp.Regexp{
		regexp.MustCompile(`(?i)online\s*received[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(?:advance|paid)[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
	}
	rePending    = regexp.MustCompile(`(?i)pending\s*amount[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)
	rePickupDrop = regexp.MustCompile(`(?i)pickup[\s/]*drop\s*charges?[:\s-]*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)

	// "551×8:-4408" style triple: km, rate and stated charge in one phrase.
	// All three numbers are taken as-is; arithmetic is the verifier's job.
	reExtraKMTriple   = regexp.MustCompile(`(?i)(?:extra\s*km[^:\n]*)?(\d+)\s*[×x]\s*(\d+)[:\s=\-]*(\d+)`)
	reExtraKMRate     = regexp.MustCompile(`(?i)extra\s*km[^0-9]*(\d+)[/\s]*km`)
	reExtraHourRate   = regexp.MustCompile(`(?i)extra\s*hour[^0-9]*(\d+)[/\s]*hour`)
	reCollapseSpace   = regexp.MustCompile(`\s+`)
	reTrailingPunct   = regexp.MustCompile(`[:\-]+$`)
	reGroupSeparators = strings.NewReplacer(",", "")
)

// firstMatch evaluates an ordered pattern list against text and returns the
// submatches of the first pattern that hits.
func firstMatch(patterns []*regexp.Regexp, text string) ([]string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m, true
		}
	}
	return nil, false
}

// cleanValue collapses internal whitespace and strips trailing punctuation
// from a captured value.
func cleanValue(s string) string {
	s = reCollapseSpace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = reTrailingPunct.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// parseAmount converts a captured currency amount, stripping grouping
// separators first.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(reGroupSeparators.Replace(strings.TrimSpace(s)), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
