package ocr

import (
	"regexp"
	"strings"
)

// Flat confidence reported for any successful parse; the API exposes no
// per-character figure.
const successConfidence = 85.0

var (
	reDateish  = regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4}\b|\b\d{1,2}(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)
	reCurrency = regexp.MustCompile(`₹|\binr\b|\brs\.?\s*\d`)
	rePhoneish = regexp.MustCompile(`\b\d{10}\b`)
	rePincodes = regexp.MustCompile(`\b\d{6}\b`)
)

// HeuristicConfidence estimates (0..1) how booking-shaped a text is from
// artifacts the extractor cares about: dates, rupee amounts, a 10-digit
// phone, a postal code. Used to decide whether recognized text is worth
// feeding to the extraction chain at all.
func HeuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reDateish.MatchString(txtL) {
		score += 0.2
	}
	if reCurrency.MatchString(txtL) {
		score += 0.15
	}
	if rePhoneish.MatchString(txtL) {
		score += 0.15
	}
	if rePincodes.MatchString(txtL) {
		score += 0.1
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
