package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

var moneyKeys = []string{
	"base_rent", "extra_km", "extra_km_rate", "extra_km_charge",
	"extra_hours", "extra_hour_rate", "extra_hour_charge", "driver_allowance",
	"permit_charges", "parking_charges", "security_deposit",
	"pickup_drop_charges", "other_charges", "subtotal", "total_amount",
	"advance_paid", "balance_due",
}

var intKeys = []string{"included_km", "duration_days"}

// Models occasionally answer with legacy or invented key names; map the known
// ones onto the schema before validation.
var synonymKeys = map[string]string{
	"gstin":        "tax_id",
	"phone_number": "mobile_number",
	"mobile":       "mobile_number",
	"car_name":     "vehicle_name",
	"registration": "vehicle_number",
}

// NormalizeAndSanitizeJSON makes a model response schema-friendly:
// renames known synonyms, drops nulls and empty strings, coerces numeric
// strings to numbers for amount fields, and removes unknown keys.
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)

	for from, to := range synonymKeys {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	for _, k := range moneyKeys {
		coerceNumber(m, k, &dropped)
	}
	for _, k := range intKeys {
		coerceNumber(m, k, &dropped)
	}

	// Drop null or blank strings so optionals stay absent rather than empty.
	for k, v := range maps.Clone(m) {
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	// Remove anything outside the schema (metadata keys the prompt does not
	// ask for but models volunteer anyway, like extraction_method).
	allowed := BuildBookingJSONSchema()["properties"].(map[string]any)
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// coerceNumber converts "16200", "16,200" and "₹16200" strings to numbers;
// values that cannot be parsed are dropped rather than failing validation.
func coerceNumber(m map[string]any, k string, dropped *[]string) {
	v, ok := m[k]
	if !ok {
		return
	}
	switch t := v.(type) {
	case float64:
		return
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimLeft(s, "₹")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSpace(s)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			m[k] = f
			*dropped = append(*dropped, k+"(coerced)")
			return
		}
		delete(m, k)
		*dropped = append(*dropped, k+"(unparseable)")
	case nil:
		delete(m, k)
		*dropped = append(*dropped, k+"(null)")
	default:
		delete(m, k)
		*dropped = append(*dropped, k+"(type)")
	}
}

// StripMarkdownFences removes the ```json fences models wrap responses in.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
