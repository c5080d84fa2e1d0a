package llm

import (
	"encoding/json"
	"testing"
)

func TestStripMarkdownFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		if got := StripMarkdownFences(c.in); got != c.want {
			t.Fatalf("StripMarkdownFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAndSanitizeJSON(t *testing.T) {
	raw := []byte(`{
		"gstin": "08ABCDE1234F1Z5",
		"mobile": "8889302969",
		"customer_name": "  Ramesh Kumar ",
		"base_rent": "₹16,200",
		"total_amount": 20608,
		"vehicle_name": "",
		"address": null,
		"duration_days": "6",
		"extraction_method": "llm",
		"chatter": "sure, here is the data"
	}`)

	out, dropped, err := NormalizeAndSanitizeJSON(raw, nil)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if len(dropped) == 0 {
		t.Fatalf("expected dropped/coerced entries, got none")
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("decode sanitized: %v", err)
	}

	if m["tax_id"] != "08ABCDE1234F1Z5" {
		t.Fatalf("gstin not renamed: %v", m["tax_id"])
	}
	if m["mobile_number"] != "8889302969" {
		t.Fatalf("mobile not renamed: %v", m["mobile_number"])
	}
	if m["customer_name"] != "Ramesh Kumar" {
		t.Fatalf("customer_name not trimmed: %q", m["customer_name"])
	}
	if m["base_rent"] != 16200.0 {
		t.Fatalf("base_rent not coerced: %v (%T)", m["base_rent"], m["base_rent"])
	}
	if m["duration_days"] != 6.0 {
		t.Fatalf("duration_days not coerced: %v", m["duration_days"])
	}
	for _, gone := range []string{"gstin", "mobile", "vehicle_name", "address", "extraction_method", "chatter"} {
		if _, ok := m[gone]; ok {
			t.Fatalf("key %q should have been removed", gone)
		}
	}
}

func TestNormalizeAndSanitizeJSONUnparseableAmount(t *testing.T) {
	out, _, err := NormalizeAndSanitizeJSON([]byte(`{"base_rent": "sixteen thousand"}`), nil)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("decode sanitized: %v", err)
	}
	if _, ok := m["base_rent"]; ok {
		t.Fatalf("unparseable amount must be dropped, got %v", m["base_rent"])
	}
}

func TestNormalizeAndSanitizeJSONBadInput(t *testing.T) {
	if _, _, err := NormalizeAndSanitizeJSON([]byte("not json"), nil); err == nil {
		t.Fatalf("want error for non-JSON input")
	}
}
