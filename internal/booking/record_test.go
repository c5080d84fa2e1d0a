package booking

import (
	"encoding/json"
	"testing"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord()
	if rec.ExtractionConfidence != ConfidenceLow {
		t.Fatalf("new record confidence = %q, want low", rec.ExtractionConfidence)
	}
	if rec.CalculationVerified {
		t.Fatalf("new record must start unverified")
	}
}

func TestAppendNote(t *testing.T) {
	rec := NewRecord()

	rec.AppendNote("  ")
	if rec.Notes != nil {
		t.Fatalf("blank note must be ignored")
	}

	rec.AppendNote("Extra KM: Expected 800, Found 900")
	rec.AppendNote("Total: Expected 12000, Found 11000")
	want := "Extra KM: Expected 800, Found 900; Total: Expected 12000, Found 11000"
	if rec.Notes == nil || *rec.Notes != want {
		t.Fatalf("notes = %v, want %q", rec.Notes, want)
	}
}

func TestRecordJSONKeys(t *testing.T) {
	rec := NewRecord()
	rec.CustomerName = Ptr("Ramesh Kumar")
	rec.BaseRent = Ptr(16200.0)
	rec.FuelIncluded = Ptr(false)

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m["customer_name"] != "Ramesh Kumar" {
		t.Fatalf("customer_name = %v", m["customer_name"])
	}
	if m["base_rent"] != 16200.0 {
		t.Fatalf("base_rent = %v", m["base_rent"])
	}
	if m["fuel_included"] != false {
		t.Fatalf("fuel_included = %v", m["fuel_included"])
	}
	// Absent optionals serialize as null, a first-class state.
	if v, ok := m["mobile_number"]; !ok || v != nil {
		t.Fatalf("mobile_number = %v, want explicit null", v)
	}
	if m["extraction_confidence"] != "low" {
		t.Fatalf("extraction_confidence = %v", m["extraction_confidence"])
	}
}
