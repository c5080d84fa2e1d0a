package llm

// BuildBookingJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is sent to the extraction models as an output constraint
// and also used locally to validate whatever they return. Every field is
// optional: a partial record is a valid record.
func BuildBookingJSONSchema() map[string]any {
	props := map[string]any{
		"customer_name": stringProp(),
		"company_name":  stringProp(),
		"mobile_number": map[string]any{"type": "string", "pattern": `^\d{10}$`},
		"address":       stringProp(),
		"tax_id":        stringProp(),

		"vehicle_name":   stringProp(),
		"vehicle_number": stringProp(),
		"included_km":    map[string]any{"type": "integer", "minimum": 0},

		"start_datetime": timestampProp(),
		"end_datetime":   timestampProp(),
		"duration_days":  map[string]any{"type": "integer", "minimum": 1},

		"base_rent":           amountProp(),
		"extra_km":            amountProp(),
		"extra_km_rate":       amountProp(),
		"extra_km_charge":     amountProp(),
		"extra_hours":         amountProp(),
		"extra_hour_rate":     amountProp(),
		"extra_hour_charge":   amountProp(),
		"driver_allowance":    amountProp(),
		"permit_charges":      amountProp(),
		"parking_charges":     amountProp(),
		"security_deposit":    amountProp(),
		"pickup_drop_charges": amountProp(),
		"other_charges":       amountProp(),
		"subtotal":            amountProp(),
		"total_amount":        amountProp(),
		"advance_paid":        amountProp(),
		"balance_due":         amountProp(),

		"fuel_included":     map[string]any{"type": "boolean"},
		"toll_included":     map[string]any{"type": "boolean"},
		"pickup_drop_extra": map[string]any{"type": "boolean"},

		"place_of_supply":  stringProp(),
		"delivery_address": stringProp(),
		"payment_mode":     stringProp(),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{},
	}
}

func stringProp() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func amountProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0}
}

func timestampProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`}
}
