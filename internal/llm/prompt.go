package llm

import (
	"encoding/json"
	"strings"
)

// BuildExtractionPrompt renders the shared instruction block both semantic
// extractors send. The schema rides along so the model sees the exact keys
// and types it must produce.
func BuildExtractionPrompt(req ExtractRequest) string {
	schema, _ := json.MarshalIndent(BuildBookingJSONSchema(), "", "  ")

	var b strings.Builder
	b.WriteString("You are an expert booking data extraction system for a vehicle rental company.\n")
	b.WriteString("Extract structured booking data from the provided OCR text and user input. ")
	b.WriteString("Return ONLY valid JSON with no markdown formatting.\n\n")

	b.WriteString("**OCR TEXT (from image):**\n")
	b.WriteString(truncate(req.OCRText, 3000))
	b.WriteString("\n\n**USER TEXT (typed details):**\n")
	b.WriteString(truncate(req.UserText, 3000))

	b.WriteString("\n\n**EXTRACTION RULES:**\n")
	b.WriteString("- Validate mobile numbers (exactly 10 digits).\n")
	b.WriteString("- Convert all dates to \"YYYY-MM-DD HH:MM\"; handle forms like \"25/01/2026 7am\" and \"21jan to 23jan 2026\".\n")
	b.WriteString("- Compute duration_days from the date range; a same-day booking is 1 day.\n")
	b.WriteString("- Amounts are plain numbers: strip currency symbols and grouping separators.\n")
	b.WriteString("- Set fuel_included / toll_included / pickup_drop_extra only when the text states them; otherwise omit.\n")
	b.WriteString("- Omit any field not present in the text. Never output null.\n")

	b.WriteString("\nJSON Schema:\n")
	b.Write(schema)
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
