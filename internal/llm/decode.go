package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hilldrive/invoice-engine/internal/booking"
)

// DecodeRecord turns a model's JSON answer into a booking record. Validation
// is strict first; on failure a lenient sanitize pass renames synonyms,
// coerces numeric strings and drops offenders, then validation runs again.
// The returned bytes are whatever version ultimately validated.
func DecodeRecord(content []byte, logger *slog.Logger) (*booking.Record, []byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema := BuildBookingJSONSchema()

	validated := content
	if err := ValidateJSONAgainstSchema(schema, content); err != nil {
		cleaned, dropped, sErr := NormalizeAndSanitizeJSON(content, logger)
		if sErr != nil {
			return nil, content, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			return nil, cleaned, fmt.Errorf("schema validation failed: %w", vErr)
		}
		logger.Warn("llm.extract.lenient_sanitize_applied", "dropped", dropped)
		validated = cleaned
	}

	rec := booking.NewRecord()
	if err := json.Unmarshal(validated, rec); err != nil {
		return nil, validated, fmt.Errorf("unmarshal fields: %w", err)
	}
	return rec, validated, nil
}
