package llm

import (
	"context"

	"github.com/hilldrive/invoice-engine/internal/booking"
)

// ExtractRequest carries the two raw text inputs to a semantic extractor.
// Either may be empty; no structure is assumed.
type ExtractRequest struct {
	OCRText  string
	UserText string
}

// FieldExtractor is the collaborator contract the orchestrator depends on.
// Implementations may fail for any reason (network, quota, malformed
// response); the caller treats every failure uniformly.
type FieldExtractor interface {
	ExtractRecord(ctx context.Context, req ExtractRequest) (*booking.Record, []byte /*rawJSON*/, error)
}
