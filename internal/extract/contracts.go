package extract

import (
	"github.com/hilldrive/invoice-engine/constants"
	"github.com/hilldrive/invoice-engine/internal/booking"
	"github.com/hilldrive/invoice-engine/internal/llm"
)

// Strategy is one semantic extraction collaborator in priority order.
type Strategy struct {
	Name      constants.Method
	Extractor llm.FieldExtractor
}

// Outcome is the result of one strategy attempt. Failures are values here,
// not propagated errors: the orchestrator switches on them.
type Outcome struct {
	Record *booking.Record
	Method constants.Method
	Err    error
}
