// Package extract coordinates the extraction strategies: semantic
// collaborators in priority order, then the local pattern extractor.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hilldrive/invoice-engine/constants"
	"github.com/hilldrive/invoice-engine/internal/booking"
	"github.com/hilldrive/invoice-engine/internal/llm"
	"github.com/hilldrive/invoice-engine/internal/pattern"
	"github.com/hilldrive/invoice-engine/internal/verify"
)

const defaultStrategyTimeout = 45 * time.Second

// Orchestrator runs the strategy chain and finalizes the record. Extract
// never fails: when every semantic collaborator errors out, the pattern
// extractor produces the record.
type Orchestrator struct {
	strategies []Strategy
	fallback   *pattern.Extractor
	timeout    time.Duration
	logger     *slog.Logger
}

func NewOrchestrator(strategies []Strategy, fallback *pattern.Extractor, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if fallback == nil {
		fallback = pattern.NewExtractor(logger)
	}
	if timeout <= 0 {
		timeout = defaultStrategyTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		strategies: strategies,
		fallback:   fallback,
		timeout:    timeout,
		logger:     logger,
	}
}

// Extract produces a finalized booking record from the two raw texts. Each
// configured collaborator gets one bounded attempt; any failure, timeout
// included, falls through to the next. The record is then cross-checked and
// scored, and tagged with the strategy that actually produced it.
func (o *Orchestrator) Extract(ctx context.Context, ocrText, userText string) *booking.Record {
	start := time.Now()
	req := llm.ExtractRequest{OCRText: ocrText, UserText: userText}

	var final Outcome
	for _, s := range o.strategies {
		out := o.attempt(ctx, s, req)
		if out.Err == nil {
			final = out
			break
		}
		o.logger.Warn("extract.strategy.failed",
			"strategy", out.Method,
			"error", out.Err,
		)
	}

	if final.Record == nil {
		final = Outcome{
			Record: o.fallback.Extract(ocrText, userText),
			Method: constants.MethodPattern,
		}
	}

	rec := final.Record
	rec.ExtractionMethod = final.Method.String()
	verify.Calculations(rec)
	verify.Confidence(rec)

	o.logger.Info("extract.done",
		"method", rec.ExtractionMethod,
		"confidence", rec.ExtractionConfidence,
		"verified", rec.CalculationVerified,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec
}

// attempt runs one collaborator with a bounded deadline. Panics inside a
// collaborator are converted to failures so the chain keeps its no-raise
// guarantee.
func (o *Orchestrator) attempt(ctx context.Context, s Strategy, req llm.ExtractRequest) (out Outcome) {
	out.Method = s.Name

	defer func() {
		if r := recover(); r != nil {
			out.Record = nil
			out.Err = fmt.Errorf("strategy panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	rec, _, err := s.Extractor.ExtractRecord(ctx, req)
	if err != nil {
		out.Err = err
		return out
	}
	if rec == nil {
		out.Err = fmt.Errorf("strategy %s returned no record", s.Name)
		return out
	}
	out.Record = rec
	return out
}
