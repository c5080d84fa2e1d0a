package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hilldrive/invoice-engine/internal/booking"
	"github.com/hilldrive/invoice-engine/internal/llm"
)

// Extractor adapts a Generator to the llm.FieldExtractor contract.
type Extractor struct {
	gen         Generator
	model       string
	temperature float32
	log         *slog.Logger
}

func NewExtractor(gen Generator, model string, logger *slog.Logger) *Extractor {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{gen: gen, model: model, temperature: 0.1, log: logger}
}

// ExtractRecord implements llm.FieldExtractor.
func (e *Extractor) ExtractRecord(ctx context.Context, req llm.ExtractRequest) (*booking.Record, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	e.log.Info("gemini.extract.start",
		"req_id", rid,
		"model", e.model,
		"ocr_len", len(req.OCRText),
		"user_len", len(req.UserText),
	)

	temp := e.temperature
	text, err := e.gen.GenerateContent(ctx, e.model, llm.BuildExtractionPrompt(req), &GenerateConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		e.log.Error("gemini.extract.api_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, err
	}

	content := []byte(llm.StripMarkdownFences(text))
	if len(content) == 0 {
		e.log.Error("gemini.extract.empty_response", "req_id", rid)
		return nil, nil, fmt.Errorf("empty gemini response")
	}

	rec, validated, err := llm.DecodeRecord(content, e.log)
	if err != nil {
		e.log.Error("gemini.extract.invalid_content",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, validated, err
	}

	e.log.Info("gemini.extract.ok", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
	return rec, validated, nil
}
