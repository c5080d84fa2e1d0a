// Package openrouter implements the primary semantic extractor over the
// OpenRouter chat/completions API.
package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hilldrive/invoice-engine/internal/booking"
	"github.com/hilldrive/invoice-engine/internal/llm"
)

// ExtractRecord implements llm.FieldExtractor over text-only chat/completions.
func (c *Client) ExtractRecord(ctx context.Context, req llm.ExtractRequest) (*booking.Record, []byte, error) {
	if !c.Enabled() {
		return nil, nil, fmt.Errorf("openrouter: no API key configured")
	}

	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("openrouter.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"ocr_len", len(req.OCRText),
		"user_len", len(req.UserText),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "user", "content": llm.BuildExtractionPrompt(req)},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
		"X-Title":       c.cfg.Title,
	}
	if c.cfg.Referer != "" {
		headers["HTTP-Referer"] = c.cfg.Referer
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("openrouter.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("openrouter.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("decode openrouter response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("openrouter.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("no choices in openrouter response")
	}

	content := []byte(llm.StripMarkdownFences(cc.Choices[0].Message.Content))
	rec, validated, err := llm.DecodeRecord(content, c.log)
	if err != nil {
		c.log.Error("openrouter.extract.invalid_content",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, validated, err
	}

	c.log.Info("openrouter.extract.ok",
		"req_id", rid,
		"customer", strptr(rec.CustomerName),
		"vehicle", strptr(rec.VehicleName),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, validated, nil
}

func strptr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
