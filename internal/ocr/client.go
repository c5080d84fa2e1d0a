// Package ocr wraps the OCR.space HTTP API and post-processes its text
// output for extraction.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hilldrive/invoice-engine/constants"
)

// Config for the OCR.space client.
type Config struct {
	APIKey   string        // if empty, falls back to env OCR_SPACE_API_KEY
	APIURL   string        // default https://api.ocr.space/parse/image
	Language string        // default "eng"
	Engine   int           // default 2, better for complex layouts
	Timeout  time.Duration // http client timeout
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

// Result is the post-processed OCR outcome.
type Result struct {
	Text       string
	Confidence float32 // 0..100
	Elapsed    time.Duration
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OCR_SPACE_API_KEY")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.ocr.space/parse/image"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.Engine <= 0 {
		cfg.Engine = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, log: logger}
}

// apiResponse mirrors the OCR.space payload. ErrorMessage arrives as either
// a string or a list of strings depending on the failure.
type apiResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
	ProcessingTimeMS      string          `json:"ProcessingTimeInMilliseconds"`
}

// ExtractFromImage uploads image bytes and returns the joined page text,
// normalized. filename only informs the MIME part name.
func (c *Client) ExtractFromImage(ctx context.Context, filename string, content []byte) (Result, error) {
	rid := uuid.New().String()
	start := time.Now()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"apikey":            c.cfg.APIKey,
		"language":          c.cfg.Language,
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		"OCREngine":         strconv.Itoa(c.cfg.Engine),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return Result{}, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return Result{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return Result{}, fmt.Errorf("write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart writer: %w", err)
	}

	c.log.Info("ocr.request",
		"req_id", rid,
		"bytes", len(content),
		"mime", constants.MimeForExt(filepath.Ext(filename)),
		"engine", c.cfg.Engine,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, &buf)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, rid, start)
}

// ExtractFromURL runs OCR against a publicly reachable image URL.
func (c *Client) ExtractFromURL(ctx context.Context, imageURL string) (Result, error) {
	rid := uuid.New().String()
	start := time.Now()

	form := url.Values{}
	form.Set("apikey", c.cfg.APIKey)
	form.Set("url", imageURL)
	form.Set("language", c.cfg.Language)
	form.Set("isOverlayRequired", "false")
	form.Set("OCREngine", strconv.Itoa(c.cfg.Engine))

	c.log.Info("ocr.request", "req_id", rid, "url", imageURL, "engine", c.cfg.Engine)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, rid, start)
}

func (c *Client) do(req *http.Request, rid string, start time.Time) (Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("ocr.send_error", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return Result{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("ocr.response_body_close_error", "req_id", rid, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return Result{}, fmt.Errorf("ocr.space status %d: %s", resp.StatusCode, string(raw))
	}

	var out apiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{}, fmt.Errorf("decode ocr.space response: %w", err)
	}
	if out.IsErroredOnProcessing {
		return Result{}, fmt.Errorf("ocr.space processing error: %s", errorMessage(out.ErrorMessage))
	}

	var pages []string
	for _, pr := range out.ParsedResults {
		if pr.ParsedText != "" {
			pages = append(pages, pr.ParsedText)
		}
	}
	text := Normalize(strings.Join(pages, "\n"))

	res := Result{
		Text: text,
		// The API reports no per-character confidence; a successful parse
		// gets the flat service default.
		Confidence: successConfidence,
		Elapsed:    time.Since(start),
	}
	c.log.Info("ocr.ok",
		"req_id", rid,
		"text_bytes", len(text),
		"pages", len(out.ParsedResults),
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	return res, nil
}

func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "unknown error"
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return string(raw)
}
