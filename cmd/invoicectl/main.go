// invoicectl turns one booking document into a rendered invoice: OCR (for
// images), extraction, verification, scoring, invoice numbering, XLSX render
// and local save.
//
// Usage: invoicectl <booking-image-or-text-file> [user-text-file]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hilldrive/invoice-engine/constants"
	"github.com/hilldrive/invoice-engine/internal/booking"
	"github.com/hilldrive/invoice-engine/internal/common"
	"github.com/hilldrive/invoice-engine/internal/extract"
	"github.com/hilldrive/invoice-engine/internal/llm/gemini"
	"github.com/hilldrive/invoice-engine/internal/llm/openrouter"
	"github.com/hilldrive/invoice-engine/internal/ocr"
	"github.com/hilldrive/invoice-engine/internal/pattern"
	"github.com/hilldrive/invoice-engine/internal/render"
	"github.com/hilldrive/invoice-engine/internal/repository"
	"github.com/hilldrive/invoice-engine/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 || len(os.Args) > 3 {
		logger.Error("usage", "cmd", "invoicectl <booking-image-or-text-file> [user-text-file]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// Source text: OCR for images, file contents otherwise.
	srcPath := os.Args[1]
	var ocrText string
	var attachments [][]byte
	ext := constants.NormalizeExt(filepath.Ext(srcPath))
	if _, isImage := constants.AllowedImageExtensions[ext]; isImage {
		content, err := os.ReadFile(srcPath)
		if err != nil {
			logger.Error("reading image", "path", srcPath, "error", err)
			os.Exit(1)
		}
		res, err := ocr.NewClient(ocr.Config{
			APIKey:   cfg.OCR.APIKey,
			APIURL:   cfg.OCR.APIURL,
			Language: cfg.OCR.Language,
			Engine:   cfg.OCR.Engine,
			Timeout:  cfg.OCR.Timeout,
		}, logger).ExtractFromImage(ctx, filepath.Base(srcPath), content)
		if err != nil {
			logger.Error("ocr failed", "path", srcPath, "error", err)
			os.Exit(1)
		}
		ocrText = res.Text
		attachments = append(attachments, content)
		if prep := ocr.HeuristicConfidence(ocrText); prep < 0.5 {
			logger.Warn("recognized text looks unlike a booking", "prep_confidence", prep)
		}
	} else {
		b, err := os.ReadFile(srcPath)
		if err != nil {
			logger.Error("reading source text", "path", srcPath, "error", err)
			os.Exit(1)
		}
		ocrText = string(b)
	}

	var userText string
	if len(os.Args) == 3 {
		b, err := os.ReadFile(os.Args[2])
		if err != nil {
			logger.Error("reading user text", "path", os.Args[2], "error", err)
			os.Exit(1)
		}
		userText = string(b)
	}

	orch := extract.NewOrchestrator(
		buildStrategies(ctx, cfg, logger),
		pattern.NewExtractor(logger),
		cfg.Extraction.StrategyTimeout,
		logger,
	)
	rec := orch.Extract(ctx, ocrText, userText)

	// An invoice needs at minimum a customer and a rental period.
	v := common.NewValidator().
		Field("customer_name", rec.CustomerName, common.Required).
		Field("start_datetime", rec.StartDatetime, common.Required, common.Timestamp).
		Field("end_datetime", rec.EndDatetime, common.Required, common.Timestamp)
	if v.HasErrors() {
		logger.Error("record incomplete for invoicing", "error", v.ErrorMessage())
		os.Exit(1)
	}

	db, pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, pool, logger)

	counter := repository.NewCounterRepository(db, logger)
	if err := counter.Init(ctx); err != nil {
		os.Exit(1)
	}
	fy := repository.CurrentFinancialYear(time.Now())
	n, err := counter.Next(ctx, fy)
	if err != nil {
		logger.Error("allocating invoice number", "error", err)
		os.Exit(1)
	}
	rec.InvoiceNumber = booking.Ptr(repository.FormatInvoiceNumber(fy, n))
	rec.InvoiceDate = booking.Ptr(time.Now().Format("2006-01-02"))

	xlsx, err := render.NewWriter(logger).InvoiceXLSX(rec, attachments)
	if err != nil {
		logger.Error("rendering invoice", "error", err)
		os.Exit(1)
	}

	filename := fmt.Sprintf("%s.xlsx", strings.ReplaceAll(*rec.InvoiceNumber, "/", "-"))
	result := storage.NewLocalStore(cfg.Output.Dir, logger).Save(filename, xlsx)

	summary := map[string]any{
		"invoice_number":        *rec.InvoiceNumber,
		"extraction_method":     rec.ExtractionMethod,
		"extraction_confidence": rec.ExtractionConfidence,
		"calculation_verified":  rec.CalculationVerified,
		"saved":                 result,
	}
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
	if !result.OK {
		os.Exit(1)
	}
}

func buildStrategies(ctx context.Context, cfg *common.Config, logger *slog.Logger) []extract.Strategy {
	var strategies []extract.Strategy

	or := openrouter.NewClient(openrouter.Config{
		APIKey:      cfg.OpenRouter.APIKey,
		BaseURL:     cfg.OpenRouter.BaseURL,
		Model:       cfg.OpenRouter.Model,
		Temperature: cfg.OpenRouter.Temperature,
		MaxTokens:   cfg.OpenRouter.MaxTokens,
		Referer:     cfg.OpenRouter.Referer,
		Timeout:     cfg.OpenRouter.Timeout,
	}, logger)
	if or.Enabled() {
		strategies = append(strategies, extract.Strategy{Name: constants.MethodOpenRouter, Extractor: or})
	}

	if cfg.Gemini.APIKey != "" {
		gen, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey)
		if err != nil {
			logger.Warn("gemini unavailable", "error", err)
		} else {
			strategies = append(strategies, extract.Strategy{
				Name:      constants.MethodGemini,
				Extractor: gemini.NewExtractor(gen, cfg.Gemini.Model, logger),
			})
		}
	}
	return strategies
}
