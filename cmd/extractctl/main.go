// extractctl runs the booking extraction pipeline over text files and prints
// the finalized record as JSON.
//
// Usage: extractctl <ocr-text-file> [user-text-file]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hilldrive/invoice-engine/constants"
	"github.com/hilldrive/invoice-engine/internal/common"
	"github.com/hilldrive/invoice-engine/internal/extract"
	"github.com/hilldrive/invoice-engine/internal/llm/gemini"
	"github.com/hilldrive/invoice-engine/internal/llm/openrouter"
	"github.com/hilldrive/invoice-engine/internal/pattern"
)

func main() {
	_ = godotenv.Load()

	// record JSON goes to stdout, logs to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 || len(os.Args) > 3 {
		logger.Error("usage", "cmd", "extractctl <ocr-text-file> [user-text-file]")
		os.Exit(2)
	}

	ocrText, err := readFile(os.Args[1])
	if err != nil {
		logger.Error("reading ocr text", "path", os.Args[1], "error", err)
		os.Exit(1)
	}
	var userText string
	if len(os.Args) == 3 {
		userText, err = readFile(os.Args[2])
		if err != nil {
			logger.Error("reading user text", "path", os.Args[2], "error", err)
			os.Exit(1)
		}
	}

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	orch := extract.NewOrchestrator(
		buildStrategies(ctx, cfg, logger),
		pattern.NewExtractor(logger),
		cfg.Extraction.StrategyTimeout,
		logger,
	)

	rec := orch.Extract(ctx, ocrText, userText)

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("encoding record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// buildStrategies assembles the semantic strategies that have credentials,
// in priority order. An empty slice means pattern-matching only.
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
