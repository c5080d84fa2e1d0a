// counterctl inspects and adjusts the per-financial-year invoice counter.
//
// Usage:
//
//	counterctl status [financial-year]
//	counterctl set <number> [financial-year]
//	counterctl reset [financial-year]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hilldrive/invoice-engine/internal/common"
	"github.com/hilldrive/invoice-engine/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage(logger)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

	if err := repository.HealthCheck(ctx, db, time.Second, logger); err != nil {
		logger.Error("db health check failed", "error", err)
		os.Exit(1)
	}

	counter := repository.NewCounterRepository(db, logger)
	if err := counter.Init(ctx); err != nil {
		os.Exit(1)
	}

	switch cmd {
	case "status":
		fy := yearArg(args, 0)
		n, err := counter.Status(ctx, fy)
		if err != nil {
			logger.Error("reading counter", "financial_year", fy, "error", err)
			os.Exit(1)
		}
		fmt.Printf("%s: last invoice %d (next %s)\n", fy, n, repository.FormatInvoiceNumber(fy, n+1))
	case "set":
		if len(args) < 1 {
			usage(logger)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			logger.Error("invalid number", "arg", args[0])
			os.Exit(2)
		}
		fy := yearArg(args, 1)
		if err := counter.Set(ctx, fy, n); err != nil {
			os.Exit(1)
		}
		fmt.Printf("%s: counter set to %d\n", fy, n)
	case "reset":
		fy := yearArg(args, 0)
		if err := counter.Reset(ctx, fy); err != nil {
			os.Exit(1)
		}
		fmt.Printf("%s: counter reset\n", fy)
	default:
		usage(logger)
	}
}

func yearArg(args []string, i int) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return repository.CurrentFinancialYear(time.Now())
}

func usage(logger *slog.Logger) {
	logger.Error("usage", "cmd", "counterctl status|set <number>|reset [financial-year]")
	os.Exit(2)
}
