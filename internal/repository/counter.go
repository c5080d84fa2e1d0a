package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

const counterSchema = `
CREATE TABLE IF NOT EXISTS invoice_counter (
    financial_year TEXT PRIMARY KEY,
    last_number    INTEGER NOT NULL
)`

// CounterRepository hands out sequential invoice numbers per financial year.
type CounterRepository interface {
	Init(ctx context.Context) error
	Next(ctx context.Context, financialYear string) (int, error)
	Status(ctx context.Context, financialYear string) (int, error)
	Set(ctx context.Context, financialYear string, lastNumber int) error
	Reset(ctx context.Context, financialYear string) error
}

type counterRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewCounterRepository(db *sql.DB, log *slog.Logger) CounterRepository {
	if log == nil {
		log = slog.Default()
	}
	return &counterRepo{db: db, log: log}
}

func (r *counterRepo) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, counterSchema); err != nil {
		r.log.Error("counter init failed", "err", err)
		return err
	}
	return nil
}

// Next increments and returns the counter for the year, creating the row at
// 1 on first use.
func (r *counterRepo) Next(ctx context.Context, financialYear string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO invoice_counter (financial_year, last_number) VALUES ($1, 0)
ON CONFLICT (financial_year) DO NOTHING`, financialYear)
	if err != nil {
		r.log.Error("counter insert failed", "financial_year", financialYear, "err", err)
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
UPDATE invoice_counter SET last_number = last_number + 1 WHERE financial_year = $1`, financialYear)
	if err != nil {
		r.log.Error("counter increment failed", "financial_year", financialYear, "err", err)
		return 0, err
	}

	var n int
	err = tx.QueryRowContext(ctx, `
SELECT last_number FROM invoice_counter WHERE financial_year = $1`, financialYear).Scan(&n)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	r.log.Info("invoice number allocated", "financial_year", financialYear, "number", n)
	return n, nil
}

// Status returns the last allocated number, 0 if the year has no row yet.
func (r *counterRepo) Status(ctx context.Context, financialYear string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT last_number FROM invoice_counter WHERE financial_year = $1`, financialYear).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Set forces the counter to lastNumber, for realigning with a manually
// issued invoice book.
func (r *counterRepo) Set(ctx context.Context, financialYear string, lastNumber int) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO invoice_counter (financial_year, last_number) VALUES ($1, $2)
ON CONFLICT (financial_year) DO UPDATE SET last_number = EXCLUDED.last_number`,
		financialYear, lastNumber)
	if err != nil {
		r.log.Error("counter set failed", "financial_year", financialYear, "err", err)
		return err
	}
	r.log.Info("counter set", "financial_year", financialYear, "number", lastNumber)
	return nil
}

func (r *counterRepo) Reset(ctx context.Context, financialYear string) error {
	return r.Set(ctx, financialYear, 0)
}

// CurrentFinancialYear returns the label for now, e.g. "2026-27".
func CurrentFinancialYear(now time.Time) string {
	y := now.Year()
	return fmt.Sprintf("%d-%02d", y, (y+1)%100)
}

// FormatInvoiceNumber renders the printed invoice number, e.g. "HD/2026-27/007".
func FormatInvoiceNumber(financialYear string, n int) string {
	return fmt.Sprintf("HD/%s/%03d", financialYear, n)
}
