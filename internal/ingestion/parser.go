package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/guttosm/tradechart/internal/domain/models"
	"github.com/guttosm/tradechart/internal/storage"
)

// expectedHeaders enforces strict column ordering for trade export files.
// If the header doesn't match EXACTLY (order + count), ingestion must fail.
var expectedHeaders = []string{
	"id",
	"timestamp",
	"tradeSize",
	"price",
	"symbol",
}

// timestampLayouts accepted in the timestamp column. Zone-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// tradeRow is one CSV record after type conversion, before it becomes a models.Trade.
type tradeRow struct {
	ID        int64   `validate:"gt=0"`
	Timestamp string  `validate:"required,tradetime"`
	Size      int64   `validate:"gte=0"`
	Price     float64 `validate:"gt=0,cents"`
	Symbol    string  `validate:"oneof=AAPL MSFT GOOGL AMZN META"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		return isCents(fl.Field().Float())
	})
	_ = v.RegisterValidation("tradetime", func(fl validator.FieldLevel) bool {
		_, err := parseTimestamp(fl.Field().String())
		return err == nil
	})
	return v
}

// isCents reports whether p is finite and a whole number of cents.
func isCents(p float64) bool {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return false
	}
	c := p * 100
	return math.Abs(c-math.Round(c)) < 1e-6
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// It fails on:
//   - header not matching expected order/length
//   - any row that does not convert or validate
//   - unrecoverable I/O errors
//
// Parameters:
//   - ctx:    context for cancellation/timeouts.
//   - path:   file path; its base name is recorded as the trades' source.
//   - repo:   repository for DB insertion.
//   - batch:  batch size for inserts (e.g., 5000).
func parseAndPersistFile(ctx context.Context, path string, repo storage.TradesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	source := filepath.Base(path)

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // allow variable but we’ll check explicitly

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	buf := make([]models.Trade, 0, batch)
	lineNumber := 1 // header already read

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertTradesBatch(ctx, source, buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		tr, err := recordToTrade(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		buf = append(buf, tr)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToTrade converts a single CSV record (already validated length==5)
// into a models.Trade and validates it as the trade feed's schema demands:
//
//	0 id         → ID (int64, > 0)
//	1 timestamp  → Timestamp (date-time; normalized to RFC3339 UTC)
//	2 tradeSize  → Size (int64, >= 0)
//	3 price      → Price (float, > 0, whole cents)
//	4 symbol     → Symbol (AAPL|MSFT|GOOGL|AMZN|META)
func recordToTrade(rec []string) (models.Trade, error) {
	var row tradeRow
	var err error

	if row.ID, err = strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid id: %v", err)
	}
	row.Timestamp = strings.TrimSpace(rec[1])
	if row.Size, err = strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid tradeSize: %v", err)
	}
	if row.Price, err = strconv.ParseFloat(strings.TrimSpace(rec[3]), 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid price: %v", err)
	}
	row.Symbol = strings.TrimSpace(rec[4])

	if err := validate.Struct(row); err != nil {
		return models.Trade{}, fmt.Errorf("invalid trade: %w", err)
	}

	at, _ := parseTimestamp(row.Timestamp)
	return models.Trade{
		ID:        row.ID,
		Timestamp: at.UTC().Format(time.RFC3339Nano),
		Size:      row.Size,
		Price:     row.Price,
		Symbol:    models.Symbol(row.Symbol),
	}, nil
}
