package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/tradechart/internal/domain/models"
	pq "github.com/lib/pq"
)

// TradeFilter narrows ListTrades. Zero values mean "no restriction".
type TradeFilter struct {
	Since   *time.Time      // only trades at or after this instant
	MinSize int64           // only trades with trade_size >= MinSize
	Symbols []models.Symbol // only these symbols
}

// TradesRepository defines contract for DB operations.
type TradesRepository interface {
	InsertTradesBatch(ctx context.Context, source string, trades []models.Trade) error
	ListTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	HasIngestion(ctx context.Context, filename string) (bool, error)
	UpsertIngestionLog(ctx context.Context, filename string, rowCount int) error
	DeleteTradesBySource(ctx context.Context, filename string) error
}

type tradesRepository struct {
	db *sql.DB
}

func NewTradesRepository(db *sql.DB) TradesRepository {
	return &tradesRepository{db: db}
}

// InsertTradesBatch inserts multiple trades into DB in a single transaction using COPY.
// Trade timestamps must be RFC3339; source identifies the file the rows came from.
func (r *tradesRepository) InsertTradesBatch(ctx context.Context, source string, trades []models.Trade) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"trades",
		"id",
		"traded_at",
		"trade_size",
		"price",
		"symbol",
		"source_file",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range trades {
		at, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("trade %d: invalid timestamp %q: %w", rec.ID, rec.Timestamp, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, at, rec.Size, rec.Price, string(rec.Symbol), source); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ListTrades returns trades matching filter ordered by time, then id.
func (r *tradesRepository) ListTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	// $1 is always the minimum size. Subsequent placeholders depend on the filter.
	conditions := []string{"trade_size >= $1"}
	args := []interface{}{filter.MinSize}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("traded_at >= $%d", len(args)))
	}
	if len(filter.Symbols) > 0 {
		symbols := make([]string, len(filter.Symbols))
		for i, s := range filter.Symbols {
			symbols[i] = string(s)
		}
		args = append(args, pq.Array(symbols))
		conditions = append(conditions, fmt.Sprintf("symbol = ANY($%d)", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, traded_at, trade_size, price, symbol
		FROM trades
		WHERE %s
		ORDER BY traded_at, id
	`, strings.Join(conditions, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Trade{}
	for rows.Next() {
		var (
			t      models.Trade
			at     time.Time
			symbol string
		)
		if err := rows.Scan(&t.ID, &at, &t.Size, &t.Price, &symbol); err != nil {
			return nil, err
		}
		t.Timestamp = at.UTC().Format(time.RFC3339Nano)
		t.Symbol = models.Symbol(symbol)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HasIngestion checks if a file was already ingested.
func (r *tradesRepository) HasIngestion(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a file.
func (r *tradesRepository) UpsertIngestionLog(ctx context.Context, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (filename, row_count)
		VALUES ($1, $2)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, filename, rowCount)
	return err
}

// DeleteTradesBySource removes all trades loaded from a given file.
func (r *tradesRepository) DeleteTradesBySource(ctx context.Context, filename string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE source_file = $1`, filename)
	return err
}
