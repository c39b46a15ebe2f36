package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradechart/internal/logger"
	"github.com/guttosm/tradechart/internal/storage"
)

const (
	filePattern      = "*.csv"
	defaultBatchSize = 5000
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.TradesRepository {
	return storage.NewTradesRepository(db)
}

// ProcessDirectory loads every trade export file found in dir.
//
// Parameters:
//   - dir:      directory containing .csv input files.
//   - db:       open *sql.DB (PostgreSQL).
//   - parallel: files processed concurrently (0 = min(8, NumCPU); clamped to 8).
//   - force:    reload files already recorded in the ingestion log.
//
// Behavior:
//   - Fails when the directory holds no .csv files.
//   - Files already in the ingestion log are skipped unless force is set.
//   - A file's previous rows (by source name) are deleted before it is loaded, and the
//     rows of a file that fails partway are removed again, so a file that never reached
//     the ingestion log holds no trades.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	repo := repoCtor(db)

	files, err := filepath.Glob(filepath.Join(dir, filePattern))
	if err != nil {
		return fmt.Errorf("list input files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files matching %s in %s", filePattern, dir)
	}
	sort.Strings(files)

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("ingestion start")

	maxParallel := maxParallelFiles
	if parallel > 0 {
		maxParallel = min(parallel, maxParallelFiles)
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, file := range files {
		idx := i
		f := file

		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(f)
			logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

			exists, err := repo.HasIngestion(gctx, base)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", f, err)
			}
			if exists && !force {
				logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Bool("skipped", true).Msg("already ingested")
				return nil
			}
			// Rows left by an earlier run that failed before logging the file are
			// cleared as well as those of a forced reload.
			if err := repo.DeleteTradesBySource(gctx, base); err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("delete existing failed")
				return fmt.Errorf("file %s: delete existing: %w", f, err)
			}

			total, err := parseAndPersistFile(gctx, f, repo, defaultBatchSize)
			if err != nil {
				logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				if derr := repo.DeleteTradesBySource(context.WithoutCancel(gctx), base); derr != nil {
					logger.L().Warn().Str("file", base).Err(derr).Msg("remove partial load failed")
				}
				return fmt.Errorf("file %s: %w", f, err)
			}
			if err := repo.UpsertIngestionLog(gctx, base, total); err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("file %s: upsert ingestion log: %w", f, err)
			}
			logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}
