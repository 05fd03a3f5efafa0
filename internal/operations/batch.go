package operations

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"reporttable/internal/config"
	"reporttable/pkg/contracts/domain"
)

// RunBatch runs jobs concurrently, at most limit at a time. Each job runs its
// stages sequentially. The first failure cancels jobs that have not finished;
// results are returned in job order, nil for jobs that did not complete.
func (m *Manager) RunBatch(ctx context.Context, jobs []domain.ConversionJob, limit int) ([]*domain.RunResult, error) {
	if limit <= 0 {
		limit = config.DefaultBatchLimit
	}

	started := time.Now()
	results := make([]*domain.RunResult, len(jobs))

	m.logger.InfoContext(ctx, "batch_execution_start",
		slog.Int("jobs", len(jobs)),
		slog.Int("limit", limit))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range jobs {
		i := i // per-iteration copy (pre-Go 1.22 loop semantics)
		job := &jobs[i]
		g.Go(func() error {
			result, err := m.Run(gctx, job)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		m.logger.ErrorContext(ctx, "batch_execution_failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(started)))
		return results, err
	}

	m.logger.InfoContext(ctx, "batch_execution_completed",
		slog.Int("jobs", len(jobs)),
		slog.Duration("duration", time.Since(started)))
	return results, nil
}
