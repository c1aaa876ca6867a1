package worker

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExportWorker serializes bookings-export requests through a bounded queue
// so concurrent admin calls never write the same file twice.
type ExportWorker struct {
	repo   domain.Repository
	dir    string
	retry  RetryPolicy
	tasks  chan struct{}
	logger *zerolog.Logger
}

func NewExportWorker(repo domain.Repository, dir string, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	return &ExportWorker{
		repo:   repo,
		dir:    dir,
		retry:  retry,
		tasks:  make(chan struct{}, models.ExportQueueSize),
		logger: logger,
	}
}

// EnqueueBookingsExport queues an export without blocking the caller.
func (w *ExportWorker) EnqueueBookingsExport(ctx context.Context) error {
	select {
	case w.tasks <- struct{}{}:
		return nil
	default:
		return fmt.Errorf("export queue is full")
	}
}

// Start processes export tasks until the context is canceled.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Str("dir", w.dir).Msg("export worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("export worker stopped")
			return
		case <-w.tasks:
			w.process(ctx)
		}
	}
}

func (w *ExportWorker) process(ctx context.Context) {
	attempts := w.retry.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := w.exportOnce(ctx); err == nil {
			return
		} else {
			lastErr = err
			w.logger.Warn().Err(err).Int("attempt", attempt).Msg("bookings export failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retry.Delay(attempt)):
		}
	}
	w.logger.Error().Err(lastErr).Msg("bookings export gave up")
}

func (w *ExportWorker) exportOnce(ctx context.Context) error {
	rows, err := w.repo.ExportBookings(ctx)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("bookings_%s_%s.xlsx", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	path, err := export.WriteBookingsFile(w.dir, name, rows)
	if err != nil {
		return err
	}

	metrics.IncExportCompleted()
	w.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("bookings export completed")
	return nil
}
