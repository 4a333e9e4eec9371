package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rickgao/merchant-guide/internal/model"
)

// BatchSender is the part of *pgxpool.Pool the transcript writer needs.
type BatchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// TranscriptWriter batches answers and inserts them into the transcripts table.
// It is safe for concurrent use so several sessions can share one writer.
type TranscriptWriter struct {
	cfg    WriterConfig
	logger *slog.Logger

	// Database
	db BatchSender

	// Batching
	batch       []transcriptRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	metrics WriterMetrics
}

// NewTranscriptWriter creates a new TranscriptWriter.
func NewTranscriptWriter(cfg WriterConfig, db BatchSender, logger *slog.Logger) *TranscriptWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultWriterConfig().BatchSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &TranscriptWriter{
		cfg:    cfg,
		db:     db,
		logger: logger,
		batch:  make([]transcriptRow, 0, cfg.BatchSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins periodic flushing. Without Start, rows are flushed only when
// the batch fills and on Close.
func (w *TranscriptWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	if w.cfg.FlushInterval <= 0 {
		return nil
	}
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("transcript writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Write adds a to the current batch, flushing when the batch is full.
func (w *TranscriptWriter) Write(_ context.Context, a model.Answer) error {
	row := w.transform(a)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
	return nil
}

// Close stops periodic flushing and writes any remaining rows.
func (w *TranscriptWriter) Close(ctx context.Context) error {
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("transcript writer stop timed out")
	}

	// Final flush with the caller's context; ours is cancelled.
	w.flushWith(ctx)

	w.logger.Info("transcript writer stopped",
		"inserts", w.Stats().Inserts,
		"errors", w.Stats().Errors,
	)
	return nil
}

// Stats returns current metrics.
func (w *TranscriptWriter) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// flushLoop periodically flushes the batch.
func (w *TranscriptWriter) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush()
		}
	}
}

// transform converts an answer to a transcriptRow.
func (w *TranscriptWriter) transform(a model.Answer) transcriptRow {
	return transcriptRow{
		SessionID:   a.SessionID,
		Seq:         a.Seq,
		Line:        a.Line,
		Kind:        a.Kind,
		Answer:      a.Text,
		Error:       a.ErrorString(),
		ProcessedAt: a.ProcessedAt,
	}
}

func (w *TranscriptWriter) flush() {
	w.flushWith(w.ctx)
}

// flushWith writes the current batch to the database.
func (w *TranscriptWriter) flushWith(ctx context.Context) {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	// Take ownership of current batch
	batch := w.batch
	w.batch = make([]transcriptRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.batchInsert(ctx, batch)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed transcript",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *TranscriptWriter) batchInsert(ctx context.Context, rows []transcriptRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO transcripts (session_id, seq, line, kind, answer, error, processed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (session_id, seq) DO NOTHING
		`, r.SessionID, r.Seq, r.Line, r.Kind, r.Answer, r.Error, r.ProcessedAt)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
