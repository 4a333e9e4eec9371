package writer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/merchant-guide/internal/model"
)

// Sink receives answers in evaluation order.
type Sink interface {
	// Write records a single answer.
	Write(ctx context.Context, a model.Answer) error

	// Close flushes anything buffered and releases resources.
	Close(ctx context.Context) error
}

// WriterConfig contains configuration for batch writers.
type WriterConfig struct {
	// BatchSize is the number of rows to accumulate before flushing.
	BatchSize int

	// FlushInterval is the maximum time between flushes.
	FlushInterval time.Duration
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     100,
		FlushInterval: 5 * time.Second,
	}
}

// transcriptRow represents a row to be inserted into the transcripts table.
type transcriptRow struct {
	SessionID   uuid.UUID
	Seq         int64
	Line        string
	Kind        string
	Answer      string
	Error       string // empty on success
	ProcessedAt time.Time
}

// WriterMetrics holds metrics for a writer.
type WriterMetrics struct {
	Inserts   int64
	Conflicts int64
	Errors    int64
	Flushes   int64
}
