package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rickgao/merchant-guide/internal/model"
	"github.com/rickgao/merchant-guide/internal/session"
	"github.com/rickgao/merchant-guide/internal/writer"
)

// Stdin is the source name that selects standard input.
const Stdin = "-"

// DefaultMaxLineBytes is the line length limit used when Config leaves it unset.
const DefaultMaxLineBytes = 1024 * 1024

// Config holds runner settings.
type Config struct {
	SkipBlankLines bool // Blank lines are not evaluated and produce no output
	MaxLineBytes   int  // Longer lines are answered with session.ErrLineTooLong
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{MaxLineBytes: DefaultMaxLineBytes}
}

// Runner drives a single session over a line source.
type Runner struct {
	cfg     Config
	session *session.Session
	sink    writer.Sink
	logger  *slog.Logger
}

// New creates a Runner.
func New(cfg Config, sess *session.Session, sink writer.Sink, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:     cfg,
		session: sess,
		sink:    sink,
		logger:  logger,
	}
}

// Run evaluates every line of src in order. A line over the length limit
// fails on its own and reading continues. Run stops early if ctx is
// cancelled, if src fails, or if the sink rejects an answer.
func (r *Runner) Run(ctx context.Context, src io.Reader) (session.Stats, error) {
	start := time.Now()
	br := bufio.NewReader(src)

	maxBytes := r.cfg.MaxLineBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxLineBytes
	}

	for {
		line, tooLong, readErr := readLine(br, maxBytes)
		if readErr != nil && readErr != io.EOF {
			return r.session.Stats(), fmt.Errorf("read input: %w", readErr)
		}
		if readErr == io.EOF && line == "" && !tooLong {
			break
		}

		if err := ctx.Err(); err != nil {
			return r.session.Stats(), err
		}

		if tooLong || !r.cfg.SkipBlankLines || strings.TrimSpace(line) != "" {
			var answer model.Answer
			if tooLong {
				answer = r.session.Reject(fmt.Errorf("%w: over %d bytes", session.ErrLineTooLong, maxBytes))
			} else {
				answer = r.session.Evaluate(line)
			}
			if err := r.sink.Write(ctx, answer); err != nil {
				return r.session.Stats(), fmt.Errorf("emit answer %d: %w", answer.Seq, err)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	stats := r.session.Stats()
	r.logger.Info("input processed",
		"session", r.session.ID().String(),
		"lines", stats.Lines,
		"answers", stats.Answers,
		"errors", stats.Errors,
		"unrecognized", stats.Unrecognized,
		"duration", time.Since(start),
	)
	return stats, nil
}

// readLine reads up to the next newline. Content past maxBytes is consumed
// and dropped, and tooLong is set. The line is returned without its line
// ending.
func readLine(br *bufio.Reader, maxBytes int) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		content := chunk
		if err != bufio.ErrBufferFull {
			content = bytes.TrimRight(chunk, "\r\n")
		}
		if !tooLong {
			if len(buf)+len(content) > maxBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, content...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return string(buf), tooLong, err
	}
}

// OpenSource opens the named line source. Stdin is returned as is and
// must not be closed by the caller's close func.
func OpenSource(name string) (io.Reader, func() error, error) {
	if name == Stdin {
		return os.Stdin, func() error { return nil }, nil
	}

	info, err := os.Stat(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("open input: %s is not a regular file", name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, f.Close, nil
}
