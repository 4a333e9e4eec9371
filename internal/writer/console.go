package writer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rickgao/merchant-guide/internal/model"
)

// ConsoleWriter prints answer text, one line per answer. Silent answers
// (declarations) print nothing.
type ConsoleWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleWriter creates a ConsoleWriter writing to out.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{out: out}
}

// Write prints a.Text if it is not empty.
func (w *ConsoleWriter) Write(_ context.Context, a model.Answer) error {
	if a.Silent() {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintln(w.out, a.Text); err != nil {
		return fmt.Errorf("write answer: %w", err)
	}
	return nil
}

// Close is a no-op.
func (w *ConsoleWriter) Close(context.Context) error { return nil }

type multiSink []Sink

// Multi returns a Sink that writes every answer to each of sinks in order.
// Errors are collected and do not stop later sinks.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Write(ctx context.Context, a model.Answer) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiSink) Close(ctx context.Context) error {
	var errs []error
	for _, s := range m {
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
