package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is the outcome of evaluating one input line.
type Answer struct {
	SessionID   uuid.UUID // Owning session
	Seq         int64     // Line position within the session (1-based)
	Line        string    // Trimmed input line
	Kind        string    // Sentence kind, e.g. "unit_value_question"
	Text        string    // Rendered output; empty for silent declarations
	Err         error     // Line-scoped failure, nil on success
	ProcessedAt time.Time // When the line was evaluated
}

// Silent reports whether the answer produces no output line.
func (a Answer) Silent() bool {
	return a.Text == ""
}

// ErrorString returns the error message, or "" when the line succeeded.
func (a Answer) ErrorString() string {
	if a.Err == nil {
		return ""
	}
	return a.Err.Error()
}
