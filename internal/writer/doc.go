// Package writer implements the sinks that receive evaluated answers.
//
// Writers:
//   - Console writer: one output line per non-silent answer
//   - Transcript writer: batched inserts of every answer into PostgreSQL
//
// The transcript is append-only (never update, only insert) and a failed
// insert never interrupts a session.
package writer
