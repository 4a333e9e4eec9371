// Package session holds the state of one run of the trade engine.
//
// A Session owns two tables built incrementally from declaration lines:
//   - Unit table: unit word -> Roman letter (last declaration wins)
//   - Cost model: good -> credits per unit, derived from credit samples
//
// Questions read both tables. Every failure is scoped to the line that caused
// it; the session keeps accepting lines afterwards. A session is not safe for
// concurrent use: lines are evaluated strictly in order.
package session
