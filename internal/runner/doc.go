// Package runner feeds lines from a source into a session, in order, and
// hands every answer to a sink.
package runner
