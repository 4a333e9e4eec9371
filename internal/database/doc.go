// Package database provides the PostgreSQL connection pool used to record
// session transcripts.
//
// Transcripts are append-only: one row per evaluated line. They are an audit
// log; sessions never read them back.
package database
