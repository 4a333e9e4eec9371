// Package model defines shared data types used across the merchant guide.
//
// Conventions:
//   - Seq: 1-based position of a processed line within its session
//   - Timestamps: time.Time in UTC
//   - IDs: uuid.UUID for sessions
package model
