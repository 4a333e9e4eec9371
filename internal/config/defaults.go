package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultUnknownMessage  = "I have no idea what you are talking about"
	DefaultInputFile       = "default_test_input.txt"
	DefaultMaxLineBytes    = 1024 * 1024
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultServerAddr      = ":8080"
	DefaultReadLimit       = 64 * 1024
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultBatchSize       = 100
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
)

func (c *Config) applyDefaults() {
	// Session defaults
	if c.Session.UnknownMessage == "" {
		c.Session.UnknownMessage = DefaultUnknownMessage
	}
	if c.Session.MaxLineBytes == 0 {
		c.Session.MaxLineBytes = DefaultMaxLineBytes
	}
	if c.Session.WarnNonCanonical == nil {
		c.Session.WarnNonCanonical = boolPtr(true)
	}

	if c.Input.DefaultFile == "" {
		c.Input.DefaultFile = DefaultInputFile
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.ReadLimit == 0 {
		c.Server.ReadLimit = DefaultReadLimit
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Transcript defaults
	if c.Transcript.BatchSize == 0 {
		c.Transcript.BatchSize = DefaultBatchSize
	}
	applyDBDefaults(&c.Transcript.Database)
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}

func boolPtr(b bool) *bool { return &b }
