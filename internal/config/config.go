package config

import "time"

// Config is the root configuration for the merchant guide.
type Config struct {
	Session    SessionConfig    `yaml:"session"`
	Input      InputConfig      `yaml:"input"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Transcript TranscriptConfig `yaml:"transcript"`
}

// SessionConfig controls how lines are evaluated.
type SessionConfig struct {
	UnknownMessage   string `yaml:"unknown_message"`
	SkipBlankLines   bool   `yaml:"skip_blank_lines"`   // Blank lines are answered as unrecognized unless set
	WarnNonCanonical *bool  `yaml:"warn_non_canonical"` // nil means default (true)
	MaxLineBytes     int    `yaml:"max_line_bytes"`     // Longer lines are rejected one at a time
}

// InputConfig holds line source settings.
type InputConfig struct {
	DefaultFile string `yaml:"default_file"` // Used when no input argument is given
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ServerConfig holds websocket server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadLimit       int64         `yaml:"read_limit"` // Max bytes per websocket message
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TranscriptConfig holds settings for recording answers in PostgreSQL.
type TranscriptConfig struct {
	Enabled   bool     `yaml:"enabled"`
	BatchSize int      `yaml:"batch_size"`
	Database  DBConfig `yaml:"database"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
