package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
session:
  unknown_message: "come again?"
  skip_blank_lines: false
  max_line_bytes: 4096
log:
  level: debug
  format: json
server:
  addr: ":9000"
  write_timeout: 5s
transcript:
  enabled: true
  database:
    host: localhost
    port: 5433
    name: merchant
    user: trader
    password: secret
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Session.UnknownMessage != "come again?" {
		t.Errorf("Session.UnknownMessage = %q, want %q", cfg.Session.UnknownMessage, "come again?")
	}
	if cfg.Session.SkipBlankLines {
		t.Error("Session.SkipBlankLines = true, want false")
	}
	if cfg.Session.MaxLineBytes != 4096 {
		t.Errorf("Session.MaxLineBytes = %d, want %d", cfg.Session.MaxLineBytes, 4096)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9000")
	}
	if cfg.Server.WriteTimeout != 5*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want %v", cfg.Server.WriteTimeout, 5*time.Second)
	}
	if cfg.Transcript.Database.Port != 5433 {
		t.Errorf("Transcript.Database.Port = %d, want %d", cfg.Transcript.Database.Port, 5433)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
transcript:
  enabled: true
  database:
    host: localhost
    name: merchant
    user: trader
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Transcript.Database.Password != "secret123" {
		t.Errorf("Transcript.Database.Password = %q, want %q", cfg.Transcript.Database.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "log:\n  level: warn\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, DefaultLogFormat)
	}
	if cfg.Session.UnknownMessage != DefaultUnknownMessage {
		t.Errorf("Session.UnknownMessage = %q, want default %q", cfg.Session.UnknownMessage, DefaultUnknownMessage)
	}
	if cfg.Session.SkipBlankLines {
		t.Error("Session.SkipBlankLines should default to false")
	}
	if cfg.Session.MaxLineBytes != DefaultMaxLineBytes {
		t.Errorf("Session.MaxLineBytes = %d, want default %d", cfg.Session.MaxLineBytes, DefaultMaxLineBytes)
	}
	if cfg.Session.WarnNonCanonical == nil || !*cfg.Session.WarnNonCanonical {
		t.Error("Session.WarnNonCanonical should default to true")
	}
	if cfg.Input.DefaultFile != DefaultInputFile {
		t.Errorf("Input.DefaultFile = %q, want default %q", cfg.Input.DefaultFile, DefaultInputFile)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, DefaultServerAddr)
	}
	if cfg.Transcript.BatchSize != DefaultBatchSize {
		t.Errorf("Transcript.BatchSize = %d, want default %d", cfg.Transcript.BatchSize, DefaultBatchSize)
	}
	if cfg.Transcript.Database.Port != DefaultDBPort {
		t.Errorf("Transcript.Database.Port = %d, want default %d", cfg.Transcript.Database.Port, DefaultDBPort)
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := LoadAndValidate("")
		if err != nil {
			t.Fatalf("LoadAndValidate failed: %v", err)
		}
		if cfg.Server.Addr != DefaultServerAddr {
			t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Default() should validate: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil || !strings.Contains(err.Error(), "read config file") {
			t.Errorf("error = %v, want read config file error", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadAndValidate(writeTempFile(t, "log: [unclosed"))
		if err == nil || !strings.Contains(err.Error(), "parse config yaml") {
			t.Errorf("error = %v, want parse error", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadAndValidate(writeTempFile(t, "log:\n  level: loud\n"))
		if err == nil || !strings.HasPrefix(err.Error(), "validate config: log.level") {
			t.Errorf("error = %v, want log.level validation error", err)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		return *cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: `log.format must be text or json, got "xml"`,
		},
		{
			name:    "zero max line bytes",
			mutate:  func(c *Config) { c.Session.MaxLineBytes = 0 },
			wantErr: "session.max_line_bytes must be >= 1",
		},
		{
			name:    "missing server addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "server.addr is required",
		},
		{
			name:    "transcript disabled skips database checks",
			mutate:  func(c *Config) { c.Transcript.Database.Host = "" },
			wantErr: "",
		},
		{
			name:    "transcript missing host",
			mutate:  func(c *Config) { c.Transcript.Enabled = true },
			wantErr: "transcript.database.host is required",
		},
		{
			name: "transcript missing password",
			mutate: func(c *Config) {
				c.Transcript.Enabled = true
				c.Transcript.Database.Host = "localhost"
				c.Transcript.Database.Name = "db"
				c.Transcript.Database.User = "user"
			},
			wantErr: "transcript.database.password is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Transcript.Enabled = true
				c.Transcript.Database = DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 2, MinConns: 5}
			},
			wantErr: "transcript.database.min_conns (5) cannot exceed max_conns (2)",
		},
		{
			name: "valid transcript",
			mutate: func(c *Config) {
				c.Transcript.Enabled = true
				c.Transcript.Database = DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 4, MinConns: 1}
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadExampleConfig(t *testing.T) {
	t.Setenv("MERCHANT_DB_PASSWORD", "example")

	cfg, err := LoadAndValidate(filepath.Join("..", "..", "configs", "merchant.example.yaml"))
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
	if cfg.Transcript.Enabled {
		t.Error("example config should ship with transcripts disabled")
	}
	if cfg.Transcript.Database.Password != "example" {
		t.Errorf("Transcript.Database.Password = %q, want %q", cfg.Transcript.Database.Password, "example")
	}
	if cfg.Server.ReadLimit != 65536 {
		t.Errorf("Server.ReadLimit = %d, want %d", cfg.Server.ReadLimit, 65536)
	}
}
