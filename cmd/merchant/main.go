package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/merchant-guide/internal/config"
	"github.com/rickgao/merchant-guide/internal/database"
	"github.com/rickgao/merchant-guide/internal/runner"
	"github.com/rickgao/merchant-guide/internal/server"
	"github.com/rickgao/merchant-guide/internal/session"
	"github.com/rickgao/merchant-guide/internal/version"
	"github.com/rickgao/merchant-guide/internal/writer"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	debug := flag.Bool("debug", false, "enable per-line trace logging")
	serve := flag.Bool("serve", false, "serve sessions over websocket instead of reading a file")
	showVersion := flag.Bool("version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  merchant [flags] [input-file]

Reads trade declarations and questions one per line and prints an answer for
each question. Input defaults to %s; use - for stdin.

Flags:
`, config.DefaultInputFile)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging; stdout is reserved for answers.
	logger := newLogger(os.Stderr, cfg.Log, *debug)
	slog.SetDefault(logger)

	logger.Debug("starting merchant",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	transcript, closeTranscript, err := openTranscript(ctx, cfg.Transcript, logger)
	if err != nil {
		logger.Error("failed to open transcript", "error", err)
		os.Exit(1)
	}

	sessionCfg := session.Config{
		UnknownMessage:   cfg.Session.UnknownMessage,
		WarnNonCanonical: *cfg.Session.WarnNonCanonical,
	}

	if *serve {
		err = runServer(ctx, cfg, sessionCfg, transcript, logger)
	} else {
		input := cfg.Input.DefaultFile
		if flag.NArg() > 0 {
			input = flag.Arg(0)
		}
		err = runFile(ctx, input, cfg, sessionCfg, transcript, logger)
	}

	closeTranscript()

	if err != nil {
		logger.Error("merchant failed", "error", err)
		os.Exit(1)
	}
}

// runFile evaluates every line of input in a single session, printing answers to stdout.
func runFile(ctx context.Context, input string, cfg *config.Config, sessionCfg session.Config, transcript writer.Sink, logger *slog.Logger) error {
	src, closeSrc, err := runner.OpenSource(input)
	if err != nil {
		return err
	}
	defer closeSrc()

	var sink writer.Sink = writer.NewConsoleWriter(os.Stdout)
	if transcript != nil {
		sink = writer.Multi(sink, transcript)
	}

	r := runner.New(
		runner.Config{
			SkipBlankLines: cfg.Session.SkipBlankLines,
			MaxLineBytes:   cfg.Session.MaxLineBytes,
		},
		session.New(sessionCfg, logger),
		sink,
		logger,
	)
	_, err = r.Run(ctx, src)
	return err
}

// runServer serves websocket sessions until ctx is cancelled.
func runServer(ctx context.Context, cfg *config.Config, sessionCfg session.Config, transcript writer.Sink, logger *slog.Logger) error {
	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		ReadLimit:       cfg.Server.ReadLimit,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		SkipBlankLines:  cfg.Session.SkipBlankLines,
	}, sessionCfg, transcript, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.ListenAndServe)

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	logger.Info("merchant serving",
		"ws_url", fmt.Sprintf("ws://localhost%s/ws", cfg.Server.Addr),
	)

	return g.Wait()
}

// openTranscript connects the transcript writer when enabled. The returned
// sink is nil when transcripts are disabled; the close func is always safe to call.
func openTranscript(ctx context.Context, cfg config.TranscriptConfig, logger *slog.Logger) (writer.Sink, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect transcript database: %w", err)
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	w := writer.NewTranscriptWriter(writer.WriterConfig{
		BatchSize:     cfg.BatchSize,
		FlushInterval: writer.DefaultWriterConfig().FlushInterval,
	}, pool, logger)
	if err := w.Start(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	closeFn := func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		if err := w.Close(closeCtx); err != nil {
			logger.Warn("transcript close failed", "error", err)
		}
		pool.Close()
	}
	return w, closeFn, nil
}

// newLogger builds the process logger. debug forces the debug level.
func newLogger(out io.Writer, cfg config.LogConfig, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if debug {
		opts.Level = slog.LevelDebug
	}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
