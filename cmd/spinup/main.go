// Package main provides the spinup entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/jscyril/spinup/internal/app"
	"github.com/jscyril/spinup/internal/audio"
	"github.com/jscyril/spinup/internal/config"
	"github.com/jscyril/spinup/internal/logger"
	"github.com/jscyril/spinup/internal/playback"
	"github.com/jscyril/spinup/internal/probe"
	"github.com/jscyril/spinup/internal/ui"
	"github.com/jscyril/spinup/pkg/events"
)

var (
	cli        = kingpin.New("spinup", "Browse directories and play wav/ogg/mp3/flac files in the terminal")
	dir        = cli.Flag("dir", "Starting directory (default: working directory)").Short('d').Envar("SPINUP_DIR").String()
	logFile    = cli.Flag("log-file", "Write JSON logs to this file (default: no logging)").Envar("SPINUP_LOG_FILE").String()
	verbose    = cli.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	tickRate   = cli.Flag("tick-rate", "Redraw interval while playing").Default("66ms").Duration()
	sampleRate = cli.Flag("sample-rate", "Speaker sample rate in Hz").Default("44100").Int()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(cli.Parse(os.Args[1:]))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the player together. Using a separate function ensures
// deferred cleanup runs before the process exits.
func run() error {
	cfg := &config.Config{
		StartDir:   *dir,
		LogFile:    *logFile,
		TickRate:   *tickRate,
		SampleRate: *sampleRate,
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Finalize(); err != nil {
		return err
	}

	closer, err := logger.Init(logger.Config{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer closer.Close()

	zlog.Info().
		Str("dir", cfg.StartDir).
		Int("sample_rate", cfg.SampleRate).
		Dur("tick_rate", cfg.TickRate).
		Msg("starting")

	bus := events.NewBus()
	defer bus.Close()

	engine, err := audio.NewBeepEngine(cfg.SampleRate, cfg.BufferDuration, bus)
	if err != nil {
		return errors.Wrap(err, "failed to initialize audio output")
	}
	defer engine.Close()

	loop := app.NewLoop(playback.NewController(engine), probe.NewFileProber(), app.Options{
		TickRate:    cfg.TickRate,
		IdleTimeout: cfg.IdleTimeout,
	})
	loop.Open(cfg.StartDir)
	defer func() {
		if err := loop.Shutdown(); err != nil {
			zlog.Warn().Err(err).Msg("stop playback on exit")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := ui.Run(loop, bus, tea.WithContext(ctx)); err != nil {
		if ctx.Err() != nil {
			zlog.Info().Msg("terminated by signal")
			return nil
		}
		return errors.Wrap(err, "failed to run terminal UI")
	}

	zlog.Info().Dur("uptime", time.Since(start)).Msg("exiting")
	return nil
}
