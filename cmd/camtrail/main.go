//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"camera-trail/internal/app"
	"camera-trail/internal/capture"
	"camera-trail/internal/config"
	"camera-trail/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.ParseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := config.SetupLogging(os.Stderr, cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		if msg := capture.UnavailableMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		slog.Error("camtrail: exiting", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	src, err := engine.OpenSource(cfg, false)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			slog.Warn("camtrail: closing source", "err", err)
		}
	}()

	game := app.New(eng, src, cfg.Scale, cfg.FrameTimeout)
	ebiten.SetWindowTitle("Camera Trail")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	slog.Info("camtrail: closed", "ticks", eng.Stats().Ticks)
	return nil
}
