package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"

	"camera-trail/internal/capture"
	"camera-trail/internal/config"
	"camera-trail/internal/engine"
	"camera-trail/internal/mode"
	"camera-trail/internal/present"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		outDir string
		ticks  uint64
		keys   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "run the effect over a frame source and write PNG frames",
		Long: "render drives the trail engine from the configured source (an image glob\n" +
			"or the synthetic pattern) and saves every composited frame as a PNG.\n" +
			"--keys scripts input, e.g. \"0:3,40:t,80:c\" selects life at tick 0,\n" +
			"toggles the trail at tick 40 and clears it at tick 80.",
		Args: cobra.NoArgs,
	}
	s := bindSettings(cmd)
	cmd.Flags().StringVar(&outDir, "out", "frames", "output directory")
	cmd.Flags().Uint64Var(&ticks, "ticks", 0, "stop after this many ticks (0 runs until the source ends)")
	cmd.Flags().StringVar(&keys, "keys", "", "scripted key presses as tick:key pairs")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Offline rendering defaults to an image sequence. A config file or
		// the flag can still pick another source.
		if !cmd.Flags().Changed("source") {
			s.cfg.Source = config.SourceFiles
		}
		if err := s.resolve(cmd.Flags()); err != nil {
			return err
		}
		if err := config.SetupLogging(cmd.ErrOrStderr(), s.cfg.LogLevel); err != nil {
			return err
		}
		if err := checkRenderSource(s.cfg, ticks); err != nil {
			return err
		}
		script, err := parseKeyScript(keys)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return render(ctx, s.cfg, outDir, ticks, script)
	}
	return cmd
}

// checkRenderSource rejects sources render cannot use and runs that would
// never end.
func checkRenderSource(cfg *config.Config, ticks uint64) error {
	switch {
	case cfg.Source == config.SourceCamera:
		return fmt.Errorf("render: the camera source is only available in the live front-ends")
	case cfg.Source == config.SourcePattern && ticks == 0:
		return fmt.Errorf("render: --ticks is required with the pattern source")
	case cfg.Source == config.SourceFiles && cfg.Loop && ticks == 0:
		return fmt.Errorf("render: --ticks is required when looping the input")
	}
	return nil
}

func render(ctx context.Context, cfg *config.Config, outDir string, ticks uint64, script keyScript) error {
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	src, err := engine.OpenSource(cfg, false)
	if err != nil {
		if msg := capture.UnavailableMessage(err); msg != "" {
			slog.Warn("render: " + msg)
		}
		return err
	}
	defer src.Close()

	out, err := present.NewPNGDir(outDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sink := engine.SinkFunc(func(img *image.RGBA) error {
		if err := out.Present(img); err != nil {
			return err
		}
		if ticks > 0 && eng.Stats().Ticks >= ticks {
			cancel()
		}
		return nil
	})
	events := func() []mode.Event { return script[eng.Stats().Ticks] }

	if err := eng.Run(ctx, src, sink, events); err != nil {
		return err
	}
	slog.Info("render: done", "frames", out.Written(), "dir", outDir, "mode", eng.State().Mode.String())
	return nil
}
