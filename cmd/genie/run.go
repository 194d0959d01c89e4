package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genie-sim/genie/internal/actions"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/director"
	"github.com/genie-sim/genie/internal/core/event"
	"github.com/genie-sim/genie/internal/core/script"
	"github.com/genie-sim/genie/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Direct a scene until it stops or is interrupted",
	RunE:  runScene,
}

func init() {
	runCmd.Flags().String("scene", "", "scene file (overrides scene.path)")
	runCmd.Flags().Int("fps", 0, "simulation steps per second (overrides director.fps)")
	rootCmd.AddCommand(runCmd)
}

func runScene(cmd *cobra.Command, _ []string) error {
	// 1. Load config
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s, _ := cmd.Flags().GetString("scene"); s != "" {
		cfg.Scene.Path = s
	}
	if cmd.Flags().Changed("fps") {
		cfg.Director.FPS, _ = cmd.Flags().GetInt("fps")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	transition, err := director.ParseTransition(cfg.Director.Transition)
	if err != nil {
		return err
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load scene
	printSection("Scene")
	actors, acts, closeFn, err := loadScene(cfg, cfg.Scene.Path, log)
	if err != nil {
		return err
	}
	defer closeFn()
	printOK(cfg.Scene.Path)
	printScene(actors, acts)
	fmt.Println()

	// 4. Director
	d := director.New(
		director.WithClock(clock.New(cfg.Director.Step())),
		director.WithLogger(log),
		director.WithTransition(transition),
	)

	// Interrupts stop the director at a frame boundary.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	installStopper(d, acts, sigCh, log)

	// 5. Metrics
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		rec.Subscribe(d.Bus())
	}

	printReady(fmt.Sprintf("directing at %d fps (%s transitions)", cfg.Director.FPS, transition))
	fmt.Println()

	if err := d.DirectScene(actors, acts); err != nil {
		return err
	}

	if reg != nil {
		fields, err := metrics.Fields(reg)
		if err != nil {
			return err
		}
		log.Info("final metrics", fields...)
		if cfg.Metrics.Textfile != "" {
			if err := metrics.WriteTextfile(reg, cfg.Metrics.Textfile); err != nil {
				return err
			}
			log.Info("metrics written", zap.String("path", cfg.Metrics.Textfile))
		}
	}
	return nil
}

// installStopper adds a StopOnSignal to acts and to every scene d switches to
// afterwards, so signals stop the director whichever scene is running.
func installStopper(d *director.Director, acts *script.Actions, signals <-chan os.Signal, log *zap.Logger) *actions.StopOnSignal {
	stopper := actions.NewStopOnSignal(math.MinInt, signals, log)
	acts.Add(stopper)
	event.Subscribe(d.Bus(), func(event.SceneChanged) {
		d.Actions().Add(stopper)
	})
	return stopper
}
