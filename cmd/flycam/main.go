// Command flycam runs the fly camera rig, either in an ebiten window driven
// by the keyboard or headless from a scripted timeline.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flycam/config"
	"github.com/plus3/flycam/input"
	"github.com/plus3/flycam/logger"
	"github.com/plus3/flycam/rig"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults are used when empty.")
	headless := flag.Bool("headless", false, "Run without a window, replaying the config's script.")
	duration := flag.Duration("duration", 0, "Stop a headless run after this long. Zero runs until interrupted.")
	debugUI := flag.Bool("debug-ui", false, "Show the Dear ImGui inspector windows.")
	logLevel := flag.String("log-level", "", "Override logging.level from the config.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Init(logger.Config{Level: "error"}).Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	lg := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}).
		With("run", uuid.NewString())

	if err := run(cfg, *configPath, *headless, *duration, *debugUI, lg); err != nil {
		lg.Error("flycam failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, headless bool, duration time.Duration, debugUI bool, lg *slog.Logger) error {
	var reloads <-chan *config.Config
	if configPath != "" {
		watcher, err := config.Watch(configPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		reloads = watcher.Updates
		go logReloadErrors(watcher.Errors, lg)
	}

	var controls rig.Controls
	if headless {
		holds, err := cfg.Holds()
		if err != nil {
			return err
		}
		controls = input.NewScript(holds, cfg.ScriptLoop)
	} else {
		bindings, err := cfg.KeyBindings()
		if err != nil {
			return err
		}
		controls = input.NewKeyboard(bindings)
	}

	w := newWorld(cfg, controls, reloads, debugUI && !headless, lg)
	lg.Info("flycam starting",
		"headless", headless,
		"tick_rate", cfg.TickRate,
		"camera", cfg.Camera.Position.Vec(),
		"target", cfg.Target.Position.Vec())

	if headless {
		return runHeadless(w, cfg.TickRate, duration, lg)
	}

	game := newGame(cfg.TickRate, debugUI)
	game.World = w
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	lg.Info("flycam stopped", "ticks", w.Scheduler.GetStats().Ticks)
	return nil
}

func runHeadless(w *world, tickRate int, duration time.Duration, lg *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	w.Scheduler.Run(ctx, time.Second/time.Duration(tickRate))

	stats := w.Scheduler.GetStats()
	lg.Info("flycam stopped", "ticks", stats.Ticks, "executions", stats.TotalExecutions)
	for _, sys := range stats.Systems {
		lg.Debug("system timing", "system", sys.Name, "avg", sys.AvgDuration, "max", sys.MaxDuration)
	}
	return nil
}

func logReloadErrors(errs <-chan error, lg *slog.Logger) {
	for err := range errs {
		lg.Warn("config reload failed, keeping previous config", "error", err)
	}
}
