package main

import (
	"log/slog"

	"github.com/plus3/flycam/camera"
	"github.com/plus3/flycam/config"
	"github.com/plus3/flycam/debugui"
	"github.com/plus3/flycam/ecs"
	"github.com/plus3/flycam/input"
	"github.com/plus3/flycam/rig"
)

// world is the storage and scheduler for one flycam session plus the handles
// needed to apply config reloads.
type world struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	camera ecs.EntityId
	target ecs.EntityId
	cfg    *config.Config
	logger *slog.Logger
}

// newWorld spawns one camera locked onto one target and registers the
// systems in tick order. controls is installed as the camera.Input singleton.
// With debugUI the ImGui windows are spawned and ImguiSystem runs first, so
// keyboard capture gates the same tick's input.
func newWorld(cfg *config.Config, controls rig.Controls, reloads <-chan *config.Config, debugUI bool, logger *slog.Logger) *world {
	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	debugui.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[camera.Input](storage, camera.Input{Controls: controls})
	ecs.NewSingleton[camera.InputFocus](storage)

	w := &world{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		cfg:       cfg,
		logger:    logger,
	}

	w.target = camera.SpawnTarget(storage, cfg.Target.Position.Vec())
	w.camera = camera.SpawnCamera(storage, cfg.Camera.Position.Vec(), flyCamera(cfg), w.target)

	if debugUI {
		w.Scheduler.Register(&debugui.ImguiSystem{})
		debugui.Spawn(storage, w.Scheduler)
	}
	if reloads != nil {
		w.Scheduler.Register(&reloadSystem{Reloads: reloads, World: w})
	}
	w.Scheduler.Register(&input.ScriptClockSystem{})
	camera.RegisterSystems(w.Scheduler, camera.Options{
		Logger:          logger,
		PoseLogInterval: cfg.PoseLogInterval,
	})

	return w
}

func flyCamera(cfg *config.Config) camera.FlyCamera {
	cam := camera.DefaultFlyCamera()
	cam.Speed = cfg.Camera.Speed
	cam.Boost = cfg.Camera.Boost
	cam.Up = cfg.Camera.Up.Vec()
	return cam
}

// apply updates the running session from a reloaded config. Camera position
// is left alone so a reload does not teleport the camera.
func (w *world) apply(cfg *config.Config) {
	if cam := ecs.ReadComponent[camera.FlyCamera](w.Storage, w.camera); cam != nil {
		next := flyCamera(cfg)
		next.Disabled = cam.Disabled
		*cam = next
	}

	if t := ecs.ReadComponent[camera.Transform](w.Storage, w.target); t != nil {
		t.Position = cfg.Target.Position.Vec()
	}

	var in *camera.Input
	if w.Storage.ReadSingleton(&in) {
		switch controls := in.Controls.(type) {
		case *input.Keyboard:
			// Validate already resolved every key name.
			bindings, _ := cfg.KeyBindings()
			controls.Bindings = bindings
		case *input.Script:
			holds, _ := cfg.Holds()
			in.Controls = input.NewScript(holds, cfg.ScriptLoop)
		}
	}

	if cfg.TickRate != w.cfg.TickRate || cfg.Logging != w.cfg.Logging || cfg.PoseLogInterval != w.cfg.PoseLogInterval {
		w.logger.Warn("tick_rate, logging and pose_log_interval take effect on restart")
	}
	w.cfg = cfg

	w.logger.Info("config reloaded",
		"speed", cfg.Camera.Speed,
		"boost", cfg.Camera.Boost,
		"target", cfg.Target.Position.Vec())
}

// reloadSystem picks up at most one reloaded config per tick and applies it
// after the tick's systems have run.
type reloadSystem struct {
	Reloads <-chan *config.Config
	World   *world
}

func (s *reloadSystem) Execute(frame *ecs.UpdateFrame) {
	select {
	case cfg, ok := <-s.Reloads:
		if !ok || cfg == nil {
			return
		}
		frame.Commands.Defer(func() { s.World.apply(cfg) })
	default:
	}
}
