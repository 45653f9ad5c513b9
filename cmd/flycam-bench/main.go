// Command flycam-bench measures tick cost with many fly cameras orbiting
// shared targets under scripted input.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flycam/camera"
	"github.com/plus3/flycam/ecs"
	"github.com/plus3/flycam/input"
	"github.com/plus3/flycam/logger"
	"github.com/plus3/flycam/rig"
)

const step = 1.0 / 60.0

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the benchmark should run for.")
	cameraCount := flag.Int("cameras", 10000, "The number of fly cameras to spawn.")
	targetCount := flag.Int("targets", 16, "The number of targets the cameras are spread across.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	lg := logger.Init(logger.Config{Level: "info"})
	if *cameraCount <= 0 || *targetCount <= 0 {
		lg.Error("cameras and targets must be positive", "cameras", *cameraCount, "targets", *targetCount)
		os.Exit(1)
	}

	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[camera.Input](storage, camera.Input{Controls: benchScript()})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&input.ScriptClockSystem{})
	// Pose logging is left off; the benchmark measures the rig itself.
	camera.RegisterSystems(scheduler, camera.Options{
		Logger: slog.New(slog.DiscardHandler),
	})

	lg.Info("populating storage", "cameras", *cameraCount, "targets", *targetCount)
	populate(storage, *cameraCount, *targetCount)

	report := &Report{
		Duration:       *duration,
		Cameras:        *cameraCount,
		Targets:        *targetCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	lg.Info("running benchmark", "duration", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			// A fixed step keeps the scripted timeline identical across runs.
			updateStart := time.Now()
			scheduler.Once(step)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Systems = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		lg.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

// benchScript flies forward and sideways while climbing and diving, so every
// look-at case including passes over the target is exercised.
func benchScript() *input.Script {
	return input.NewScript([]input.Hold{
		{Action: rig.Forward, From: 0, To: 2},
		{Action: rig.Right, From: 1, To: 4},
		{Action: rig.Up, From: 2, To: 5, Boost: true},
		{Action: rig.Backward, From: 4, To: 6},
		{Action: rig.Down, From: 5, To: 8},
		{Action: rig.Left, From: 6, To: 8},
	}, 8)
}

func populate(storage *ecs.Storage, cameras, targets int) {
	ids := make([]ecs.EntityId, targets)
	for i := range ids {
		ids[i] = camera.SpawnTarget(storage, randomPoint(50))
	}

	for i := 0; i < cameras; i++ {
		cam := camera.DefaultFlyCamera()
		cam.Speed = 5 + rand.Float64()*20
		cam.Boost = 3
		camera.SpawnCamera(storage, randomPoint(200), cam, ids[i%len(ids)])
	}
}

func randomPoint(extent float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(rand.Float64()*2 - 1) * extent,
		(rand.Float64()*2 - 1) * extent,
		(rand.Float64()*2 - 1) * extent,
	}
}
