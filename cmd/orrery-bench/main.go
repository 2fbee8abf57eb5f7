package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/logging"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "How long to run the update loop.")
	stars := flag.Int("stars", 2000, "Number of stars in the dense starfield layer.")
	speed := flag.Float64("speed", orbit.DefaultSpeed, "Orbital speed multiplier.")
	seed := flag.Uint64("seed", 1, "Starfield random seed.")
	interval := flag.Duration("interval", 0, "Pause between frames; 0 runs flat out.")
	flag.Parse()

	logger := logging.New(os.Stderr)

	cfg := scene.DefaultConfig()
	cfg.Starfield.Layers[0].Count = *stars

	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	populateStart := time.Now()
	if err := scene.Populate(storage, cfg, rand.New(rand.NewPCG(*seed, *seed)), logger); err != nil {
		logger.Error("invalid scene", "error", err)
		os.Exit(1)
	}
	update := scene.NewUpdateScheduler(storage, nil)

	report := &Report{
		Duration:     *duration,
		Interval:     *interval,
		Speed:        orbit.ClampSpeed(*speed),
		Stars:        *stars,
		Entities:     storage.CollectStats().TotalEntityCount,
		PopulateTime: time.Since(populateStart),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running update loop", "duration", *duration, "interval", *interval)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	frameCtx := scene.WithSpeed(ctx, *speed)
	clock := ecs.NewClock(nil)
	start := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		update.Once(frameCtx, clock.Next())
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if *interval > 0 {
			select {
			case <-ctx.Done():
				break Loop
			case <-time.After(*interval):
			}
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	report.Scheduler = update.GetStats()
	report.Bodies = finalPositions(storage)
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}
	logger.Info("benchmark complete", "frames", len(report.UpdateTime.Samples))
}

func finalPositions(storage *ecs.Storage) []BodyPosition {
	var out []BodyPosition

	bodies := ecs.NewQuery[struct {
		*scene.Name
		*orbit.Body
	}](storage)
	bodies.Execute()
	for b := range bodies.Values() {
		out = append(out, BodyPosition{Name: string(*b.Name), Position: fmt.Sprintf("%8.2f %8.2f %8.2f", b.Body.Position.X, b.Body.Position.Y, b.Body.Position.Z)})
	}

	moons := ecs.NewQuery[struct {
		*scene.Name
		*scene.Satellite
	}](storage)
	moons.Execute()
	for m := range moons.Values() {
		w := m.Satellite.World
		out = append(out, BodyPosition{Name: string(*m.Name), Position: fmt.Sprintf("%8.2f %8.2f %8.2f", w.X, w.Y, w.Z)})
	}
	return out
}
