package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/logging"
	"github.com/plus3/orrery/metrics"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/render/terminal"
	"github.com/plus3/orrery/scene"
)

type options struct {
	terminal    bool
	speed       float64
	stars       int
	seed        uint64
	width       int
	height      int
	metricsAddr string
	debug       bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.terminal, "terminal", false, "Render in the terminal instead of opening a window.")
	flag.Float64Var(&opts.speed, "speed", orbit.DefaultSpeed, "Initial orbital speed multiplier, clamped to [0.1, 2].")
	flag.IntVar(&opts.stars, "stars", 2000, "Number of stars in the dense starfield layer.")
	flag.Uint64Var(&opts.seed, "seed", 0, "Starfield random seed; 0 picks one at random.")
	flag.IntVar(&opts.width, "width", 1280, "Window width in pixels.")
	flag.IntVar(&opts.height, "height", 720, "Window height in pixels.")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090.")
	flag.BoolVar(&opts.debug, "debug", false, "Show the frame statistics and body browser windows.")
	flag.Parse()

	// The terminal renderer owns the tty, so its logs are held until the
	// screen has been restored.
	var logOut io.Writer = os.Stderr
	held := &lockedBuffer{}
	if opts.terminal {
		logOut = held
	}
	logger := logging.New(logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts, logger)
	stop()

	held.WriteTo(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	cfg := scene.DefaultConfig()
	cfg.Starfield.Layers[0].Count = opts.stars
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	seed := opts.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("starting", "terminal", opts.terminal, "seed", seed, "speed", orbit.ClampSpeed(opts.speed))

	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	render.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	if err := scene.Populate(storage, cfg, rand.New(rand.NewPCG(seed, seed)), logger); err != nil {
		return err
	}
	ecs.NewSingleton[scene.SpeedControl](storage, scene.NewSpeedControl(opts.speed))

	var collector *metrics.Collector
	var observer scene.FrameObserver
	if opts.metricsAddr != "" {
		collector = metrics.NewCollector()
		observer = collector

		go func() {
			logger.Info("serving metrics", "addr", opts.metricsAddr)
			if err := collector.Serve(ctx, opts.metricsAddr); err != nil {
				logger.Error("metrics server stopped", "addr", opts.metricsAddr, "error", err)
			}
		}()
	}
	update := scene.NewUpdateScheduler(storage, observer)

	if opts.terminal {
		return runTerminal(ctx, storage, update, collector)
	}
	return runWindow(ctx, storage, update, collector, opts)
}

func runTerminal(ctx context.Context, storage *ecs.Storage, update *ecs.Scheduler, collector *metrics.Collector) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	var runOpts terminal.Options
	if collector != nil {
		runOpts.Stats = collector
	}
	return terminal.Run(ctx, screen, storage, update, runOpts)
}

func runWindow(ctx context.Context, storage *ecs.Storage, update *ecs.Scheduler, collector *metrics.Collector, opts options) error {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("Orrery", opts.width, opts.height)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := render.NewGame(ctx, storage, update, backend, opts.width, opts.height)
	if collector != nil {
		game.Stats = collector
	}
	if opts.debug {
		render.SpawnStatsWindow(storage)
		render.SpawnBodyBrowser(storage)
	}

	return ebiten.RunGame(game)
}

// lockedBuffer collects log output from several goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}
