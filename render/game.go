package render

import (
	"context"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/orrery/camera"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/scene"
)

// SchedulerObserver receives the update scheduler's timings after each frame.
type SchedulerObserver interface {
	ObserveScheduler(stats *ecs.SchedulerStats)
}

// Game implements ebiten.Game. Update runs input handling and the scene
// update scheduler; Draw runs the render scheduler and the ImGui overlay.
type Game struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Stats     SchedulerObserver

	input   *ecs.Scheduler
	render  *ecs.Scheduler
	ctx     context.Context
	clock   *ecs.Clock
	backend *ecs.Singleton[ImguiBackend]
	screen  *ecs.Singleton[Screen]
	camera  *ecs.Singleton[camera.Camera]
	speed   *ecs.Singleton[scene.SpeedControl]
	capture *ecs.Singleton[InputCapture]
}

// NewGame wires the render singletons, the controls window and schedulers around
// an already populated storage. The update scheduler is usually the one from
// scene.NewUpdateScheduler. The game stops when ctx is cancelled.
func NewGame(ctx context.Context, storage *ecs.Storage, update *ecs.Scheduler, backend *ebitenbackend.EbitenBackend, width, height int) *Game {
	g := &Game{
		Storage:   storage,
		Scheduler: update,
		ctx:       ctx,
		clock:     ecs.NewClock(nil),
		backend:   ecs.NewSingleton[ImguiBackend](storage, ImguiBackend{EbitenBackend: backend}),
		screen:    ecs.NewSingleton[Screen](storage),
		camera:    ecs.NewSingleton[camera.Camera](storage, camera.New(width, height)),
		speed:     ecs.NewSingleton[scene.SpeedControl](storage, scene.NewSpeedControl(orbit.DefaultSpeed)),
		capture:   ecs.NewSingleton[InputCapture](storage),
	}
	ecs.NewSingleton[DragState](storage)
	ecs.NewSingleton[Focus](storage)

	SpawnControls(storage)

	g.input = ecs.NewScheduler(storage)
	g.input.Register(&OverlaySystem{})
	g.input.Register(&CameraControlSystem{})

	g.render = ecs.NewScheduler(storage)
	g.render.Register(&FocusSystem{})
	g.render.Register(&RenderSystem{})

	return g
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if capture := g.capture.Get(); capture == nil || !capture.Keyboard {
		if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
	}

	tick := g.clock.Next()

	backend := g.backend.Get()
	backend.BeginFrame()
	g.input.Once(g.ctx, tick)
	backend.EndFrame()

	g.Scheduler.Once(scene.WithSpeed(g.ctx, g.speed.Get().Value()), tick)
	if g.Stats != nil {
		g.Stats.ObserveScheduler(g.Scheduler.GetStats())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.render.Once(g.ctx, ecs.Tick{})
	g.backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.Get().SetViewport(outsideWidth, outsideHeight)
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
