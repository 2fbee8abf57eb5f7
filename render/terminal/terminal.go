// Package terminal renders the scene as coloured characters on a tcell
// screen, for machines without a GPU or for watching over ssh.
package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/camera"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/render/layout"
	"github.com/plus3/orrery/scene"
)

// A terminal cell is about twice as tall as it is wide, so the camera renders
// into a viewport with two pixel rows per cell row.
const rowsPerCell = 2

const (
	bodyGlyph = '●'
	pathGlyph = '·'
)

var (
	starGlyphs = []rune{'.', '+', '*'}
	pathStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 90))
	statusBar  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Screen is the singleton holding the terminal screen being drawn.
type Screen struct {
	tcell.Screen
}

// Renderer is the render system for terminal output. The bottom row is kept
// for a status line.
type Renderer struct {
	Screen ecs.Singleton[Screen]
	Camera ecs.Singleton[camera.Camera]
	Sky    ecs.Singleton[scene.Sky]
	Speed  ecs.Singleton[scene.SpeedControl]

	Bodies ecs.Query[struct {
		*scene.Appearance
		*orbit.Body
	}]
	Moons ecs.Query[struct {
		*scene.Appearance
		*scene.Satellite
	}]
	Paths ecs.Query[struct{ *scene.Path }]

	builder *layout.Builder
}

func (r *Renderer) Execute(frame *ecs.UpdateFrame) {
	screen := r.Screen.Get()
	cam := r.Camera.Get()
	if screen == nil || screen.Screen == nil || cam == nil {
		return
	}

	if r.builder == nil {
		r.builder = layout.NewBuilder(cam)
	}
	r.builder.Camera = cam
	r.builder.Reset()

	if sky := r.Sky.Get(); sky != nil {
		r.builder.AddStars(sky.Field)
	}
	for path := range r.Paths.Values() {
		r.builder.AddPath(path.Path.Points)
	}
	for body := range r.Bodies.Values() {
		r.builder.AddBody(body.Body.Position, *body.Appearance)
	}
	for moon := range r.Moons.Values() {
		r.builder.AddBody(moon.Satellite.World, *moon.Appearance)
	}

	speed := orbit.DefaultSpeed
	if control := r.Speed.Get(); control != nil {
		speed = control.Value()
	}

	screen.Clear()
	draw(screen.Screen, r.builder.Frame())
	drawStatus(screen.Screen, speed)
	screen.Show()
}

func draw(s tcell.Screen, f *layout.Frame) {
	for _, star := range f.Stars {
		glyph := starGlyphs[min(max(star.Layer, 0), len(starGlyphs)-1)]
		s.SetContent(int(star.X), int(star.Y/rowsPerCell), glyph, nil, style(star.Color))
	}

	for _, seg := range f.Segments {
		drawLine(s, seg)
	}

	for _, body := range f.Bodies {
		drawDisc(s, body)
	}
}

func drawLine(s tcell.Screen, seg layout.Segment) {
	dx := seg.X1 - seg.X0
	dy := (seg.Y1 - seg.Y0) / rowsPerCell
	steps := int(math.Ceil(max(math.Abs(dx), math.Abs(dy))))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := seg.X0 + dx*t
		y := seg.Y0/rowsPerCell + dy*t
		s.SetContent(int(x), int(y), pathGlyph, nil, pathStyle)
	}
}

// drawDisc fills every cell whose centre lies inside the body's disc, and
// always at least the cell under the body's centre.
func drawDisc(s tcell.Screen, body layout.Sprite) {
	st := style(body.Color)
	s.SetContent(int(body.X), int(body.Y/rowsPerCell), bodyGlyph, nil, st)

	r := body.Radius
	minCol, maxCol := int(body.X-r), int(body.X+r)
	minRow, maxRow := int((body.Y-r)/rowsPerCell), int((body.Y+r)/rowsPerCell)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cx := float64(col) + 0.5
			cy := (float64(row) + 0.5) * rowsPerCell
			if math.Hypot(cx-body.X, cy-body.Y) <= r {
				s.SetContent(col, row, bodyGlyph, nil, st)
			}
		}
	}
}

func drawStatus(s tcell.Screen, speed float64) {
	w, h := s.Size()
	if h < 1 {
		return
	}
	line := []rune(fmt.Sprintf(" speed %.1fx   +/- speed   arrows orbit   [ ] zoom   q quit", speed))
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(line) {
			ch = line[x]
		}
		s.SetContent(x, h-1, ch, nil, statusBar)
	}
}

func style(c colorful.Color) tcell.Style {
	r, g, b := c.Clamped().RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// viewport converts a terminal size into the camera's pixel size.
func viewport(cols, rows int) (int, int) {
	return cols, max(rows-1, 1) * rowsPerCell
}

// SchedulerObserver receives the update scheduler's timings after each frame.
type SchedulerObserver interface {
	ObserveScheduler(stats *ecs.SchedulerStats)
}

// Options tune Run.
type Options struct {
	// Interval between frames; zero means 60 frames per second.
	Interval time.Duration
	Stats    SchedulerObserver
}

const (
	orbitStep  = 0.05
	dollyInOut = 0.9
)

// Run drives the scene on an initialised screen until ctx is cancelled or the
// user quits. Events are read on a separate goroutine; all scene state is
// only touched from the calling goroutine.
func Run(ctx context.Context, s tcell.Screen, storage *ecs.Storage, update *ecs.Scheduler, opts Options) error {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}

	w, h := s.Size()
	cam := ecs.NewSingleton[camera.Camera](storage, camera.New(viewport(w, h)))
	speed := ecs.NewSingleton[scene.SpeedControl](storage, scene.NewSpeedControl(orbit.DefaultSpeed))
	ecs.NewSingleton[Screen](storage).Get().Screen = s

	render := ecs.NewScheduler(storage)
	render.Register(&Renderer{})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	clock := ecs.NewClock(nil)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !handle(s, ev, cam.Get(), speed.Get()) {
				return nil
			}

		case <-ticker.C:
			tick := clock.Next()
			update.Once(scene.WithSpeed(ctx, speed.Get().Value()), tick)
			if opts.Stats != nil {
				opts.Stats.ObserveScheduler(update.GetStats())
			}
			render.Once(ctx, tick)
		}
	}
}

// handle applies one event and reports whether the loop should keep going.
func handle(s tcell.Screen, ev tcell.Event, cam *camera.Camera, speed *scene.SpeedControl) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.Sync()
		cam.SetViewport(viewport(ev.Size()))

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			cam.Orbit(-orbitStep, 0)
		case tcell.KeyRight:
			cam.Orbit(orbitStep, 0)
		case tcell.KeyUp:
			cam.Orbit(0, -orbitStep)
		case tcell.KeyDown:
			cam.Orbit(0, orbitStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case '+', '=':
				speed.Nudge(1)
			case '-', '_':
				speed.Nudge(-1)
			case '[':
				cam.Dolly(1 / dollyInOut)
			case ']':
				cam.Dolly(dollyInOut)
			}
		}
	}
	return true
}
