// Package render draws the scene into an ebiten window with a Dear ImGui
// overlay for the speed slider and frame statistics.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/camera"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/render/layout"
	"github.com/plus3/orrery/scene"
)

// Screen is the singleton holding the image being drawn this frame.
type Screen struct {
	*ebiten.Image
}

var (
	background = color.RGBA{0, 0, 0, 255}
	pathColor  = color.RGBA{255, 255, 255, 90}
)

// haloThreshold is the radius past which a star is drawn as a faint halo
// around a small core instead of a solid disc.
const haloThreshold = 6

type RenderSystem struct {
	Screen ecs.Singleton[Screen]
	Camera ecs.Singleton[camera.Camera]
	Sky    ecs.Singleton[scene.Sky]

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

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	cam := s.Camera.Get()
	if screen == nil || screen.Image == nil || cam == nil {
		return
	}

	if s.builder == nil {
		s.builder = layout.NewBuilder(cam)
	}
	s.builder.Camera = cam
	s.builder.Reset()

	if sky := s.Sky.Get(); sky != nil {
		s.builder.AddStars(sky.Field)
	}
	for path := range s.Paths.Values() {
		s.builder.AddPath(path.Path.Points)
	}
	for body := range s.Bodies.Values() {
		s.builder.AddBody(body.Body.Position, *body.Appearance)
	}
	for moon := range s.Moons.Values() {
		s.builder.AddBody(moon.Satellite.World, *moon.Appearance)
	}

	draw(screen.Image, s.builder.Frame())
}

func draw(dst *ebiten.Image, f *layout.Frame) {
	dst.Fill(background)

	for _, star := range f.Stars {
		c := rgba(star.Color, 255)
		if star.Radius > haloThreshold {
			vector.DrawFilledCircle(dst, float32(star.X), float32(star.Y), float32(star.Radius), rgba(star.Color, 24), true)
			vector.DrawFilledCircle(dst, float32(star.X), float32(star.Y), haloThreshold/2, c, true)
			continue
		}
		vector.DrawFilledCircle(dst, float32(star.X), float32(star.Y), float32(max(star.Radius, 0.5)), c, true)
	}

	for _, seg := range f.Segments {
		vector.StrokeLine(dst, float32(seg.X0), float32(seg.Y0), float32(seg.X1), float32(seg.Y1), 1, pathColor, true)
	}

	for _, body := range f.Bodies {
		vector.DrawFilledCircle(dst, float32(body.X), float32(body.Y), float32(body.Radius), rgba(body.Color, 255), true)
	}
}

func rgba(c colorful.Color, alpha uint8) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	// Premultiplied, as image/color expects.
	a := uint32(alpha)
	return color.RGBA{
		R: uint8(uint32(r) * a / 255),
		G: uint8(uint32(g) * a / 255),
		B: uint8(uint32(b) * a / 255),
		A: alpha,
	}
}
