// Package layout projects the scene through a camera into flat screen-space
// primitives that any backend can draw: star points, orbit line segments and
// body discs sorted back to front.
package layout

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/camera"
	"github.com/plus3/orrery/scene"
	"github.com/plus3/orrery/starfield"
	"gonum.org/v1/gonum/spatial/r3"
)

// MinBodyRadius keeps distant bodies visible as at least a single pixel.
const MinBodyRadius = 1.0

var (
	PathColor = colorful.Color{R: 1, G: 1, B: 1}
	yAxis     = r3.Vec{Y: 1}
)

// Sprite is a filled disc on screen.
type Sprite struct {
	X, Y   float64
	Radius float64
	Depth  float64
	Color  colorful.Color
	Kind   scene.BodyKind
	Layer  int // starfield layer, -1 for bodies
}

// Segment is a line between two screen points.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Frame is everything visible for one camera position.
type Frame struct {
	Stars    []Sprite
	Segments []Segment
	Bodies   []Sprite
}

// Builder accumulates a Frame. Reuse one builder across frames to keep the
// slices' capacity.
type Builder struct {
	Camera *camera.Camera
	frame  Frame
}

// NewBuilder returns a builder projecting through cam.
func NewBuilder(cam *camera.Camera) *Builder {
	return &Builder{Camera: cam}
}

// Reset empties the frame but keeps the allocations.
func (b *Builder) Reset() {
	b.frame.Stars = b.frame.Stars[:0]
	b.frame.Segments = b.frame.Segments[:0]
	b.frame.Bodies = b.frame.Bodies[:0]
}

// AddStars projects every star of field after applying its spin. The layer's
// point size attenuates with depth like a point sprite's.
func (b *Builder) AddStars(field *starfield.Starfield) {
	if field == nil {
		return
	}
	spin := r3.NewRotation(field.Spin, yAxis)

	for layerIdx, layer := range field.Layers {
		for i := range layer.Len() {
			star := layer.At(i)
			p, ok := b.Camera.Project(spin.Rotate(star.Position))
			if !ok {
				continue
			}
			b.frame.Stars = append(b.frame.Stars, Sprite{
				X:      p.X,
				Y:      p.Y,
				Radius: layer.PointSize * b.Camera.PointScale(p.Depth) / 2,
				Depth:  p.Depth,
				Color:  star.Color,
				Layer:  layerIdx,
			})
		}
	}
}

// AddPath projects a polyline. Segments with an endpoint outside the depth
// range are dropped.
func (b *Builder) AddPath(points []r3.Vec) {
	var prev camera.Projection
	prevOk := false
	for _, pt := range points {
		p, ok := b.Camera.Project(pt)
		if ok && prevOk {
			b.frame.Segments = append(b.frame.Segments, Segment{X0: prev.X, Y0: prev.Y, X1: p.X, Y1: p.Y})
		}
		prev, prevOk = p, ok
	}
}

// AddBody projects a body at pos.
func (b *Builder) AddBody(pos r3.Vec, look scene.Appearance) {
	p, ok := b.Camera.Project(pos)
	if !ok {
		return
	}
	b.frame.Bodies = append(b.frame.Bodies, Sprite{
		X:      p.X,
		Y:      p.Y,
		Radius: max(look.Radius*b.Camera.Scale(p.Depth), MinBodyRadius),
		Depth:  p.Depth,
		Color:  look.Color,
		Kind:   look.Kind,
		Layer:  -1,
	})
}

// Frame sorts the bodies far to near and returns the accumulated frame. The
// result is only valid until the next Reset.
func (b *Builder) Frame() *Frame {
	slices.SortStableFunc(b.frame.Bodies, func(x, y Sprite) int {
		return cmp.Compare(y.Depth, x.Depth)
	})
	return &b.frame
}
