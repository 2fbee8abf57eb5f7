package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/orrery/camera"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/scene"
)

const (
	orbitSensitivity = 0.005 // radians per pixel dragged
	keyOrbitStep     = 0.03
	wheelDollyFactor = 0.9
)

// DragState remembers the cursor between frames while the left button is held.
type DragState struct {
	Dragging bool
	LastX    int
	LastY    int
}

// CameraControlSystem orbits the camera with a left-button drag or the arrow
// keys, dollies it with the wheel, and nudges the speed with +/-. Input that
// ImGui has captured is ignored.
type CameraControlSystem struct {
	Camera  ecs.Singleton[camera.Camera]
	Speed   ecs.Singleton[scene.SpeedControl]
	Drag    ecs.Singleton[DragState]
	Capture ecs.Singleton[InputCapture]
}

func (s *CameraControlSystem) Execute(frame *ecs.UpdateFrame) {
	cam := s.Camera.Get()
	drag := s.Drag.Get()
	if cam == nil || drag == nil {
		return
	}

	capture := s.Capture.Get()
	if capture == nil || !capture.Mouse {
		s.mouse(cam, drag)
	} else {
		drag.Dragging = false
	}
	if capture == nil || !capture.Keyboard {
		s.keys(cam)
	}
}

func (s *CameraControlSystem) mouse(cam *camera.Camera, drag *DragState) {
	mx, my := ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		drag.Dragging = false
	} else if !drag.Dragging {
		drag.Dragging = true
	} else {
		cam.Orbit(-float64(mx-drag.LastX)*orbitSensitivity, -float64(my-drag.LastY)*orbitSensitivity)
	}
	drag.LastX, drag.LastY = mx, my

	if _, dy := ebiten.Wheel(); dy > 0 {
		cam.Dolly(wheelDollyFactor)
	} else if dy < 0 {
		cam.Dolly(1 / wheelDollyFactor)
	}
}

func (s *CameraControlSystem) keys(cam *camera.Camera) {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		cam.Orbit(-keyOrbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		cam.Orbit(keyOrbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		cam.Orbit(0, -keyOrbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		cam.Orbit(0, keyOrbitStep)
	}

	speed := s.Speed.Get()
	if speed == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		speed.Nudge(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		speed.Nudge(-1)
	}
}
