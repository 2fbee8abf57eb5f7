package render

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/ecs"
)

// Overlay is a component holding one Dear ImGui window. Render is called
// once per drawn frame, between the backend's BeginFrame and EndFrame.
type Overlay struct {
	Render func()
}

// InputCapture mirrors whether ImGui wants the mouse or keyboard this frame,
// so scene input handlers can stand aside while a widget is active.
type InputCapture struct {
	Mouse    bool
	Keyboard bool
}

// ImguiBackend is the singleton wrapping the ebiten ImGui backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// OverlaySystem refreshes InputCapture and queues every Overlay to render
// after the frame's systems have run.
type OverlaySystem struct {
	Items   ecs.Query[struct{ *Overlay }]
	Capture ecs.Singleton[InputCapture]
}

func (s *OverlaySystem) Execute(frame *ecs.UpdateFrame) {
	if capture := s.Capture.Get(); capture != nil {
		io := imgui.CurrentIO()
		capture.Mouse = io.WantCaptureMouse()
		capture.Keyboard = io.WantCaptureKeyboard()
	}

	for item := range s.Items.Values() {
		if item.Overlay.Render != nil {
			frame.Commands.Defer(item.Overlay.Render)
		}
	}
}

// RegisterComponents registers the render package's component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Overlay](registry)
}
