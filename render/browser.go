package render

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/camera"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Focus is the singleton naming the body the camera follows. A nil or dead
// ref leaves the camera where it is.
type Focus struct {
	Ref *ecs.EntityRef
}

// FocusSystem keeps the camera target on the focused body. It runs after the
// update scheduler so the target matches the positions being drawn.
type FocusSystem struct {
	Camera ecs.Singleton[camera.Camera]
	Focus  ecs.Singleton[Focus]
}

func (s *FocusSystem) Execute(frame *ecs.UpdateFrame) {
	cam, focus := s.Camera.Get(), s.Focus.Get()
	if cam == nil || focus == nil || focus.Ref == nil {
		return
	}

	id, ok := frame.Storage.ResolveEntityRef(focus.Ref)
	if !ok {
		focus.Ref = nil
		return
	}
	if pos, ok := positionOf(frame.Storage, id); ok {
		cam.Target = pos
	}
}

func positionOf(storage *ecs.Storage, id ecs.EntityId) (r3.Vec, bool) {
	if body := ecs.ReadComponent[orbit.Body](storage, id); body != nil {
		return body.Position, true
	}
	if sat := ecs.ReadComponent[scene.Satellite](storage, id); sat != nil {
		return sat.World, true
	}
	return r3.Vec{}, false
}

type bodyView struct {
	*scene.Name
	*scene.Appearance
	*orbit.Body
}

type moonView struct {
	*scene.Name
	*scene.Appearance
	*scene.Satellite
}

type bodyRow struct {
	ID       ecs.EntityId
	Name     string
	Kind     scene.BodyKind
	Distance float64
	Position r3.Vec
}

// bodyRows lists every orbiting entity whose name contains filter, ignoring
// case, ordered by kind and then by distance from what it circles.
func bodyRows(storage *ecs.Storage, filter string) []bodyRow {
	filter = strings.ToLower(filter)
	keep := func(name scene.Name) bool {
		return filter == "" || strings.Contains(strings.ToLower(string(name)), filter)
	}

	var rows []bodyRow
	for id, b := range ecs.NewView[bodyView](storage).Iter() {
		if keep(*b.Name) {
			rows = append(rows, bodyRow{ID: id, Name: string(*b.Name), Kind: b.Appearance.Kind, Distance: b.Body.Distance, Position: b.Body.Position})
		}
	}
	for id, m := range ecs.NewView[moonView](storage).Iter() {
		if keep(*m.Name) {
			rows = append(rows, bodyRow{ID: id, Name: string(*m.Name), Kind: m.Appearance.Kind, Distance: m.Satellite.Moon.Distance, Position: m.Satellite.World})
		}
	}

	slices.SortFunc(rows, func(a, b bodyRow) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Distance, b.Distance),
			strings.Compare(a.Name, b.Name),
		)
	})
	return rows
}

// SpawnBodyBrowser adds the "Bodies" window: a filterable table of every
// orbiting body. Selecting a row makes the camera follow that body.
func SpawnBodyBrowser(storage *ecs.Storage) ecs.EntityId {
	focus := ecs.NewSingleton[Focus](storage)
	var filter string

	return storage.Spawn(Overlay{
		Render: func() {
			imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(420, 320), imgui.CondOnce)
			if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil)
			imgui.SameLine()
			if imgui.Button("Clear") {
				filter = ""
			}

			var selected ecs.EntityId
			if f := focus.Get(); f.Ref != nil {
				selected = f.Ref.Id
			}

			rows := bodyRows(storage, filter)
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
			if imgui.BeginTableV("BodyTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Name")
				imgui.TableSetupColumn("Kind")
				imgui.TableSetupColumn("Distance")
				imgui.TableSetupColumn("Position")
				imgui.TableHeadersRow()

				for _, row := range rows {
					imgui.TableNextRow()

					imgui.TableNextColumn()
					if imgui.SelectableBoolV(row.Name, row.ID == selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
						focus.Get().Ref = storage.CreateEntityRef(row.ID)
					}

					imgui.TableNextColumn()
					imgui.Text(row.Kind.String())
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%.1f", row.Distance))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%.1f, %.1f, %.1f", row.Position.X, row.Position.Y, row.Position.Z))
				}
				imgui.EndTable()
			}

			imgui.Text(fmt.Sprintf("Total: %d bodies", len(rows)))
			imgui.End()
		},
	})
}
