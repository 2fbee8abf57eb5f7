package render

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/scene"
)

// SpawnControls adds the "Controls" window holding the speed slider. The
// slider writes straight into the SpeedControl singleton, creating it at the
// default speed if the storage has none yet.
func SpawnControls(storage *ecs.Storage) ecs.EntityId {
	speed := ecs.NewSingleton[scene.SpeedControl](storage, scene.NewSpeedControl(orbit.DefaultSpeed))

	return storage.Spawn(Overlay{
		Render: func() {
			control := speed.Get()
			value := float32(control.Value())

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			if imgui.BeginV("Controls", nil, imgui.WindowFlagsAlwaysAutoResize) {
				if imgui.SliderFloat("Speed", &value, orbit.MinSpeed, orbit.MaxSpeed) {
					control.Set(float64(value))
				}
			}
			imgui.End()
		},
	})
}

// SpawnStatsWindow adds a window with frame timings and a storage census.
func SpawnStatsWindow(storage *ecs.Storage) ecs.EntityId {
	var census *ecs.StorageStats

	return storage.Spawn(Overlay{
		Render: func() {
			var perf *scene.PerformanceMetrics
			if !storage.ReadSingleton(&perf) {
				return
			}
			if census == nil || perf.Frames%60 == 0 {
				census = storage.CollectStats()
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 90), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)
			if !imgui.BeginV("Stats", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			imgui.Text(fmt.Sprintf("Speed: %.1fx", perf.Speed))
			imgui.Text(fmt.Sprintf("Avg FPS: %.1f", perf.AvgFPS))
			imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms", perf.AvgFrameTime))
			imgui.Text(fmt.Sprintf("Min/Max: %.2f / %.2f ms", perf.MinFrameTime, perf.MaxFrameTime))
			if len(perf.LastFrameSamples) > 0 {
				imgui.PlotLinesFloatPtr("##frametime", &perf.LastFrameSamples[0], int32(len(perf.LastFrameSamples)))
			}

			imgui.Separator()
			imgui.Text(fmt.Sprintf("Entities: %d", census.TotalEntityCount))
			imgui.Text(fmt.Sprintf("Archetypes: %d", census.ArchetypeCount))
			imgui.Text(fmt.Sprintf("Singletons: %d", census.SingletonCount))

			if imgui.TreeNodeStr("Archetypes") {
				const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
				if imgui.BeginTableV("ArchetypeTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
					imgui.TableSetupColumn("Components")
					imgui.TableSetupColumn("Entities")
					imgui.TableHeadersRow()

					for _, arch := range census.ArchetypeBreakdown {
						imgui.TableNextRow()
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprint(arch.ComponentTypes))
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
					}
					imgui.EndTable()
				}
				imgui.TreePop()
			}

			imgui.End()
		},
	})
}
