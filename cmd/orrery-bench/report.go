package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/orrery/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Interval time.Duration
	Speed    float64
	Stars    int
	Entities int

	// Results
	PopulateTime  time.Duration
	TotalTime     time.Duration
	UpdateTime    Stats
	Scheduler     *ecs.SchedulerStats
	Bodies        []BodyPosition
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type BodyPosition struct {
	Name     string
	Position string
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `# Orrery Update Benchmark

## Configuration
- Run duration:   {{.Duration}}
- Frame interval: {{if .Interval}}{{.Interval}}{{else}}none{{end}}
- Speed:          {{printf "%.1f" .Speed}}x
- Dense stars:    {{.Stars}}
- Entities:       {{.Entities}}
- Populate time:  {{.PopulateTime}}

## Frames
- Frames:     {{len .UpdateTime.Samples}}
- Total time: {{.TotalTime}}
- Update avg: {{.UpdateTime.Avg}}
- Update min: {{.UpdateTime.Min}}
- Update max: {{.UpdateTime.Max}}
{{with .Scheduler}}
## Systems
| System | Runs | Avg | Min | Max |
|--------|------|-----|-----|-----|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}
## Final positions
{{- range .Bodies}}
- {{printf "%-12s" .Name}} {{.Position}}
{{- end}}

## Memory (bytes)
- Heap alloc:  {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- Total alloc: {{.MemStatsStart.TotalAlloc}} -> {{.MemStatsEnd.TotalAlloc}} (delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}})
- GC cycles:   {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
