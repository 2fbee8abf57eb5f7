// Package metrics exports frame timings, the speed multiplier and per-system
// durations to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Collector implements scene.FrameObserver and the renderers'
// SchedulerObserver. It owns its registry so several collectors can coexist
// in one process.
type Collector struct {
	registry *prometheus.Registry

	frameDuration  prometheus.Histogram
	framesTotal    prometheus.Counter
	speed          prometheus.Gauge
	entities       prometheus.Gauge
	systemDuration *prometheus.GaugeVec
}

func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orrery_frame_duration_seconds",
				Help:    "Time between consecutive update frames",
				Buckets: []float64{0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25, 1},
			},
		),
		framesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_frames_total",
				Help: "Total number of update frames",
			},
		),
		speed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_speed_multiplier",
				Help: "Current orbital speed multiplier",
			},
		),
		entities: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_entities",
				Help: "Number of live entities in the scene",
			},
		),
		systemDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orrery_system_duration_seconds",
				Help: "Most recent execution time of each update system",
			},
			[]string{"system"},
		),
	}

	m.registry.MustRegister(m.frameDuration)
	m.registry.MustRegister(m.framesTotal)
	m.registry.MustRegister(m.speed)
	m.registry.MustRegister(m.entities)
	m.registry.MustRegister(m.systemDuration)

	return m
}

// ObserveFrame records one update frame.
func (m *Collector) ObserveFrame(delta time.Duration, speed float64, entities int) {
	if delta > 0 {
		m.frameDuration.Observe(delta.Seconds())
	}
	m.framesTotal.Inc()
	m.speed.Set(speed)
	m.entities.Set(float64(entities))
}

// ObserveScheduler records the last duration of every system.
func (m *Collector) ObserveScheduler(stats *ecs.SchedulerStats) {
	if stats == nil {
		return
	}
	for _, sys := range stats.Systems {
		m.systemDuration.WithLabelValues(sys.Name).Set(sys.LastDuration.Seconds())
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
