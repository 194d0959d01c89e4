// Package metrics turns director events into Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/genie-sim/genie/internal/core/event"
)

// Recorder holds the director collectors.
type Recorder struct {
	frames        prometheus.Counter
	updateSteps   prometheus.Counter
	stepsPerFrame prometheus.Histogram
	frameSeconds  prometheus.Histogram
	transitions   prometheus.Counter
	actors        prometheus.Gauge
	actions       prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genie_frames_total",
			Help: "Frames completed by the director.",
		}),
		updateSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genie_update_steps_total",
			Help: "Fixed simulation steps run in update phases.",
		}),
		stepsPerFrame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "genie_update_steps_per_frame",
			Help:    "Update steps run in a single frame.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "genie_frame_duration_seconds",
			Help:    "Wall time spent executing a frame.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genie_scene_transitions_total",
			Help: "Scenes installed through OnNext.",
		}),
		actors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "genie_active_actors",
			Help: "Active actors after the last frame.",
		}),
		actions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "genie_active_actions",
			Help: "Active actions after the last frame.",
		}),
	}
	for _, c := range []prometheus.Collector{
		r.frames, r.updateSteps, r.stepsPerFrame, r.frameSeconds,
		r.transitions, r.actors, r.actions,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Subscribe feeds the recorder from bus.
func (r *Recorder) Subscribe(bus *event.Bus) {
	event.Subscribe(bus, r.frameCompleted)
	event.Subscribe(bus, r.sceneChanged)
}

func (r *Recorder) frameCompleted(e event.FrameCompleted) {
	r.frames.Inc()
	r.updateSteps.Add(float64(e.Updates))
	r.stepsPerFrame.Observe(float64(e.Updates))
	r.frameSeconds.Observe(e.Duration.Seconds())
	r.actors.Set(float64(e.Actors))
	r.actions.Set(float64(e.Actions))
}

func (r *Recorder) sceneChanged(e event.SceneChanged) {
	r.transitions.Inc()
	r.actors.Set(float64(e.Actors))
	r.actions.Set(float64(e.Actions))
}
