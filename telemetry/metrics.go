// Package telemetry exports frame, collision and level counters to
// Prometheus.
package telemetry

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/stagehand/actor"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stagehand"

// Metrics implements level.Observer and actor.Observer.
type Metrics struct {
	frames      prometheus.Counter
	stepSeconds prometheus.Histogram
	events      prometheus.Counter
	collisions  *prometheus.CounterVec
	transitions *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	throws      *prometheus.CounterVec
}

var (
	_ level.Observer = (*Metrics)(nil)
	_ actor.Observer = (*Metrics)(nil)
)

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames ticked by the level manager.",
		}),
		stepSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "physics_step_seconds",
			Help:      "Wall time of one world step including queued events.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_executed_total",
			Help:      "One-shot events run after world steps.",
		}),
		collisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collisions_total",
			Help:      "Collisions resolved, by dominant and other role.",
		}, []string{"dominant", "other"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Level manager transitions by target mode.",
		}, []string{"mode"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_ended_total",
			Help:      "Levels ended by outcome.",
		}, []string{"outcome"}),
		throws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projectile_throws_total",
			Help:      "Projectile throw requests by result.",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{m.frames, m.stepSeconds, m.events, m.collisions, m.transitions, m.outcomes, m.throws} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Transition(mode level.Mode) {
	m.transitions.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) LevelEnded(won bool) {
	outcome := "lost"
	if won {
		outcome = "won"
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Frame(step time.Duration, events int) {
	m.frames.Inc()
	m.stepSeconds.Observe(step.Seconds())
	m.events.Add(float64(events))
}

func (m *Metrics) Collision(dominant, other actor.Role) {
	m.collisions.WithLabelValues(dominant.String(), other.String()).Inc()
}

func (m *Metrics) Throw(dropped bool) {
	result := "launched"
	if dropped {
		result = "dropped"
	}
	m.throws.WithLabelValues(result).Inc()
}

// Server exposes /metrics for a registry.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// Serve starts the metrics endpoint in the background.
func Serve(addr string, g prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	s := &Server{
		srv:    &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		logger: common.Logger("telemetry"),
	}
	go func() {
		s.logger.Info("metrics available", "addr", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server", "err", err)
		}
	}()
	return s
}

func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	return s.srv.Close()
}

// Handler returns the /metrics handler without starting a listener.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
