// Package metrics exports session counters over a Prometheus endpoint.
package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tilesnake/internal/game"
)

const namespace = "tilesnake"

// Subscriber is the event source the exporter listens to.
type Subscriber interface {
	Subscribe(t game.EventType, fn game.EventHandler)
}

// Exporter owns a private registry so several sessions or tests never
// collide on the global one.
type Exporter struct {
	registry *prometheus.Registry

	ticks      prometheus.Counter
	eaten      prometheus.Counter
	turns      prometheus.Counter
	cleared    prometheus.Counter
	frames     prometheus.Counter
	length     prometheus.Gauge
	frameDelta prometheus.Histogram
}

func New() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Tile steps taken by the chain.",
		}),
		eaten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "food_eaten_total",
			Help:      "Food items consumed.",
		}),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "direction_changes_total",
			Help:      "Accepted steering inputs.",
		}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_cleared_total",
			Help:      "Sessions whose food field was emptied.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames driven through the session.",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_length",
			Help:      "Current number of chain segments.",
		}),
		frameDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_delta_seconds",
			Help:      "Time between consecutive frames.",
			Buckets:   []float64{.004, .008, .016, .033, .050, .100},
		}),
	}
	e.registry.MustRegister(e.ticks, e.eaten, e.turns, e.cleared, e.frames, e.length, e.frameDelta)
	return e
}

// Attach binds the exporter to a session's events. A nil exporter ignores
// the call.
func (e *Exporter) Attach(s Subscriber) {
	if e == nil {
		return
	}
	s.Subscribe(game.EventTick, func(ev game.Event) {
		e.ticks.Inc()
		e.length.Set(float64(ev.Length))
	})
	s.Subscribe(game.EventFoodEaten, func(ev game.Event) {
		e.eaten.Inc()
		e.length.Set(float64(ev.Length))
	})
	s.Subscribe(game.EventDirectionChanged, func(game.Event) { e.turns.Inc() })
	s.Subscribe(game.EventFieldCleared, func(game.Event) { e.cleared.Inc() })
}

// ObserveFrame records one rendered frame.
func (e *Exporter) ObserveFrame(delta time.Duration) {
	if e == nil {
		return
	}
	e.frames.Inc()
	e.frameDelta.Observe(delta.Seconds())
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled. It blocks; run it
// in its own goroutine.
func (e *Exporter) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if logger != nil {
		logger.Printf("metrics on http://%s/metrics", addr)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
