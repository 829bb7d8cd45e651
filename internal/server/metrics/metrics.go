// Package metrics counts authentication outcomes and lifecycle operations.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives one call per validated assertion and per lifecycle
// operation. result is a failure kind, a lifecycle status or "success".
type Recorder interface {
	AuthOutcome(result string)
	Lifecycle(op, result string)
}

// Noop discards everything.
type Noop struct{}

func (Noop) AuthOutcome(string)       {}
func (Noop) Lifecycle(string, string) {}

// Prometheus exports the counters through a registry.
type Prometheus struct {
	reg       *prometheus.Registry
	auth      *prometheus.CounterVec
	lifecycle *prometheus.CounterVec
}

func NewPrometheus() *Prometheus {
	p := &Prometheus{
		reg: prometheus.NewRegistry(),
		auth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tgauth_assertions_total",
			Help: "Telegram login assertions by validation result",
		}, []string{"result"}),
		lifecycle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tgauth_lifecycle_operations_total",
			Help: "Linked identity operations by operation and status",
		}, []string{"op", "result"}),
	}
	p.reg.MustRegister(p.auth, p.lifecycle)
	return p
}

func (p *Prometheus) AuthOutcome(result string) {
	p.auth.WithLabelValues(result).Inc()
}

func (p *Prometheus) Lifecycle(op, result string) {
	p.lifecycle.WithLabelValues(op, result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled.
func (p *Prometheus) Serve(ctx context.Context, addr string, l logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		l.Info(ctx, "Stopping metrics endpoint...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	l.Info(ctx, "Starting metrics endpoint", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
