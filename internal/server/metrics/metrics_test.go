package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/logging"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}
	assert.NotPanics(t, func() {
		r.AuthOutcome("success")
		r.Lifecycle("connect", "created")
	})
}

func TestPrometheus_Counts(t *testing.T) {
	p := NewPrometheus()

	p.AuthOutcome("success")
	p.AuthOutcome("success")
	p.AuthOutcome("expired")
	p.Lifecycle("revoke", "not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(p.auth.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.auth.WithLabelValues("expired")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.auth.WithLabelValues("signature_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.lifecycle.WithLabelValues("revoke", "not_found")))
}

func TestPrometheus_Handler(t *testing.T) {
	p := NewPrometheus()
	p.AuthOutcome("missing_fields")

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tgauth_assertions_total{result="missing_fields"} 1`)
}

func TestPrometheus_ServeStopsOnCancel(t *testing.T) {
	p := NewPrometheus()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx, "127.0.0.1:0", nopLogger{}) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("metrics endpoint did not stop")
	}
}

func TestPrometheus_ServeBadAddress(t *testing.T) {
	err := NewPrometheus().Serve(context.Background(), "127.0.0.1:99999", nopLogger{})
	require.Error(t, err)
}

