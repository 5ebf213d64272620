// Package metrics instruments sessions and iterations with Prometheus,
// following the conventions the retrieval pack's services repo
// (jhkimqd-chaos-utils) uses for its own long-running chaos-run loops.
// spec.md does not mention metrics at all; this is the ambient
// observability stack SPEC_FULL.md §1 requires carrying forward
// regardless of the distilled spec's silence on the concern.
//
// A Recorder is nil-safe: a session built without one (the default)
// skips instrumentation at the cost of a single nil check per call.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder records solveloop driver activity against a caller-supplied
// *prometheus.Registry. The zero value is not usable; build one with
// NewRecorder.
type Recorder struct {
	sessionsOpen  prometheus.Gauge
	iterations    *prometheus.CounterVec
	methodSelects *prometheus.CounterVec
}

// NewRecorder registers solveloop's metrics against reg and returns a
// Recorder. Registering the same Recorder's metrics against the same
// Registry twice returns an error from reg.Register, which callers can
// surface however they see fit; solveloop itself never calls
// NewRecorder implicitly.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	r := &Recorder{
		sessionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solveloop",
			Name:      "sessions_open",
			Help:      "Number of currently open solveloop sessions.",
		}),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solveloop",
			Name:      "iterations_total",
			Help:      "Number of Next/SetValue round trips driven per method.",
		}, []string{"method"}),
		methodSelects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solveloop",
			Name:      "method_selects_total",
			Help:      "Number of successful method selections per method name.",
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{r.sessionsOpen, r.iterations, r.methodSelects} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// SessionOpened increments the open-session gauge. No-op on a nil Recorder.
func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.sessionsOpen.Inc()
}

// SessionClosed decrements the open-session gauge. No-op on a nil Recorder.
func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.sessionsOpen.Dec()
}

// MethodSelected increments the per-method selection counter. No-op on a
// nil Recorder.
func (r *Recorder) MethodSelected(methodName string) {
	if r == nil {
		return
	}
	r.methodSelects.WithLabelValues(methodName).Inc()
}

// Iteration increments the per-method iteration counter. No-op on a nil
// Recorder.
func (r *Recorder) Iteration(methodName string) {
	if r == nil {
		return
	}
	r.iterations.WithLabelValues(methodName).Inc()
}
