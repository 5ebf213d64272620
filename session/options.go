package session

import (
	"math/rand"

	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/metrics"
)

// Option configures a Session at Open time.
type Option func(*Session)

// WithLogger overrides the Session's diagnostics Logger. If omitted, a
// fresh diag.NewDefault() logger is used.
func WithLogger(l *diag.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVerbosity sets the Session's diagnostics Level directly, without
// requiring the caller to build a Logger. Equivalent to calling
// SetVerbosity after Open.
func WithVerbosity(level diag.Level) Option {
	return func(s *Session) {
		s.logger.SetLevel(level)
	}
}

// WithRand overrides the Session's randomness source, used by methods
// (currently only differential evolution) that need one. If omitted, a
// default deterministic source (seed 1) is used, matching the teacher
// convention of defaulting to a fixed seed rather than a time-based one
// so results are reproducible unless a caller opts out.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithMetrics attaches a metrics.Recorder so session/iteration activity
// is observable via Prometheus. If omitted, metrics are skipped (a nil
// *metrics.Recorder is always safe to call methods on).
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Session) {
		s.rec = rec
	}
}
