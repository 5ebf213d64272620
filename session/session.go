package session

import (
	"math/rand"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/metrics"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const origin = "session"

// defaultRandSeed is used when no *rand.Rand is injected via WithRand,
// so a Session's behavior is reproducible out of the box.
const defaultRandSeed = 1

// Session bundles the selected method, its dimensionality, best-seen
// tracking, and a reference to the catalogue it was built from
// (spec.md §3 "Session"). The zero value is not usable; build one with
// Open.
type Session struct {
	cat    *catalogue.Catalogue
	logger *diag.Logger
	rec    *metrics.Recorder
	rng    *rand.Rand

	methodName string
	d          int
	inst       method.Capability

	hasBest bool
	bestX   vector.Vector
	bestF   float64

	awaitingValue bool
	closed        bool
}

// Open builds a Session from a previously populated catalogue.Catalogue.
func Open(cat *catalogue.Catalogue, opts ...Option) (*Session, error) {
	if cat == nil {
		return nil, solveerr.New(solveerr.InvalidArgument, origin, "catalogue must not be nil")
	}

	s := &Session{
		cat:    cat,
		logger: diag.NewDefault(),
		rng:    rand.New(rand.NewSource(defaultRandSeed)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rec.SessionOpened()

	return s, nil
}

// SetVerbosity sets the Session's diagnostics Level (spec.md §6).
func (s *Session) SetVerbosity(level diag.Level) {
	s.logger.SetLevel(level)
}

func (s *Session) requireOpen() error {
	if s.closed {
		return solveerr.New(solveerr.StateViolation, origin, "session is closed")
	}

	return nil
}

func (s *Session) requireBound() error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if s.inst == nil {
		return solveerr.New(solveerr.StateViolation, origin, "no method is selected")
	}

	return nil
}

// Select binds session to the first catalogue entry named name that can
// be instantiated for dimensionality d, discarding any previously bound
// method instance first (spec.md §4.1 "method_select").
func (s *Session) Select(name string, d int) error {
	if err := s.requireOpen(); err != nil {
		return err
	}

	inst, err := s.cat.Select(name, d, catalogue.Env{Rand: s.rng, Logger: s.logger})
	if err != nil {
		s.logger.Errorf(origin, "method_select(%q, d=%d): %v", name, d, err)

		return err
	}

	if s.inst != nil {
		_ = s.inst.Close()
	}

	s.inst = inst
	s.methodName = name
	s.d = d
	s.hasBest = false
	s.bestX = nil
	s.bestF = 0
	s.awaitingValue = false

	s.rec.MethodSelected(name)
	s.logger.Infof(origin, "selected method %q for d=%d", name, d)

	return nil
}

// Info returns the bound method's structured description.
func (s *Session) Info() (method.Info, error) {
	if err := s.requireBound(); err != nil {
		return method.Info{}, err
	}

	return s.inst.Info(), nil
}

// HParamSet forwards a typed hyper-parameter setter to the bound method.
func (s *Session) HParamSet(name string, v params.Value) error {
	if err := s.requireBound(); err != nil {
		return err
	}

	return s.inst.HParamSet(name, v)
}

// HParamGet forwards a typed hyper-parameter getter to the bound method.
func (s *Session) HParamGet(name string) (params.Value, error) {
	if err := s.requireBound(); err != nil {
		return params.Value{}, err
	}

	return s.inst.HParamGet(name)
}

// Seed forwards an initial point to the bound method. Valid only in the
// method's initial mode; the driver forwards blindly and the method
// enforces the restriction (spec.md §4.3).
func (s *Session) Seed(v vector.Vector) error {
	if err := s.requireBound(); err != nil {
		return err
	}

	return s.inst.Seed(v)
}

// Next produces the next input point to evaluate. It fails with
// solveerr.StateViolation if no method is selected, if the method has
// already completed, or if Next is called twice without an intervening
// SetValue/SetValueWithGradient (spec.md §5 "A method may not be
// re-entered").
func (s *Session) Next() (vector.Vector, error) {
	if err := s.requireBound(); err != nil {
		return nil, err
	}
	if s.awaitingValue {
		return nil, solveerr.New(solveerr.StateViolation, origin, "next called again before set_value")
	}

	outcome, err := s.inst.Done()
	if err != nil {
		return nil, err
	}
	if outcome == method.OutcomeDone {
		return nil, solveerr.New(solveerr.StateViolation, origin, "next called after completion")
	}

	out, err := vector.New(s.d)
	if err != nil {
		return nil, err
	}
	if err := s.inst.Next(out); err != nil {
		s.logger.Errorf(origin, "next: %v", err)

		return nil, err
	}

	s.awaitingValue = true
	s.rec.Iteration(s.methodName)
	s.logger.Debugf(origin, "next(%s) -> %s", s.methodName, out)

	return out, nil
}

// SetValue records f(v)=fv and updates best-seen tracking. It fails with
// solveerr.StateViolation if the session is closed or no method is
// selected, and otherwise returns whatever error the bound method's
// SetValue reports. It does not check that a Next call preceded it.
func (s *Session) SetValue(v vector.Vector, fv float64) error {
	if err := s.requireBound(); err != nil {
		return err
	}

	err := s.inst.SetValue(v, fv)
	s.awaitingValue = false
	if err != nil {
		s.logger.Errorf(origin, "set_value: %v", err)

		return err
	}

	s.updateBest(v, fv)
	s.logger.Debugf(origin, "set_value(%s, %g)", v, fv)

	return nil
}

// SetValueWithGradient is as SetValue, but also supplies a gradient. If
// the bound method does not support gradients (solveerr.Unsupported),
// the driver falls back to SetValue, per spec.md §4.2.
func (s *Session) SetValueWithGradient(v vector.Vector, fv float64, g vector.Vector) error {
	if err := s.requireBound(); err != nil {
		return err
	}

	err := s.inst.SetValueWithGradient(v, fv, g)
	if solveerr.Is(err, solveerr.Unsupported) {
		err = s.inst.SetValue(v, fv)
	}
	s.awaitingValue = false
	if err != nil {
		s.logger.Errorf(origin, "set_value_with_gradient: %v", err)

		return err
	}

	s.updateBest(v, fv)
	s.logger.Debugf(origin, "set_value_with_gradient(%s, %g, %s)", v, fv, g)

	return nil
}

// updateBest records (v, fv) as the new best-seen pair whenever fv is
// strictly less than the current best, or no best has been recorded yet
// — ties keep the earlier winner (spec.md §4.2, testable property 2).
func (s *Session) updateBest(v vector.Vector, fv float64) {
	if !s.hasBest || fv < s.bestF {
		s.bestX = vector.Copy(v)
		s.bestF = fv
		s.hasBest = true
	}
}

// Done reports the bound method's completion state.
func (s *Session) Done() (method.Outcome, error) {
	if err := s.requireBound(); err != nil {
		return method.OutcomeFailure, err
	}

	return s.inst.Done()
}

// Best returns the best-seen input and value observed so far via
// SetValue/SetValueWithGradient. ok is false if no value has been
// observed yet.
func (s *Session) Best() (x vector.Vector, f float64, ok bool) {
	if !s.hasBest {
		return nil, 0, false
	}

	return vector.Copy(s.bestX), s.bestF, true
}

// Result retrieves a named result from the bound method. It fails with
// solveerr.NotReady if the method has not yet reported OutcomeDone
// (spec.md §4.3 "result must first verify done == complete").
func (s *Session) Result(name string, out interface{}) error {
	if err := s.requireBound(); err != nil {
		return err
	}

	outcome, err := s.inst.Done()
	if err != nil {
		return err
	}
	if outcome != method.OutcomeDone {
		return solveerr.New(solveerr.NotReady, origin, "result requested before completion")
	}

	return s.inst.Result(name, out)
}

// Close releases all method-owned resources, regardless of the bound
// method's completion state (spec.md §5 "Cancellation and timeouts").
// Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.inst != nil {
		err = s.inst.Close()
		s.inst = nil
	}
	s.rec.SessionClosed()

	return err
}
