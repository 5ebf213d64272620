package brentdekker

import (
	"math"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "brentdekker"

const (
	defaultMacheps = 1e-10
	defaultT       = 1e-6
)

type state int

const (
	stateNeedA state = iota
	stateNeedB
	stateRunning
	stateDone
)

// Method is the Brent-Dekker root finder's state machine.
type Method struct {
	method.Base

	regHP  *params.Registry
	regRes *params.Registry

	x0, x1     float64
	macheps, t float64

	a, b, c    float64
	fa, fb, fc float64
	d, e       float64

	st       state
	root     float64
	haveRoot bool
	failed   bool
}

func init() {
	catalogue.Register(name, "builtin:brentdekker", func(d int, _ catalogue.Env) (method.Capability, error) {
		if d != 1 {
			return nil, solveerr.New(solveerr.Unsupported, name, "brentdekker is single-variate; d must be 1")
		}

		return New(), nil
	})
}

// New builds a Brent-Dekker instance. x_0/x_1 must be set via HParamSet
// before the first Next call.
func New() *Method {
	m := &Method{
		Base:    method.Base{MethodName: name},
		macheps: defaultMacheps,
		t:       defaultT,
	}

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "x_0", Type: params.KindFloat, Desc: "first bracket endpoint",
		Set: func(v params.Value) error { f, _ := v.Float(); m.x0 = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.x0), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "x_1", Type: params.KindFloat, Desc: "second bracket endpoint",
		Set: func(v params.Value) error { f, _ := v.Float(); m.x1 = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.x1), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "macheps", Type: params.KindFloat, Desc: "relative tolerance factor",
		Set: func(v params.Value) error { f, _ := v.Float(); m.macheps = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.macheps), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "t", Type: params.KindFloat, Desc: "absolute tolerance term",
		Set: func(v params.Value) error { f, _ := v.Float(); m.t = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.t), nil },
	})

	m.regRes = params.NewRegistry(name)
	m.regRes.Define(params.Spec{
		Name: "root", Type: params.KindFloat, Desc: "the located root",
		Get: func() (params.Value, error) {
			if !m.haveRoot {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "root not yet available")
			}

			return params.Float(m.root), nil
		},
	})

	return m
}

func (m *Method) reset() {
	m.st = stateNeedA
	m.haveRoot = false
	m.failed = false
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "brentdekker: hybrid bisection/interpolation root finder",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.6"},
	}
}

func (m *Method) HParamSet(paramName string, v params.Value) error { return m.regHP.Set(paramName, v) }
func (m *Method) HParamGet(paramName string) (params.Value, error) { return m.regHP.Get(paramName) }
func (m *Method) Result(paramName string, out interface{}) error {
	v, err := m.regRes.Get(paramName)
	if err != nil {
		return err
	}
	f, _ := v.Float()
	p, ok := out.(*float64)
	if !ok {
		return solveerr.New(solveerr.InvalidArgument, name, "result out must be *float64")
	}
	*p = f

	return nil
}

func (m *Method) Next(out vector.Vector) error {
	if len(out) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "brentdekker requires a length-1 vector")
	}
	switch m.st {
	case stateNeedA:
		out[0] = m.x0
	case stateNeedB:
		out[0] = m.x1
	case stateRunning:
		out[0] = m.b
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}

	return 1
}

func (m *Method) SetValue(v vector.Vector, fv float64) error {
	if len(v) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "brentdekker requires a length-1 vector")
	}

	switch m.st {
	case stateNeedA:
		m.a, m.fa = v[0], fv
		m.st = stateNeedB

		return nil
	case stateNeedB:
		m.b, m.fb = v[0], fv
		if m.fa*m.fb > 0 {
			m.failed = true
			m.st = stateDone

			return solveerr.New(solveerr.BracketInvalid, name, "endpoints do not bracket a sign change")
		}
		m.c, m.fc = m.a, m.fa
		m.d, m.e = m.b-m.a, m.b-m.a

		return m.iterate()
	case stateRunning:
		m.fb = fv

		return m.iterate()
	default:
		return solveerr.New(solveerr.StateViolation, name, "set_value called after completion")
	}
}

// iterate performs one Brent-Dekker refinement round, per spec.md §4.6:
// re-initialize the bracket triple if the sign invariant broke, rotate
// to keep |f_b| the smaller magnitude, test termination, then choose an
// interpolation or bisection step and advance b toward the root.
func (m *Method) iterate() error {
	if sign(m.fb) == sign(m.fc) {
		m.c, m.fc = m.a, m.fa
		m.d, m.e = m.b-m.a, m.b-m.a
	}
	if math.Abs(m.fc) < math.Abs(m.fb) {
		m.a, m.b, m.c = m.b, m.c, m.b
		m.fa, m.fb, m.fc = m.fb, m.fc, m.fb
	}

	tol := 2*m.macheps*math.Abs(m.b) + m.t
	mm := (m.c - m.b) / 2

	if math.Abs(mm) <= tol || m.fb == 0 {
		m.root, m.haveRoot, m.st = m.b, true, stateDone

		return nil
	}

	if math.Abs(m.e) < tol || math.Abs(m.fa) <= math.Abs(m.fb) {
		m.d, m.e = mm, mm
	} else {
		s := m.fb / m.fa
		var p, q float64
		if m.a == m.c {
			p = 2 * mm * s
			q = 1 - s
		} else {
			q = m.fa / m.fc
			r := m.fb / m.fc
			p = s * (2*mm*q*(q-r) - (m.b-m.a)*(r-1))
			q = (q - 1) * (r - 1) * (s - 1)
		}
		if p > 0 {
			q = -q
		} else {
			p = -p
		}

		if 2*p < 3*mm*q-math.Abs(tol*q) && p < math.Abs(s*q/2) {
			m.e = m.d
			m.d = p / q
		} else {
			m.d, m.e = mm, mm
		}
	}

	m.a, m.fa = m.b, m.fb
	if math.Abs(m.d) > tol {
		m.b += m.d
	} else {
		m.b += sign(mm) * tol
	}
	m.st = stateRunning

	return nil
}

func (m *Method) Done() (method.Outcome, error) {
	if m.st != stateDone {
		return method.OutcomeContinue, nil
	}
	if m.failed {
		return method.OutcomeFailure, nil
	}

	return method.OutcomeDone, nil
}
