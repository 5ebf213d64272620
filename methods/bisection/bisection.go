package bisection

import (
	"math"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "bisection"

const (
	defaultXTol = 1e-6
	defaultFTol = 1e-10
)

type state int

const (
	stateNeedA state = iota
	stateNeedB
	stateRunning
	stateDone
)

// Method is the bisection root finder's state machine.
type Method struct {
	method.Base

	regHP  *params.Registry
	regRes *params.Registry

	a, b   float64
	fa, fb float64
	xTol   float64
	fTol   float64

	st      state
	root    float64
	haveRoot bool
	failed   bool
}

func init() {
	catalogue.Register(name, "builtin:bisection", func(d int, _ catalogue.Env) (method.Capability, error) {
		if d != 1 {
			return nil, solveerr.New(solveerr.Unsupported, name, "bisection is single-variate; d must be 1")
		}

		return New(), nil
	})
}

// New builds a bisection instance. lower/upper must be set via HParamSet
// before the first Next call.
func New() *Method {
	m := &Method{
		Base: method.Base{MethodName: name},
		xTol: defaultXTol,
		fTol: defaultFTol,
	}
	m.a, m.b = math.NaN(), math.NaN()

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "lower", Type: params.KindFloat, Desc: "lower bracket endpoint",
		Set: func(v params.Value) error { f, _ := v.Float(); m.a = f; m.resetOnBracketChange(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.a), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "upper", Type: params.KindFloat, Desc: "upper bracket endpoint",
		Set: func(v params.Value) error { f, _ := v.Float(); m.b = f; m.resetOnBracketChange(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.b), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "x_tol", Type: params.KindFloat, Desc: "bracket-width termination tolerance",
		Set: func(v params.Value) error { f, _ := v.Float(); m.xTol = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.xTol), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "f_tol", Type: params.KindFloat, Desc: "value-spread termination tolerance",
		Set: func(v params.Value) error { f, _ := v.Float(); m.fTol = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.fTol), nil },
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

// resetOnBracketChange rewinds the state machine whenever lower/upper is
// reassigned, since the bracket is structural (spec.md §4.2 hparam_set
// "reshapes internal buffers if a structural parameter changes").
func (m *Method) resetOnBracketChange() {
	m.st = stateNeedA
	m.haveRoot = false
	m.failed = false
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "bisection: bracketing root finder",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.7"},
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
	switch p := out.(type) {
	case *float64:
		*p = f
	default:
		return solveerr.New(solveerr.InvalidArgument, name, "result out must be *float64")
	}

	return nil
}

func (m *Method) Next(out vector.Vector) error {
	if len(out) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "bisection requires a length-1 vector")
	}
	switch m.st {
	case stateNeedA:
		out[0] = m.a
	case stateNeedB:
		out[0] = m.b
	case stateRunning:
		out[0] = 0.5 * (m.a + m.b)
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

func (m *Method) SetValue(v vector.Vector, fv float64) error {
	if len(v) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "bisection requires a length-1 vector")
	}

	switch m.st {
	case stateNeedA:
		m.fa = fv
		m.st = stateNeedB

		return nil
	case stateNeedB:
		m.fb = fv

		// Intended three-way swap restoring f(a) < 0 < f(b): spec.md §9
		// flags a source snapshot whose swap sequence clobbers a's value
		// before it is used; this swaps both endpoint and value together.
		if m.fa > 0 && m.fb < 0 {
			m.a, m.b = m.b, m.a
			m.fa, m.fb = m.fb, m.fa
		}
		if !(m.fa < 0 && m.fb > 0) {
			if m.fa == 0 {
				m.root, m.haveRoot, m.st = m.a, true, stateDone

				return nil
			}
			if m.fb == 0 {
				m.root, m.haveRoot, m.st = m.b, true, stateDone

				return nil
			}
			m.failed = true
			m.st = stateDone

			return solveerr.New(solveerr.BracketInvalid, name, "endpoints do not bracket a sign change")
		}
		m.st = stateRunning

		return nil
	case stateRunning:
		x := 0.5 * (m.a + m.b)
		if fv == 0 {
			m.root, m.haveRoot, m.st = x, true, stateDone

			return nil
		}
		if fv < 0 {
			m.a, m.fa = x, fv
		} else {
			m.b, m.fb = x, fv
		}

		if math.Abs(m.b-m.a) < m.xTol || math.Abs(m.fb-m.fa) < m.fTol {
			m.root, m.haveRoot, m.st = 0.5*(m.a+m.b), true, stateDone
		}

		return nil
	default:
		return solveerr.New(solveerr.StateViolation, name, "set_value called after completion")
	}
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
