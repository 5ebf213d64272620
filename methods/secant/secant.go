package secant

import (
	"math"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "secant"

// epsMachine is the protected denominator threshold below which a
// secant step is declared numerically singular (spec.md §4.8).
const epsMachine = 1e-6

const defaultFTol = 1e-10

type state int

const (
	stateNeedX0 state = iota
	stateNeedX1
	stateRunning
	stateDone
)

// Method is the secant root finder's state machine.
type Method struct {
	method.Base

	regHP  *params.Registry
	regRes *params.Registry

	x0, x1 float64
	fTol   float64

	xPrev, fPrev float64
	xCur         float64 // next point to request

	st       state
	root     float64
	haveRoot bool
	failed   bool
}

func init() {
	catalogue.Register(name, "builtin:secant", func(d int, _ catalogue.Env) (method.Capability, error) {
		if d != 1 {
			return nil, solveerr.New(solveerr.Unsupported, name, "secant is single-variate; d must be 1")
		}

		return New(), nil
	})
}

// New builds a secant instance. x_0/x_1 must be set via HParamSet before
// the first Next call.
func New() *Method {
	m := &Method{
		Base: method.Base{MethodName: name},
		fTol: defaultFTol,
	}

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "x_0", Type: params.KindFloat, Desc: "first bootstrap point",
		Set: func(v params.Value) error { f, _ := v.Float(); m.x0 = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.x0), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "x_1", Type: params.KindFloat, Desc: "second bootstrap point",
		Set: func(v params.Value) error { f, _ := v.Float(); m.x1 = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.x1), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "f_tol", Type: params.KindFloat, Desc: "residual termination tolerance",
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

func (m *Method) reset() {
	m.st = stateNeedX0
	m.haveRoot = false
	m.failed = false
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "secant: two-point linear interpolation root finder",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.8"},
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
		return solveerr.New(solveerr.InvalidArgument, name, "secant requires a length-1 vector")
	}
	switch m.st {
	case stateNeedX0:
		out[0] = m.x0
	case stateNeedX1:
		out[0] = m.x1
	case stateRunning:
		out[0] = m.xCur
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

func (m *Method) SetValue(v vector.Vector, fv float64) error {
	if len(v) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "secant requires a length-1 vector")
	}

	switch m.st {
	case stateNeedX0:
		m.xPrev, m.fPrev = v[0], fv
		m.st = stateNeedX1

		return nil
	case stateNeedX1, stateRunning:
		return m.step(v[0], fv)
	default:
		return solveerr.New(solveerr.StateViolation, name, "set_value called after completion")
	}
}

// step advances the recurrence given the (x, fv) pair just received,
// following spec.md §4.8's uniform update once two points are known.
func (m *Method) step(x, fv float64) error {
	if math.Abs(fv) < m.fTol {
		m.root, m.haveRoot, m.st = x, true, stateDone

		return nil
	}

	denom := fv - m.fPrev
	if math.Abs(denom) < epsMachine {
		m.failed = true
		m.st = stateDone

		return solveerr.New(solveerr.NumericalSingularity, name, "secant denominator below protection threshold")
	}

	xNext := x - fv*(x-m.xPrev)/denom
	m.xPrev, m.fPrev = x, fv
	m.xCur = xNext
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
