package newton

import (
	"math"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "newton"

const epsMachine = 1e-6
const defaultFTol = 1e-10

type state int

const (
	stateInitial state = iota
	stateRunning
	stateDone
)

// Method is the Newton-Raphson root finder's state machine.
type Method struct {
	method.Base

	regHP  *params.Registry
	regRes *params.Registry

	x0   float64
	fTol float64

	xCur float64

	st       state
	root     float64
	haveRoot bool
	failed   bool
}

func init() {
	catalogue.Register(name, "builtin:newton", func(d int, _ catalogue.Env) (method.Capability, error) {
		if d != 1 {
			return nil, solveerr.New(solveerr.Unsupported, name, "newton is single-variate; d must be 1")
		}

		return New(), nil
	})
}

// New builds a Newton-Raphson instance. x_0 must be set via HParamSet
// before the first Next call.
func New() *Method {
	m := &Method{
		Base: method.Base{MethodName: name},
		fTol: defaultFTol,
	}

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "x_0", Type: params.KindFloat, Desc: "starting point",
		Set: func(v params.Value) error { f, _ := v.Float(); m.x0 = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.x0), nil },
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
	m.st = stateInitial
	m.haveRoot = false
	m.failed = false
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "newton: Newton-Raphson root finder (requires a gradient every step)",
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
		return solveerr.New(solveerr.InvalidArgument, name, "newton requires a length-1 vector")
	}
	switch m.st {
	case stateInitial:
		out[0] = m.x0
	case stateRunning:
		out[0] = m.xCur
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

// SetValue is always an error: Newton-Raphson requires a gradient at
// every step (spec.md §4.8 "plain set_value (no gradient) is an error").
func (m *Method) SetValue(vector.Vector, float64) error {
	return solveerr.New(solveerr.InvalidArgument, name, "newton requires set_value_with_gradient")
}

func (m *Method) SetValueWithGradient(v vector.Vector, fv float64, g vector.Vector) error {
	if len(v) != 1 || len(g) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "newton requires length-1 vectors")
	}
	if m.st == stateDone {
		return solveerr.New(solveerr.StateViolation, name, "set_value_with_gradient called after completion")
	}

	if math.Abs(g[0]) < epsMachine {
		m.failed = true
		m.st = stateDone

		return solveerr.New(solveerr.NumericalSingularity, name, "gradient below protection threshold")
	}

	if math.Abs(fv) < m.fTol {
		m.root, m.haveRoot, m.st = v[0], true, stateDone

		return nil
	}

	m.xCur = v[0] - fv/g[0]
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
