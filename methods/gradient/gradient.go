package gradient

import (
	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "gradient"

const defaultStep = 1e-3

type state int

const (
	stateInitial state = iota
	stateRunning
	stateDone
)

// Method is the forward-difference gradient estimator's state machine.
type Method struct {
	method.Base

	d int

	regHP  *params.Registry
	regRes *params.Registry

	x0      vector.Vector
	haveX0  bool
	step    float64
	stepVec vector.Vector

	fx0  float64
	k    int
	grad vector.Vector

	st       state
	haveGrad bool
}

func init() {
	catalogue.Register(name, "builtin:gradient", func(d int, _ catalogue.Env) (method.Capability, error) {
		if d < 1 {
			return nil, solveerr.New(solveerr.InvalidArgument, name, "d must be >= 1")
		}

		return New(d), nil
	})
}

// New builds a gradient-estimate instance for dimensionality d. x0 must
// be set via HParamSet before the first Next call.
func New(d int) *Method {
	m := &Method{Base: method.Base{MethodName: name}, d: d, step: defaultStep}

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "x0", Type: params.KindVector, Desc: "the base point to differentiate around",
		Set: func(v params.Value) error {
			vec, _ := v.Vector()
			if len(vec) != m.d {
				return solveerr.New(solveerr.InvalidArgument, name, "x0 must have length d")
			}
			m.x0 = vector.Copy(vec)
			m.haveX0 = true
			m.reset()

			return nil
		},
		Get: func() (params.Value, error) {
			if !m.haveX0 {
				return params.Value{}, solveerr.New(solveerr.InvalidArgument, name, "x0 not yet set")
			}

			return params.Vec(vector.Copy(m.x0)), nil
		},
	})
	m.regHP.Define(params.Spec{
		Name: "step", Type: params.KindFloat, Desc: "uniform per-axis step size (overridden by step_vec)",
		Set: func(v params.Value) error { f, _ := v.Float(); m.step = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.step), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "step_vec", Type: params.KindVector, Desc: "per-dimension step sizes, overriding step",
		Set: func(v params.Value) error {
			vec, _ := v.Vector()
			if len(vec) != m.d {
				return solveerr.New(solveerr.InvalidArgument, name, "step_vec must have length d")
			}
			m.stepVec = vector.Copy(vec)

			return nil
		},
		Get: func() (params.Value, error) {
			if m.stepVec == nil {
				return params.Value{}, solveerr.New(solveerr.InvalidArgument, name, "step_vec not set")
			}

			return params.Vec(vector.Copy(m.stepVec)), nil
		},
	})

	m.regRes = params.NewRegistry(name)
	m.regRes.Define(params.Spec{
		Name: "gradient", Type: params.KindVector, Desc: "the estimated gradient",
		Get: func() (params.Value, error) {
			if !m.haveGrad {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "gradient not yet available")
			}

			return params.Vec(vector.Copy(m.grad)), nil
		},
	})

	return m
}

func (m *Method) reset() {
	m.st = stateInitial
	m.k = 0
	m.haveGrad = false
	m.grad, _ = vector.New(m.d)
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "gradient: forward-difference gradient estimate",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.11"},
	}
}

func (m *Method) HParamSet(paramName string, v params.Value) error { return m.regHP.Set(paramName, v) }
func (m *Method) HParamGet(paramName string) (params.Value, error) { return m.regHP.Get(paramName) }
func (m *Method) Result(paramName string, out interface{}) error {
	v, err := m.regRes.Get(paramName)
	if err != nil {
		return err
	}
	vec, _ := v.Vector()
	p, ok := out.(*vector.Vector)
	if !ok {
		return solveerr.New(solveerr.InvalidArgument, name, "result out must be *vector.Vector")
	}
	*p = vec

	return nil
}

func (m *Method) hk(k int) float64 {
	if m.stepVec != nil {
		return m.stepVec[k]
	}

	return m.step
}

func (m *Method) Next(out vector.Vector) error {
	if len(out) != m.d {
		return solveerr.New(solveerr.InvalidArgument, name, "out must have length d")
	}
	if !m.haveX0 {
		return solveerr.New(solveerr.InvalidArgument, name, "x0 must be set before next")
	}

	switch m.st {
	case stateInitial:
		copy(out, m.x0)
	case stateRunning:
		copy(out, m.x0)
		out[m.k] += m.hk(m.k)
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

func (m *Method) SetValue(v vector.Vector, fv float64) error {
	if len(v) != m.d {
		return solveerr.New(solveerr.InvalidArgument, name, "v must have length d")
	}

	switch m.st {
	case stateInitial:
		m.fx0 = fv
		m.k = 0
		m.st = stateRunning

		return nil
	case stateRunning:
		m.grad[m.k] = (fv - m.fx0) / m.hk(m.k)
		m.k++
		if m.k == m.d {
			m.haveGrad = true
			m.st = stateDone
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

	return method.OutcomeDone, nil
}
