package trapezoid

import (
	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "trapezoid"

type state int

const (
	stateInitial state = iota
	stateRunning
	stateDone
)

// Method is the trapezoidal rule's state machine.
type Method struct {
	method.Base

	logger *diag.Logger

	regHP  *params.Registry
	regRes *params.Registry

	lower, upper float64
	n            int

	f0, fn float64
	sum    float64
	k      int

	st       state
	area     float64
	haveArea bool
}

func init() {
	catalogue.Register(name, "builtin:trapezoid", func(d int, env catalogue.Env) (method.Capability, error) {
		if d != 1 {
			return nil, solveerr.New(solveerr.Unsupported, name, "trapezoid is single-variate; d must be 1")
		}

		return New(env.Logger), nil
	})
}

// New builds a trapezoid instance. lower/upper/n must be set via
// HParamSet before the first Next call. logger may be nil.
func New(logger *diag.Logger) *Method {
	if logger == nil {
		logger = diag.NewDefault()
	}
	m := &Method{Base: method.Base{MethodName: name}, logger: logger, n: 1}

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "lower", Type: params.KindFloat, Desc: "integration lower bound",
		Set: func(v params.Value) error { f, _ := v.Float(); m.lower = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.lower), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "upper", Type: params.KindFloat, Desc: "integration upper bound",
		Set: func(v params.Value) error { f, _ := v.Float(); m.upper = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.upper), nil },
	})
	m.defineSubintervals()

	m.regRes = params.NewRegistry(name)
	m.regRes.Define(params.Spec{
		Name: "area", Type: params.KindFloat, Desc: "the accumulated definite-integral estimate",
		Get: func() (params.Value, error) {
			if !m.haveArea {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "area not yet available")
			}

			return params.Float(m.area), nil
		},
	})

	return m
}

// defineSubintervals registers "n" and its "subintervals" alias (spec.md
// §6) against the same field.
func (m *Method) defineSubintervals() {
	set := func(v params.Value) error {
		i, _ := v.Int()
		if i < 1 {
			return solveerr.New(solveerr.InvalidArgument, name, "n must be >= 1")
		}
		m.n = i
		m.reset()

		return nil
	}
	get := func() (params.Value, error) { return params.Int(m.n), nil }

	m.regHP.Define(params.Spec{Name: "n", Type: params.KindInt, Desc: "subinterval count", Set: set, Get: get})
	m.regHP.Define(params.Spec{Name: "subintervals", Type: params.KindInt, Desc: "alias of n", Set: set, Get: get})
}

func (m *Method) reset() {
	m.st = stateInitial
	m.k = 0
	m.sum = 0
	m.haveArea = false
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "trapezoid: composite trapezoidal rule",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.10"},
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

func (m *Method) abscissa(k int) float64 {
	return m.lower + float64(k)*(m.upper-m.lower)/float64(m.n)
}

func (m *Method) Next(out vector.Vector) error {
	if len(out) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "trapezoid requires a length-1 vector")
	}
	switch m.st {
	case stateInitial:
		out[0] = m.abscissa(0)
	case stateRunning:
		out[0] = m.abscissa(m.k)
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

func (m *Method) SetValue(v vector.Vector, fv float64) error {
	if len(v) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "trapezoid requires a length-1 vector")
	}

	switch m.st {
	case stateInitial:
		m.f0 = fv
		m.k = 1
		m.st = stateRunning

		return nil
	case stateRunning:
		if m.k == m.n {
			m.fn = fv
			h := (m.upper - m.lower) / float64(m.n)
			m.area = 0.5 * h * (m.f0 + m.fn + 2*m.sum)
			m.haveArea = true
			m.st = stateDone

			return nil
		}
		m.sum += fv
		m.k++

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
