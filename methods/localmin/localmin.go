package localmin

import (
	"math"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "localmin"

// goldenC is Brent's golden-section constant (3-sqrt(5))/2.
var goldenC = (3 - math.Sqrt(5)) / 2

const (
	defaultEps = 1e-10
	defaultT   = 1e-6
)

type state int

const (
	stateInitial state = iota
	stateRunning
	stateDone
)

// Method is Brent's localmin state machine.
type Method struct {
	method.Base

	regHP  *params.Registry
	regRes *params.Registry

	x0, x1 float64
	eps, t float64

	a, b       float64
	u, v, w, x float64
	fv, fw, fx float64
	d, e       float64

	st      state
	haveMin bool
}

func init() {
	catalogue.Register(name, "builtin:localmin", func(d int, _ catalogue.Env) (method.Capability, error) {
		if d != 1 {
			return nil, solveerr.New(solveerr.Unsupported, name, "localmin is single-variate; d must be 1")
		}

		return New(), nil
	})
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}

	return 1
}

// New builds a localmin instance. x_0/x_1 must be set via HParamSet
// before the first Next call.
func New() *Method {
	m := &Method{
		Base: method.Base{MethodName: name},
		eps:  defaultEps,
		t:    defaultT,
	}

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "x_0", Type: params.KindFloat, Desc: "bracket lower bound",
		Set: func(v params.Value) error { f, _ := v.Float(); m.x0 = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.x0), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "x_1", Type: params.KindFloat, Desc: "bracket upper bound",
		Set: func(v params.Value) error { f, _ := v.Float(); m.x1 = f; m.reset(); return nil },
		Get: func() (params.Value, error) { return params.Float(m.x1), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "eps", Type: params.KindFloat, Desc: "relative tolerance factor",
		Set: func(v params.Value) error { f, _ := v.Float(); m.eps = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.eps), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "t", Type: params.KindFloat, Desc: "absolute tolerance term",
		Set: func(v params.Value) error { f, _ := v.Float(); m.t = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.t), nil },
	})

	m.regRes = params.NewRegistry(name)
	m.regRes.Define(params.Spec{
		Name: "minimum_x", Type: params.KindFloat, Desc: "the minimizing abscissa",
		Get: func() (params.Value, error) {
			if !m.haveMin {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "minimum not yet available")
			}

			return params.Float(m.x), nil
		},
	})
	m.regRes.Define(params.Spec{
		Name: "minimum_f", Type: params.KindFloat, Desc: "the value at the minimizing abscissa",
		Get: func() (params.Value, error) {
			if !m.haveMin {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "minimum not yet available")
			}

			return params.Float(m.fx), nil
		},
	})

	return m
}

func (m *Method) reset() {
	m.st = stateInitial
	m.a, m.b = m.x0, m.x1
	m.haveMin = false
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "localmin: Brent's golden-section/parabolic-interpolation minimizer",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.5"},
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
		return solveerr.New(solveerr.InvalidArgument, name, "localmin requires a length-1 vector")
	}
	switch m.st {
	case stateInitial:
		out[0] = m.a + goldenC*(m.b-m.a)
	case stateRunning:
		out[0] = m.u
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

func (m *Method) SetValue(vec vector.Vector, fv float64) error {
	if len(vec) != 1 {
		return solveerr.New(solveerr.InvalidArgument, name, "localmin requires a length-1 vector")
	}

	switch m.st {
	case stateInitial:
		m.x = vec[0]
		m.fx = fv
		m.v, m.w = m.x, m.x
		m.fv, m.fw = m.fx, m.fx
		m.d, m.e = 0, 0
		m.iterate()

		return nil
	case stateRunning:
		u := m.u
		if fv <= m.fx {
			if u >= m.x {
				m.a = m.x
			} else {
				m.b = m.x
			}
			m.v, m.fv = m.w, m.fw
			m.w, m.fw = m.x, m.fx
			m.x, m.fx = u, fv
		} else {
			if u < m.x {
				m.a = u
			} else {
				m.b = u
			}
			if fv <= m.fw || m.w == m.x {
				m.v, m.fv = m.w, m.fw
				m.w, m.fw = u, fv
			} else if fv <= m.fv || m.v == m.x || m.v == m.w {
				m.v, m.fv = u, fv
			}
		}
		m.iterate()

		return nil
	default:
		return solveerr.New(solveerr.StateViolation, name, "set_value called after completion")
	}
}

// iterate decides the next query point (or declares completion),
// following Brent's golden-section/parabolic-interpolation recurrence
// (spec.md §4.5).
func (m *Method) iterate() {
	mid := 0.5 * (m.a + m.b)
	tol := m.eps*math.Abs(m.x) + m.t
	t2 := 2 * tol

	if math.Abs(m.x-mid) <= t2-0.5*(m.b-m.a) {
		m.haveMin = true
		m.st = stateDone

		return
	}

	var d float64
	useGolden := math.Abs(m.e) <= tol

	if !useGolden {
		r := (m.x - m.w) * (m.fx - m.fv)
		q := (m.x - m.v) * (m.fx - m.fw)
		p := (m.x-m.v)*q - (m.x-m.w)*r
		q = 2 * (q - r)
		if q > 0 {
			p = -p
		} else {
			q = -q
		}
		rOld := m.e
		m.e = m.d

		if math.Abs(p) >= math.Abs(0.5*q*rOld) || p <= q*(m.a-m.x) || p >= q*(m.b-m.x) {
			useGolden = true
		} else {
			d = p / q
			u := m.x + d
			if u-m.a < t2 || m.b-u < t2 {
				d = sign(mid-m.x) * tol
			}
		}
	}

	if useGolden {
		if m.x < mid {
			m.e = m.b - m.x
		} else {
			m.e = m.a - m.x
		}
		d = goldenC * m.e
	}

	m.d = d
	if math.Abs(d) >= tol {
		m.u = m.x + d
	} else {
		m.u = m.x + sign(d)*tol
	}
	m.st = stateRunning
}

func (m *Method) Done() (method.Outcome, error) {
	if m.st != stateDone {
		return method.OutcomeContinue, nil
	}

	return method.OutcomeDone, nil
}
