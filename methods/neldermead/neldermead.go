package neldermead

import (
	"sort"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "neldermead"

const (
	defaultAlpha         = 1.0
	defaultBeta          = 0.5
	defaultGamma         = 2.0
	defaultDelta         = 0.5
	defaultMaxIterations = 30
	defaultDistThreshold = 1e-5
)

type state int

const (
	stateInitial state = iota
	stateReflect
	stateExpand
	stateContract
	stateShrink
	stateDone
)

type vertex struct {
	x vector.Vector
	f float64
}

// Method is the Nelder-Mead simplex minimizer's state machine.
type Method struct {
	method.Base

	d      int
	logger *diag.Logger

	regHP  *params.Registry
	regRes *params.Registry

	alpha, beta, gamma, delta float64
	maxIterations             int
	distThreshold             float64

	seed     vector.Vector
	haveSeed bool

	simplex   []vertex
	iterCount int

	st          state
	centroid    vector.Vector
	xr, xe, xc  vector.Vector
	fr, fh      float64
	contractOut bool

	shrinkTargets []int
	shrinkCursor  int
	shrinkPoint   vector.Vector

	haveResult bool
}

func init() {
	catalogue.Register(name, "builtin:neldermead", func(d int, env catalogue.Env) (method.Capability, error) {
		if d < 1 {
			return nil, solveerr.New(solveerr.InvalidArgument, name, "d must be >= 1")
		}

		return New(d, env.Logger), nil
	})
}

// New builds a Nelder-Mead instance for dimensionality d. A seed vector
// must be supplied via Seed before the first Next call. logger may be
// nil.
func New(d int, logger *diag.Logger) *Method {
	if logger == nil {
		logger = diag.NewDefault()
	}
	m := &Method{
		Base:          method.Base{MethodName: name},
		d:             d,
		logger:        logger,
		alpha:         defaultAlpha,
		beta:          defaultBeta,
		gamma:         defaultGamma,
		delta:         defaultDelta,
		maxIterations: defaultMaxIterations,
		distThreshold: defaultDistThreshold,
	}

	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "alpha", Type: params.KindFloat, Desc: "reflection coefficient (default 1, warns if <= 0)",
		Set: func(v params.Value) error {
			f, _ := v.Float()
			if f <= 0 {
				m.logger.Warnf(name, "alpha=%g is outside the recommended range (> 0)", f)
			}
			m.alpha = f

			return nil
		},
		Get: func() (params.Value, error) { return params.Float(m.alpha), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "beta", Type: params.KindFloat, Desc: "contraction coefficient (default 0.5, warns outside (0,1))",
		Set: func(v params.Value) error {
			f, _ := v.Float()
			if f <= 0 || f >= 1 {
				m.logger.Warnf(name, "beta=%g is outside the recommended range (0,1)", f)
			}
			m.beta = f

			return nil
		},
		Get: func() (params.Value, error) { return params.Float(m.beta), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "gamma", Type: params.KindFloat, Desc: "expansion coefficient (default 2, warns if <= 1)",
		Set: func(v params.Value) error {
			f, _ := v.Float()
			if f <= 1 {
				m.logger.Warnf(name, "gamma=%g is outside the recommended range (> 1)", f)
			}
			m.gamma = f

			return nil
		},
		Get: func() (params.Value, error) { return params.Float(m.gamma), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "delta", Type: params.KindFloat, Desc: "shrink coefficient (default 0.5, warns outside (0,1))",
		Set: func(v params.Value) error {
			f, _ := v.Float()
			if f <= 0 || f >= 1 {
				m.logger.Warnf(name, "delta=%g is outside the recommended range (0,1)", f)
			}
			m.delta = f

			return nil
		},
		Get: func() (params.Value, error) { return params.Float(m.delta), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "max_iterations", Type: params.KindInt, Desc: "iteration-count termination budget",
		Set: func(v params.Value) error { i, _ := v.Int(); m.maxIterations = i; return nil },
		Get: func() (params.Value, error) { return params.Int(m.maxIterations), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "dist_threshold", Type: params.KindFloat, Desc: "simplex-spread termination threshold",
		Set: func(v params.Value) error { f, _ := v.Float(); m.distThreshold = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.distThreshold), nil },
	})

	m.regRes = params.NewRegistry(name)
	m.regRes.Define(params.Spec{
		Name: "minimum_x", Type: params.KindVector, Desc: "the best simplex vertex found",
		Get: func() (params.Value, error) {
			if !m.haveResult {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "minimum not yet available")
			}

			return params.Vec(vector.Copy(m.simplex[0].x)), nil
		},
	})
	m.regRes.Define(params.Spec{
		Name: "minimum_f", Type: params.KindFloat, Desc: "the value at the best simplex vertex",
		Get: func() (params.Value, error) {
			if !m.haveResult {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "minimum not yet available")
			}

			return params.Float(m.simplex[0].f), nil
		},
	})

	return m
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "neldermead: simplex reflect/expand/contract/shrink minimizer",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.4"},
	}
}

func (m *Method) HParamSet(paramName string, v params.Value) error { return m.regHP.Set(paramName, v) }
func (m *Method) HParamGet(paramName string) (params.Value, error) { return m.regHP.Get(paramName) }
func (m *Method) Result(paramName string, out interface{}) error {
	v, err := m.regRes.Get(paramName)
	if err != nil {
		return err
	}
	switch p := out.(type) {
	case *float64:
		f, _ := v.Float()
		*p = f
	case *vector.Vector:
		vec, _ := v.Vector()
		*p = vec
	default:
		return solveerr.New(solveerr.InvalidArgument, name, "unsupported result out type")
	}

	return nil
}

// Seed supplies the bootstrap point. Valid only before the simplex has
// started filling (spec.md §4.2 "valid only in the initial mode").
func (m *Method) Seed(v vector.Vector) error {
	if len(v) != m.d {
		return solveerr.New(solveerr.InvalidArgument, name, "seed must have length d")
	}
	if m.st != stateInitial || len(m.simplex) != 0 {
		return solveerr.New(solveerr.NotReady, name, "seed is only valid before bootstrap begins")
	}
	m.seed = vector.Copy(v)
	m.haveSeed = true

	return nil
}

func (m *Method) Next(out vector.Vector) error {
	if len(out) != m.d {
		return solveerr.New(solveerr.InvalidArgument, name, "out must have length d")
	}

	switch m.st {
	case stateInitial:
		if !m.haveSeed {
			return solveerr.New(solveerr.InvalidArgument, name, "seed must be supplied before next")
		}
		count := len(m.simplex)
		copy(out, m.seed)
		if count > 0 {
			out[count-1] += float64(count)
		}
	case stateReflect:
		copy(out, m.xr)
	case stateExpand:
		copy(out, m.xe)
	case stateContract:
		copy(out, m.xc)
	case stateShrink:
		copy(out, m.shrinkPoint)
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
		m.simplex = append(m.simplex, vertex{x: vector.Copy(v), f: fv})
		if len(m.simplex) == m.d+1 {
			m.beginIteration()
		}

		return nil
	case stateReflect:
		return m.afterReflect(v, fv)
	case stateExpand:
		return m.afterExpand(fv)
	case stateContract:
		return m.afterContract(fv)
	case stateShrink:
		return m.afterShrink(fv)
	default:
		return solveerr.New(solveerr.StateViolation, name, "set_value called after completion")
	}
}

// beginIteration sorts the simplex, tests the termination predicate,
// and (if not terminated) computes the centroid and the reflection
// candidate x_r (spec.md §4.4).
func (m *Method) beginIteration() {
	sort.Slice(m.simplex, func(i, j int) bool { return m.simplex[i].f < m.simplex[j].f })
	m.iterCount++

	h := len(m.simplex) - 1
	dist, _ := vector.Dist(m.simplex[0].x, m.simplex[h].x)
	if m.iterCount > m.maxIterations || dist < m.distThreshold {
		m.haveResult = true
		m.st = stateDone

		return
	}

	c, _ := vector.New(m.d)
	for i := 0; i < h; i++ {
		c, _ = vector.Add(c, m.simplex[i].x)
	}
	c = vector.Scale(c, 1.0/float64(h))
	m.centroid = c

	diff, _ := vector.Sub(c, m.simplex[h].x)
	xr, _ := vector.Add(c, vector.Scale(diff, m.alpha))
	m.xr = xr
	m.fh = m.simplex[h].f
	m.st = stateReflect
}

func (m *Method) afterReflect(v vector.Vector, fv float64) error {
	m.fr = fv
	h := len(m.simplex) - 1
	fl := m.simplex[0].f
	fs := m.simplex[h-1].f

	switch {
	case fv < fl:
		diff, _ := vector.Sub(m.xr, m.centroid)
		xe, _ := vector.Add(m.centroid, vector.Scale(diff, m.gamma))
		m.xe = xe
		m.st = stateExpand

		return nil
	case fv < fs: // fl <= fr < fs
		m.replaceWorst(vector.Copy(v), fv)
		m.beginIteration()

		return nil
	case fv < m.fh: // fs <= fr < fh
		diff, _ := vector.Sub(m.xr, m.centroid)
		xc, _ := vector.Add(m.centroid, vector.Scale(diff, m.beta))
		m.xc = xc
		m.contractOut = true
		m.st = stateContract

		return nil
	default: // fr >= fh
		diff, _ := vector.Sub(m.simplex[h].x, m.centroid)
		xc, _ := vector.Add(m.centroid, vector.Scale(diff, m.beta))
		m.xc = xc
		m.contractOut = false
		m.st = stateContract

		return nil
	}
}

func (m *Method) afterExpand(fe float64) error {
	if fe < m.fr {
		m.replaceWorst(vector.Copy(m.xe), fe)
	} else {
		m.replaceWorst(vector.Copy(m.xr), m.fr)
	}
	m.beginIteration()

	return nil
}

func (m *Method) afterContract(fc float64) error {
	var improved bool
	if m.contractOut {
		improved = fc < m.fr
	} else {
		improved = fc < m.fh
	}

	if improved {
		m.replaceWorst(vector.Copy(m.xc), fc)
		m.beginIteration()

		return nil
	}

	m.startShrink()

	return nil
}

// startShrink begins the two-phase shrink of every non-best vertex
// toward the best vertex, one external evaluation per vertex (spec.md
// §4.4 "shrink"/"shrink-second").
func (m *Method) startShrink() {
	m.shrinkTargets = m.shrinkTargets[:0]
	for i := 1; i < len(m.simplex); i++ {
		m.shrinkTargets = append(m.shrinkTargets, i)
	}
	m.shrinkCursor = 0
	m.computeShrinkPoint()
	m.st = stateShrink
}

// computeShrinkPoint applies p_i <- l + delta*(p_i - l), the
// configurable generalization of the midpoint shrink (spec.md §4.4;
// delta defaults to 0.5, reducing to the literal midpoint).
func (m *Method) computeShrinkPoint() {
	target := m.shrinkTargets[m.shrinkCursor]
	diff, _ := vector.Sub(m.simplex[target].x, m.simplex[0].x)
	scaled := vector.Scale(diff, m.delta)
	m.shrinkPoint, _ = vector.Add(m.simplex[0].x, scaled)
}

func (m *Method) afterShrink(fv float64) error {
	target := m.shrinkTargets[m.shrinkCursor]
	m.simplex[target] = vertex{x: vector.Copy(m.shrinkPoint), f: fv}
	m.shrinkCursor++

	if m.shrinkCursor == len(m.shrinkTargets) {
		m.beginIteration()

		return nil
	}

	m.computeShrinkPoint()

	return nil
}

func (m *Method) replaceWorst(x vector.Vector, f float64) {
	m.simplex[len(m.simplex)-1] = vertex{x: x, f: f}
}

func (m *Method) Done() (method.Outcome, error) {
	if m.st != stateDone {
		return method.OutcomeContinue, nil
	}

	return method.OutcomeDone, nil
}
