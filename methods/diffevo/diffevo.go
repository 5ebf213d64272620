package diffevo

import (
	"math/rand"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

const name = "diffevo"

const (
	defaultF          = 0.5
	defaultLambda     = 0.1
	defaultIterations = 1000
	minNP             = 3
)

type state int

const (
	stateInitial state = iota
	stateRunning
	stateDone
)

// Option configures a Method beyond what the catalogue's uniform
// constructor signature exposes.
type Option func(*Method)

// WithToleranceStop enables an additional, opt-in termination check:
// the generation loop also completes once the best-seen value drops
// below fTol, independent of the iteration budget. Off by default, so
// the canonical iteration-count semantics (spec.md §4.9) are unchanged
// unless a caller opts in.
func WithToleranceStop(fTol float64) Option {
	return func(m *Method) {
		m.toleranceStop = true
		m.fTol = fTol
	}
}

func init() {
	catalogue.Register(name, "builtin:diffevo", func(d int, env catalogue.Env) (method.Capability, error) {
		if d < 1 {
			return nil, solveerr.New(solveerr.InvalidArgument, name, "d must be >= 1")
		}

		return New(d, env.Rand, env.Logger), nil
	})
}

// Method is the differential-evolution state machine: a population of
// NP candidate vectors advanced one member at a time.
type Method struct {
	method.Base

	d      int
	rng    *rand.Rand
	logger *diag.Logger

	regHP  *params.Registry
	regRes *params.Registry

	np         int
	f          float64
	lambda     float64
	iterations int

	haveStart            bool
	start                vector.Vector
	haveLower, haveUpper bool
	lower, upper         vector.Vector

	toleranceStop bool
	fTol          float64

	x, xPrev   []vector.Vector
	fx, fxPrev []float64
	i          int
	genBest    int // argmin(fxPrev), recomputed at the start of each generation

	haveBest   bool
	bestVec    vector.Vector
	bestVal    float64

	st state
}

// New builds a diffevo instance for dimensionality d. rng supplies the
// random draws for both the initial population and trial-vector
// sampling; logger receives repaired-hyper-parameter warnings. Either
// may be nil.
func New(d int, rng *rand.Rand, logger *diag.Logger, opts ...Option) *Method {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = diag.NewDefault()
	}

	m := &Method{
		Base:       method.Base{MethodName: name},
		d:          d,
		rng:        rng,
		logger:     logger,
		np:         10 * d,
		f:          defaultF,
		lambda:     defaultLambda,
		iterations: defaultIterations,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.allocate()
	m.buildRegistries()

	return m
}

func (m *Method) allocate() {
	m.x = make([]vector.Vector, m.np)
	m.xPrev = make([]vector.Vector, m.np)
	m.fx = make([]float64, m.np)
	m.fxPrev = make([]float64, m.np)
	for idx := range m.x {
		v, _ := vector.New(m.d)
		m.x[idx] = v
		pv, _ := vector.New(m.d)
		m.xPrev[idx] = pv
	}
	m.i = 0
	m.st = stateInitial
}

func (m *Method) buildRegistries() {
	m.regHP = params.NewRegistry(name)
	m.regHP.Define(params.Spec{
		Name: "NP", Type: params.KindInt, Desc: "population size (default 10*d; clamped up to 3 with a warning)",
		Set: func(v params.Value) error {
			np, _ := v.Int()
			if np < minNP {
				m.logger.Warnf(name, "NP=%d is below the minimum of %d; clamping", np, minNP)
				np = minNP
			}
			m.np = np
			m.allocate()

			return nil
		},
		Get: func() (params.Value, error) { return params.Int(m.np), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "F", Type: params.KindFloat, Desc: "differential weight",
		Set: func(v params.Value) error { f, _ := v.Float(); m.f = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.f), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "lambda", Type: params.KindFloat, Desc: "best-vector bias weight; nonzero selects DE/best/2-style",
		Set: func(v params.Value) error { f, _ := v.Float(); m.lambda = f; return nil },
		Get: func() (params.Value, error) { return params.Float(m.lambda), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "iterations", Type: params.KindInt, Desc: "generation budget",
		Set: func(v params.Value) error { i, _ := v.Int(); m.iterations = i; return nil },
		Get: func() (params.Value, error) { return params.Int(m.iterations), nil },
	})
	m.regHP.Define(params.Spec{
		Name: "start", Type: params.KindVector, Desc: "optional seed vector perturbed to build the initial population",
		Set: func(v params.Value) error {
			vec, _ := v.Vector()
			if len(vec) != m.d {
				return solveerr.New(solveerr.InvalidArgument, name, "start must have length d")
			}
			m.start = vector.Copy(vec)
			m.haveStart = true

			return nil
		},
		Get: func() (params.Value, error) {
			if !m.haveStart {
				return params.Value{}, solveerr.New(solveerr.InvalidArgument, name, "start was never set")
			}

			return params.Vec(vector.Copy(m.start)), nil
		},
	})
	m.regHP.Define(params.Spec{
		Name: "lower", Type: params.KindVector, Desc: "box lower bound (componentwise)",
		Set: func(v params.Value) error {
			vec, _ := v.Vector()
			if len(vec) != m.d {
				return solveerr.New(solveerr.InvalidArgument, name, "lower must have length d")
			}
			m.lower = vector.Copy(vec)
			m.haveLower = true
			m.fixBounds()

			return nil
		},
		Get: func() (params.Value, error) {
			if !m.haveLower {
				return params.Value{}, solveerr.New(solveerr.InvalidArgument, name, "lower was never set")
			}

			return params.Vec(vector.Copy(m.lower)), nil
		},
	})
	m.regHP.Define(params.Spec{
		Name: "upper", Type: params.KindVector, Desc: "box upper bound (componentwise)",
		Set: func(v params.Value) error {
			vec, _ := v.Vector()
			if len(vec) != m.d {
				return solveerr.New(solveerr.InvalidArgument, name, "upper must have length d")
			}
			m.upper = vector.Copy(vec)
			m.haveUpper = true
			m.fixBounds()

			return nil
		},
		Get: func() (params.Value, error) {
			if !m.haveUpper {
				return params.Value{}, solveerr.New(solveerr.InvalidArgument, name, "upper was never set")
			}

			return params.Vec(vector.Copy(m.upper)), nil
		},
	})

	m.regRes = params.NewRegistry(name)
	m.regRes.Define(params.Spec{
		Name: "minimum_x", Type: params.KindVector, Desc: "the best population member found",
		Get: func() (params.Value, error) {
			if !m.haveBest {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "minimum not yet available")
			}

			return params.Vec(vector.Copy(m.bestVec)), nil
		},
	})
	m.regRes.Define(params.Spec{
		Name: "minimum_f", Type: params.KindFloat, Desc: "the value at the best population member",
		Get: func() (params.Value, error) {
			if !m.haveBest {
				return params.Value{}, solveerr.New(solveerr.NotReady, name, "minimum not yet available")
			}

			return params.Float(m.bestVal), nil
		},
	})
}

// fixBounds auto-swaps any inverted bound componentwise, with a warning
// (spec.md §4.9, §7).
func (m *Method) fixBounds() {
	if !m.haveLower || !m.haveUpper {
		return
	}
	for j := 0; j < m.d; j++ {
		if m.lower[j] > m.upper[j] {
			m.logger.Warnf(name, "lower[%d]=%g > upper[%d]=%g; swapping", j, m.lower[j], j, m.upper[j])
			m.lower[j], m.upper[j] = m.upper[j], m.lower[j]
		}
	}
}

func (m *Method) Info() method.Info {
	return method.Info{
		Summary:    "diffevo: population-based mutation/greedy-selection minimizer",
		HParams:    m.regHP.Docs(),
		Results:    m.regRes.Docs(),
		References: []string{"spec.md §4.9"},
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

// clampToBounds clamps v componentwise to [lower, upper] when bounds
// are set (spec.md §4.9).
func (m *Method) clampToBounds(v vector.Vector) {
	if !m.haveLower || !m.haveUpper {
		return
	}
	for j := range v {
		if v[j] < m.lower[j] {
			v[j] = m.lower[j]
		} else if v[j] > m.upper[j] {
			v[j] = m.upper[j]
		}
	}
}

func (m *Method) randInit() vector.Vector {
	out, _ := vector.New(m.d)
	switch {
	case m.haveStart:
		for j := range out {
			out[j] = m.start[j] + (m.rng.Float64() - 0.5)
		}
	case m.haveLower && m.haveUpper:
		for j := range out {
			out[j] = m.lower[j] + m.rng.Float64()*(m.upper[j]-m.lower[j])
		}
	default:
		for j := range out {
			out[j] = m.rng.Float64() - 0.5
		}
	}
	m.clampToBounds(out)

	return out
}

// randDistinct draws n indices in [0, np) pairwise distinct and
// distinct from every entry of excluded.
func randDistinct(rng *rand.Rand, np, n int, excluded ...int) []int {
	taken := make(map[int]bool, n+len(excluded))
	for _, e := range excluded {
		taken[e] = true
	}
	out := make([]int, 0, n)
	for len(out) < n {
		cand := rng.Intn(np)
		if taken[cand] {
			continue
		}
		taken[cand] = true
		out = append(out, cand)
	}

	return out
}

// trialVector implements the scheme-selection formula (spec.md §4.9):
// DE/best/2-style when lambda != 0, else DE/rand/1 when F != 0.
func (m *Method) trialVector() vector.Vector {
	if m.lambda != 0 {
		r := randDistinct(m.rng, m.np, 2)
		diffBest, _ := vector.Sub(m.xPrev[m.genBest], m.xPrev[m.i])
		diffRand, _ := vector.Sub(m.xPrev[r[0]], m.xPrev[r[1]])
		v, _ := vector.Add(m.xPrev[m.i], vector.Scale(diffBest, m.lambda))
		v, _ = vector.Add(v, vector.Scale(diffRand, m.f))
		m.clampToBounds(v)

		return v
	}
	if m.f != 0 {
		r := randDistinct(m.rng, m.np, 3)
		diff, _ := vector.Sub(m.xPrev[r[1]], m.xPrev[r[2]])
		v, _ := vector.Add(m.xPrev[r[0]], vector.Scale(diff, m.f))
		m.clampToBounds(v)

		return v
	}

	return vector.Copy(m.xPrev[m.i])
}

func (m *Method) Next(out vector.Vector) error {
	if len(out) != m.d {
		return solveerr.New(solveerr.InvalidArgument, name, "out must have length d")
	}

	switch m.st {
	case stateInitial:
		copy(out, m.randInit())
	case stateRunning:
		copy(out, m.trialVector())
	case stateDone:
		return solveerr.New(solveerr.StateViolation, name, "next called after completion")
	}

	return nil
}

func (m *Method) SetValue(v vector.Vector, fv float64) error {
	if len(v) != m.d {
		return solveerr.New(solveerr.InvalidArgument, name, "v must have length d")
	}
	if m.st == stateDone {
		return solveerr.New(solveerr.StateViolation, name, "set_value called after completion")
	}

	accept := m.st == stateInitial || fv < m.fxPrev[m.i]
	if accept {
		m.x[m.i] = vector.Copy(v)
		m.fx[m.i] = fv
	} else {
		m.x[m.i] = vector.Copy(m.xPrev[m.i])
		m.fx[m.i] = m.fxPrev[m.i]
	}

	if !m.haveBest || fv < m.bestVal {
		m.haveBest = true
		m.bestVal = fv
		m.bestVec = vector.Copy(v)
	}

	m.i++
	if m.i == m.np {
		m.advanceGeneration()
	}

	return nil
}

// advanceGeneration swaps the two population buffers, decrements the
// iteration budget, and either completes or computes the next
// generation's reference best (spec.md §4.9).
func (m *Method) advanceGeneration() {
	m.x, m.xPrev = m.xPrev, m.x
	m.fx, m.fxPrev = m.fxPrev, m.fx
	m.i = 0
	m.iterations--

	wasInitial := m.st == stateInitial
	if wasInitial {
		m.st = stateRunning
	}

	if m.iterations <= 0 || (m.toleranceStop && m.haveBest && m.bestVal < m.fTol) {
		m.st = stateDone

		return
	}

	m.genBest = 0
	for idx := 1; idx < m.np; idx++ {
		if m.fxPrev[idx] < m.fxPrev[m.genBest] {
			m.genBest = idx
		}
	}
}

func (m *Method) Done() (method.Outcome, error) {
	if m.st != stateDone {
		return method.OutcomeContinue, nil
	}

	return method.OutcomeDone, nil
}
