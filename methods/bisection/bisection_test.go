package bisection_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/bisection"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

func drive(t *testing.T, m *bisection.Method, f func(float64) float64) {
	t.Helper()

	out, err := vector.New(1)
	require.NoError(t, err)

	for {
		outcome, err := m.Done()
		require.NoError(t, err)
		if outcome != method.OutcomeContinue {
			break
		}
		require.NoError(t, m.Next(out))
		require.NoError(t, m.SetValue(out, f(out[0])))
	}
}

func TestConvergesOnLinearRoot(t *testing.T) {
	m := bisection.New()
	require.NoError(t, m.HParamSet("lower", params.Float(0)))
	require.NoError(t, m.HParamSet("upper", params.Float(2)))
	require.NoError(t, m.HParamSet("x_tol", params.Float(1e-9)))

	drive(t, m, func(x float64) float64 { return x - 1 })

	outcome, err := m.Done()
	require.NoError(t, err)
	require.Equal(t, method.OutcomeDone, outcome)

	var root float64
	require.NoError(t, m.Result("root", &root))
	require.InDelta(t, 1.0, root, 1e-6)
}

func TestSwapsInvertedBracket(t *testing.T) {
	m := bisection.New()
	require.NoError(t, m.HParamSet("lower", params.Float(2)))
	require.NoError(t, m.HParamSet("upper", params.Float(0)))

	drive(t, m, func(x float64) float64 { return x - 1 })

	var root float64
	require.NoError(t, m.Result("root", &root))
	require.InDelta(t, 1.0, math.Abs(root), 1e-5)
}

func TestBracketInvalidWhenNoSignChange(t *testing.T) {
	m := bisection.New()
	require.NoError(t, m.HParamSet("lower", params.Float(2)))
	require.NoError(t, m.HParamSet("upper", params.Float(3)))

	out, _ := vector.New(1)
	require.NoError(t, m.Next(out))
	require.NoError(t, m.SetValue(out, out[0]-1))
	require.NoError(t, m.Next(out))
	err := m.SetValue(out, out[0]-1)
	require.True(t, solveerr.Is(err, solveerr.BracketInvalid))

	outcome, _ := m.Done()
	require.Equal(t, method.OutcomeFailure, outcome)
}

func TestStateViolationAfterDone(t *testing.T) {
	m := bisection.New()
	require.NoError(t, m.HParamSet("lower", params.Float(0)))
	require.NoError(t, m.HParamSet("upper", params.Float(2)))
	drive(t, m, func(x float64) float64 { return x - 1 })

	out, _ := vector.New(1)
	err := m.Next(out)
	require.True(t, solveerr.Is(err, solveerr.StateViolation))
}

func TestResultNotReadyBeforeCompletion(t *testing.T) {
	m := bisection.New()
	var root float64
	err := m.Result("root", &root)
	require.True(t, solveerr.Is(err, solveerr.NotReady))
}
