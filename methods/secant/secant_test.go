package secant_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/secant"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

func drive(t *testing.T, m *secant.Method, f func(float64) float64) {
	t.Helper()

	out, err := vector.New(1)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		outcome, err := m.Done()
		require.NoError(t, err)
		if outcome != method.OutcomeContinue {
			return
		}
		require.NoError(t, m.Next(out))
		if err := m.SetValue(out, f(out[0])); err != nil {
			return
		}
	}
	t.Fatal("secant did not converge within 100 iterations")
}

func TestConvergesOnSquareRootOfTwo(t *testing.T) {
	m := secant.New()
	require.NoError(t, m.HParamSet("x_0", params.Float(1.0)))
	require.NoError(t, m.HParamSet("x_1", params.Float(2.0)))
	require.NoError(t, m.HParamSet("f_tol", params.Float(1e-10)))

	drive(t, m, func(x float64) float64 { return x*x - 2 })

	outcome, err := m.Done()
	require.NoError(t, err)
	require.Equal(t, method.OutcomeDone, outcome)

	var root float64
	require.NoError(t, m.Result("root", &root))
	require.InDelta(t, 1.4142135623730951, root, 1e-6)
}

func TestStateViolationAfterDone(t *testing.T) {
	m := secant.New()
	require.NoError(t, m.HParamSet("x_0", params.Float(1.0)))
	require.NoError(t, m.HParamSet("x_1", params.Float(2.0)))
	drive(t, m, func(x float64) float64 { return x*x - 2 })

	out, _ := vector.New(1)
	err := m.Next(out)
	require.True(t, solveerr.Is(err, solveerr.StateViolation))
}

func TestNumericalSingularityOnFlatFunction(t *testing.T) {
	m := secant.New()
	require.NoError(t, m.HParamSet("x_0", params.Float(1.0)))
	require.NoError(t, m.HParamSet("x_1", params.Float(2.0)))
	require.NoError(t, m.HParamSet("f_tol", params.Float(1e-12)))

	out, _ := vector.New(1)
	require.NoError(t, m.Next(out))
	require.NoError(t, m.SetValue(out, 5.0))
	require.NoError(t, m.Next(out))
	err := m.SetValue(out, 5.0)
	require.True(t, solveerr.Is(err, solveerr.NumericalSingularity))
}
