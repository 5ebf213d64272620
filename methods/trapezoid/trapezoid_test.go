package trapezoid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/trapezoid"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

func integrate(t *testing.T, n int, f func(float64) float64) float64 {
	t.Helper()

	m := trapezoid.New(nil)
	require.NoError(t, m.HParamSet("lower", params.Float(0)))
	require.NoError(t, m.HParamSet("upper", params.Float(1)))
	require.NoError(t, m.HParamSet("n", params.Int(n)))

	out, _ := vector.New(1)
	for {
		outcome, _ := m.Done()
		if outcome != method.OutcomeContinue {
			break
		}
		require.NoError(t, m.Next(out))
		require.NoError(t, m.SetValue(out, f(out[0])))
	}

	var area float64
	require.NoError(t, m.Result("area", &area))

	return area
}

func TestIdentityFunctionIsExactlyOneHalf(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		require.InDelta(t, 0.5, integrate(t, n, func(x float64) float64 { return x }), 1e-12)
	}
}

func TestStateViolationAfterDone(t *testing.T) {
	m := trapezoid.New(nil)
	require.NoError(t, m.HParamSet("lower", params.Float(0)))
	require.NoError(t, m.HParamSet("upper", params.Float(1)))
	require.NoError(t, m.HParamSet("n", params.Int(1)))

	out, _ := vector.New(1)
	require.NoError(t, m.Next(out))
	require.NoError(t, m.SetValue(out, 0))
	require.NoError(t, m.Next(out))
	require.NoError(t, m.SetValue(out, 1))

	err := m.Next(out)
	require.True(t, solveerr.Is(err, solveerr.StateViolation))
}

func TestNAliasSubintervals(t *testing.T) {
	m := trapezoid.New(nil)
	require.NoError(t, m.HParamSet("subintervals", params.Int(4)))
	v, err := m.HParamGet("n")
	require.NoError(t, err)
	i, _ := v.Int()
	require.Equal(t, 4, i)
}
