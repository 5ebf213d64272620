package newton_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/newton"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

func TestConvergesOnSquareRootOfTwo(t *testing.T) {
	m := newton.New()
	require.NoError(t, m.HParamSet("x_0", params.Float(1.5)))
	require.NoError(t, m.HParamSet("f_tol", params.Float(1e-10)))

	out, err := vector.New(1)
	require.NoError(t, err)
	g, err := vector.New(1)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		outcome, err := m.Done()
		require.NoError(t, err)
		if outcome != method.OutcomeContinue {
			break
		}
		require.NoError(t, m.Next(out))
		x := out[0]
		g[0] = 2 * x
		require.NoError(t, m.SetValueWithGradient(out, x*x-2, g))
	}

	outcome, err := m.Done()
	require.NoError(t, err)
	require.Equal(t, method.OutcomeDone, outcome)

	var root float64
	require.NoError(t, m.Result("root", &root))
	require.Less(t, math.Abs(root-math.Sqrt2), 1e-5)
}

func TestPlainSetValueIsAnError(t *testing.T) {
	m := newton.New()
	require.NoError(t, m.HParamSet("x_0", params.Float(1.5)))

	out, _ := vector.New(1)
	require.NoError(t, m.Next(out))
	err := m.SetValue(out, 0.25)
	require.True(t, solveerr.Is(err, solveerr.InvalidArgument))
}

func TestSingularGradientFails(t *testing.T) {
	m := newton.New()
	require.NoError(t, m.HParamSet("x_0", params.Float(0.0)))

	out, _ := vector.New(1)
	g, _ := vector.New(1)
	require.NoError(t, m.Next(out))
	g[0] = 0
	err := m.SetValueWithGradient(out, 1.0, g)
	require.True(t, solveerr.Is(err, solveerr.NumericalSingularity))

	outcome, _ := m.Done()
	require.Equal(t, method.OutcomeFailure, outcome)
}
