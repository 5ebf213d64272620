package gradient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/gradient"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

func TestMatchesAnalyticGradient(t *testing.T) {
	m := gradient.New(2)
	x0, err := vector.New(2)
	require.NoError(t, err)
	x0[0], x0[1] = 1, 2
	require.NoError(t, m.HParamSet("x0", params.Vec(x0)))
	require.NoError(t, m.HParamSet("step", params.Float(1e-4)))

	f := func(v vector.Vector) float64 { return 3 * v[0] * v[0] * v[1] }

	out, err := vector.New(2)
	require.NoError(t, err)
	for {
		outcome, err := m.Done()
		require.NoError(t, err)
		if outcome != method.OutcomeContinue {
			break
		}
		require.NoError(t, m.Next(out))
		require.NoError(t, m.SetValue(out, f(out)))
	}

	var grad vector.Vector
	require.NoError(t, m.Result("gradient", &grad))
	require.InDelta(t, 12.0, grad[0], 1e-2)
	require.InDelta(t, 3.0, grad[1], 1e-2)
}

func TestStateViolationAfterDone(t *testing.T) {
	m := gradient.New(1)
	x0, _ := vector.New(1)
	require.NoError(t, m.HParamSet("x0", params.Vec(x0)))

	out, _ := vector.New(1)
	require.NoError(t, m.Next(out))
	require.NoError(t, m.SetValue(out, 0))
	require.NoError(t, m.Next(out))
	require.NoError(t, m.SetValue(out, 0))

	err := m.Next(out)
	require.True(t, solveerr.Is(err, solveerr.StateViolation))
}
