package neldermead_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/neldermead"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

func rosenbrock(x vector.Vector) float64 {
	a := 1 - x[0]
	b := x[1] - x[0]*x[0]

	return a*a + 100*b*b
}

func drive(t *testing.T, m *neldermead.Method, d int, f func(vector.Vector) float64, maxSteps int) {
	t.Helper()

	out, err := vector.New(d)
	require.NoError(t, err)

	for i := 0; i < maxSteps; i++ {
		outcome, err := m.Done()
		require.NoError(t, err)
		if outcome != method.OutcomeContinue {
			return
		}
		require.NoError(t, m.Next(out))
		require.NoError(t, m.SetValue(out, f(out)))
	}
	t.Fatal("neldermead did not converge within the step budget")
}

func TestConvergesOnRosenbrock(t *testing.T) {
	m := neldermead.New(2, nil)
	seed, err := vector.New(2)
	require.NoError(t, err)
	require.NoError(t, m.Seed(seed))

	drive(t, m, 2, rosenbrock, 5000)

	outcome, err := m.Done()
	require.NoError(t, err)
	require.Equal(t, method.OutcomeDone, outcome)

	var best vector.Vector
	require.NoError(t, m.Result("minimum_x", &best))

	target := vector.Vector{1, 1}
	dist, err := vector.Dist(best, target)
	require.NoError(t, err)
	require.Less(t, dist, 0.5)
}

func TestShrinkTwoPhaseTransition(t *testing.T) {
	// A pathological objective that rejects reflect/expand/contract at
	// every candidate except the bootstrap points, forcing every
	// iteration through the shrink branch so the shrink-cursor logic
	// (spec.md §9's flagged subtle case) actually runs end to end.
	m := neldermead.New(2, nil)
	seed, err := vector.New(2)
	require.NoError(t, err)
	require.NoError(t, m.Seed(seed))
	require.NoError(t, m.HParamSet("max_iterations", params.Int(3)))

	bootstrap := 0
	f := func(x vector.Vector) float64 {
		if bootstrap < 3 {
			bootstrap++
			// distinct low values so the initial simplex sorts deterministically
			return float64(bootstrap)
		}

		return 1e6 // always worse than every simplex vertex: forces shrink
	}

	drive(t, m, 2, f, 200)

	outcome, err := m.Done()
	require.NoError(t, err)
	require.Equal(t, method.OutcomeDone, outcome)
}

func TestSeedNotReadyAfterBootstrapBegins(t *testing.T) {
	m := neldermead.New(2, nil)
	seed, err := vector.New(2)
	require.NoError(t, err)
	require.NoError(t, m.Seed(seed))

	out, err := vector.New(2)
	require.NoError(t, err)
	require.NoError(t, m.Next(out))
	require.NoError(t, m.SetValue(out, rosenbrock(out)))

	err = m.Seed(seed)
	require.True(t, solveerr.Is(err, solveerr.NotReady))
}

func TestStateViolationAfterDone(t *testing.T) {
	m := neldermead.New(2, nil)
	seed, err := vector.New(2)
	require.NoError(t, err)
	require.NoError(t, m.Seed(seed))

	drive(t, m, 2, rosenbrock, 5000)

	out, _ := vector.New(2)
	err = m.Next(out)
	require.True(t, solveerr.Is(err, solveerr.StateViolation))
}
