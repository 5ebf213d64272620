package diffevo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/diffevo"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

func ackley(x vector.Vector) float64 {
	sum := 0.0
	cosSum := 0.0
	for _, xi := range x {
		sum += xi * xi
		cosSum += math.Cos(2 * math.Pi * xi)
	}
	n := float64(len(x))

	return -20*math.Exp(-0.2*math.Sqrt(sum/n)) - math.Exp(cosSum/n) + 20 + math.E
}

func drive(t *testing.T, m *diffevo.Method, d int, f func(vector.Vector) float64, maxSteps int) {
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
	t.Fatal("diffevo did not converge within the step budget")
}

func TestConvergesOnAckley(t *testing.T) {
	m := diffevo.New(2, nil, nil)
	require.NoError(t, m.HParamSet("NP", params.Int(20)))
	require.NoError(t, m.HParamSet("iterations", params.Int(10000)))

	start, err := vector.New(2)
	require.NoError(t, err)
	start[0], start[1] = 1, 1
	require.NoError(t, m.HParamSet("start", params.Vec(start)))

	drive(t, m, 2, ackley, 20*10000+100)

	outcome, err := m.Done()
	require.NoError(t, err)
	require.Equal(t, method.OutcomeDone, outcome)

	var fv float64
	require.NoError(t, m.Result("minimum_f", &fv))
	require.Less(t, math.Abs(fv), 1e-2)
}

func TestNPClampedUpWithWarning(t *testing.T) {
	m := diffevo.New(2, nil, nil)
	require.NoError(t, m.HParamSet("NP", params.Int(1)))

	v, err := m.HParamGet("NP")
	require.NoError(t, err)
	i, ok := v.Int()
	require.True(t, ok)
	require.GreaterOrEqual(t, i, 3)
}

func TestBoundsAutoSwapped(t *testing.T) {
	m := diffevo.New(1, nil, nil)
	lower, _ := vector.New(1)
	upper, _ := vector.New(1)
	lower[0], upper[0] = 5, -5
	require.NoError(t, m.HParamSet("lower", params.Vec(lower)))
	require.NoError(t, m.HParamSet("upper", params.Vec(upper)))

	gl, err := m.HParamGet("lower")
	require.NoError(t, err)
	lv, _ := gl.Vector()
	require.Less(t, lv[0], 0.0)
}

func TestStateViolationAfterDone(t *testing.T) {
	m := diffevo.New(1, nil, nil)
	require.NoError(t, m.HParamSet("NP", params.Int(3)))
	require.NoError(t, m.HParamSet("iterations", params.Int(2)))

	drive(t, m, 1, func(x vector.Vector) float64 { return x[0] * x[0] }, 1000)

	out, _ := vector.New(1)
	err := m.Next(out)
	require.True(t, solveerr.Is(err, solveerr.StateViolation))
}

func TestResultNotReadyBeforeCompletion(t *testing.T) {
	m := diffevo.New(2, nil, nil)
	var fv float64
	err := m.Result("minimum_f", &fv)
	require.True(t, solveerr.Is(err, solveerr.NotReady))
}
