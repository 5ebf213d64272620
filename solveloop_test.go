package solveloop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/solveloop/solveloop"
	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/session"
	"github.com/solveloop/solveloop/vector"
)

func TestCatalogueListsEveryBuiltinMethod(t *testing.T) {
	cat, err := catalogue.Populate("", nil)
	require.NoError(t, err)

	want := []string{
		"bisection", "secant", "newton", "brentdekker", "localmin",
		"neldermead", "diffevo", "trapezoid", "simpson", "gradient",
	}

	got := make(map[string]bool)
	for _, e := range cat.Entries() {
		got[e.Name] = true
	}
	for _, name := range want {
		require.True(t, got[name], "expected %q in catalogue", name)
	}
}

func TestSessionDrivesBisectionEndToEnd(t *testing.T) {
	cat, err := catalogue.Populate("", nil)
	require.NoError(t, err)

	sess, err := session.Open(cat)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Select("bisection", 1))
	require.NoError(t, sess.HParamSet("lower", params.Float(0)))
	require.NoError(t, sess.HParamSet("upper", params.Float(2)))

	for {
		x, err := sess.Next()
		require.NoError(t, err)
		fx := x[0] - 1
		require.NoError(t, sess.SetValue(x, fx))

		outcome, err := sess.Done()
		require.NoError(t, err)
		if outcome == method.OutcomeDone {
			break
		}
	}

	var root float64
	require.NoError(t, sess.Result("root", &root))
	require.InDelta(t, 1.0, root, 1e-5)

	bestX, bestF, ok := sess.Best()
	require.True(t, ok)
	require.Len(t, bestX, 1)
	require.LessOrEqual(t, bestF, 1.0)
}

func TestSessionSwitchingMethodsReleasesPrevious(t *testing.T) {
	cat, err := catalogue.Populate("", nil)
	require.NoError(t, err)

	sess, err := session.Open(cat)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Select("gradient", 2))
	x0, err := vector.New(2)
	require.NoError(t, err)
	require.NoError(t, sess.HParamSet("x0", params.Vec(x0)))

	require.NoError(t, sess.Select("trapezoid", 1))
	require.NoError(t, sess.HParamSet("lower", params.Float(0)))
	require.NoError(t, sess.HParamSet("upper", params.Float(1)))
	require.NoError(t, sess.HParamSet("n", params.Int(4)))

	for {
		x, err := sess.Next()
		require.NoError(t, err)
		require.NoError(t, sess.SetValue(x, x[0]))

		outcome, err := sess.Done()
		require.NoError(t, err)
		if outcome == method.OutcomeDone {
			break
		}
	}

	var area float64
	require.NoError(t, sess.Result("area", &area))
	require.InDelta(t, 0.5, area, 1e-9)
}
