package bisection_test

import (
	"fmt"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/bisection"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/vector"
)

// Example demonstrates the caller-drives-the-loop pattern: the library
// never calls the objective itself, the caller evaluates whatever point
// bisection hands back and pushes the value into SetValue.
func Example() {
	m := bisection.New()
	_ = m.HParamSet("lower", params.Float(0))
	_ = m.HParamSet("upper", params.Float(2))

	f := func(x float64) float64 { return x*x - 2 }

	out, _ := vector.New(1)
	for {
		outcome, _ := m.Done()
		if outcome != method.OutcomeContinue {
			break
		}
		_ = m.Next(out)
		_ = m.SetValue(out, f(out[0]))
	}

	var root float64
	_ = m.Result("root", &root)
	fmt.Printf("%.2f\n", root)
	// Output: 1.41
}
