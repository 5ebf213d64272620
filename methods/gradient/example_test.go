package gradient_test

import (
	"fmt"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/gradient"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/vector"
)

func Example() {
	m := gradient.New(2)
	x0, _ := vector.New(2)
	x0[0], x0[1] = 1, 2
	_ = m.HParamSet("x0", params.Vec(x0))
	_ = m.HParamSet("step", params.Float(1e-4))

	f := func(v vector.Vector) float64 { return 3 * v[0] * v[0] * v[1] }

	out, _ := vector.New(2)
	for {
		outcome, _ := m.Done()
		if outcome != method.OutcomeContinue {
			break
		}
		_ = m.Next(out)
		_ = m.SetValue(out, f(out))
	}

	var grad vector.Vector
	_ = m.Result("gradient", &grad)
	fmt.Printf("%.1f %.1f\n", grad[0], grad[1])
	// Output: 12.0 3.0
}
