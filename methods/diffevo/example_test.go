package diffevo_test

import (
	"fmt"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/diffevo"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/vector"
)

func Example() {
	m := diffevo.New(1, nil, nil)
	_ = m.HParamSet("iterations", params.Int(2000))

	lower, _ := vector.New(1)
	upper, _ := vector.New(1)
	lower[0], upper[0] = -10, 10
	_ = m.HParamSet("lower", params.Vec(lower))
	_ = m.HParamSet("upper", params.Vec(upper))

	f := func(x vector.Vector) float64 { return (x[0] - 3) * (x[0] - 3) }

	out, _ := vector.New(1)
	for i := 0; i < 100000; i++ {
		outcome, _ := m.Done()
		if outcome != method.OutcomeContinue {
			break
		}
		_ = m.Next(out)
		_ = m.SetValue(out, f(out))
	}

	var fv float64
	_ = m.Result("minimum_f", &fv)
	fmt.Println(fv < 1.0)
	// Output: true
}
