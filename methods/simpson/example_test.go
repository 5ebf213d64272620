package simpson_test

import (
	"fmt"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/simpson"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/vector"
)

func Example() {
	m := simpson.New(nil)
	_ = m.HParamSet("lower", params.Float(0))
	_ = m.HParamSet("upper", params.Float(1))
	_ = m.HParamSet("n", params.Int(2))

	f := func(x float64) float64 { return x * x }

	out, _ := vector.New(1)
	for {
		outcome, _ := m.Done()
		if outcome != method.OutcomeContinue {
			break
		}
		_ = m.Next(out)
		_ = m.SetValue(out, f(out[0]))
	}

	var area float64
	_ = m.Result("area", &area)
	fmt.Printf("%.4f\n", area)
	// Output: 0.3333
}
