package secant_test

import (
	"fmt"

	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/methods/secant"
	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/vector"
)

func Example() {
	m := secant.New()
	_ = m.HParamSet("x_0", params.Float(1.0))
	_ = m.HParamSet("x_1", params.Float(2.0))

	f := func(x float64) float64 { return x*x - 2 }

	out, _ := vector.New(1)
	for i := 0; i < 50; i++ {
		outcome, _ := m.Done()
		if outcome != method.OutcomeContinue {
			break
		}
		_ = m.Next(out)
		if err := m.SetValue(out, f(out[0])); err != nil {
			break
		}
	}

	var root float64
	_ = m.Result("root", &root)
	fmt.Printf("%.2f\n", root)
	// Output: 1.41
}
