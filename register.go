package solveloop

// Importing this package pulls in every builtin method via its init(),
// which calls catalogue.Register. A caller who only needs a subset of
// methods (and a smaller binary) can instead import the individual
// methods/* packages directly and skip this one.
import (
	_ "github.com/solveloop/solveloop/methods/bisection"
	_ "github.com/solveloop/solveloop/methods/brentdekker"
	_ "github.com/solveloop/solveloop/methods/diffevo"
	_ "github.com/solveloop/solveloop/methods/gradient"
	_ "github.com/solveloop/solveloop/methods/localmin"
	_ "github.com/solveloop/solveloop/methods/neldermead"
	_ "github.com/solveloop/solveloop/methods/newton"
	_ "github.com/solveloop/solveloop/methods/secant"
	_ "github.com/solveloop/solveloop/methods/simpson"
	_ "github.com/solveloop/solveloop/methods/trapezoid"
)
