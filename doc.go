// Package solveloop is a numerical-methods toolbox built around an inverted
// control flow: instead of handing the library an objective function, the
// caller drives the iteration loop itself. At each step it asks a session
// for the next input point, evaluates its own objective (with whatever
// external context it needs), and hands the observed value — and
// optionally a gradient — back to the session.
//
// Why invert control?
//
//   - The objective function never crosses an FFI or process boundary into
//     the library; the library never crosses one out to call it.
//   - Any method — root finder, 1-D minimizer, N-D minimizer, integrator,
//     gradient estimator — can be substituted for any other without
//     touching the objective, because every method speaks the same
//     produce/consume protocol (method.Capability).
//   - Solvers that would otherwise need a callback and a stack frame per
//     evaluation instead live as resumable state machines that survive
//     between calls.
//
// Package layout:
//
//	vector/        — dense real vectors: add, sub, scale, L2 norm, distance
//	solveerr/      — shared error-kind taxonomy used by every package
//	method/        — the capability contract every method implements
//	params/        — name-keyed typed hyper-parameter / result registry
//	diag/          — four-level severity-gated diagnostics channel
//	metrics/       — optional Prometheus instrumentation
//	catalogue/     — method registry and manifest-driven loader
//	session/       — the driver: binds a method, pumps the loop, tracks best-seen
//	methods/       — bisection, secant, newton, brentdekker, localmin,
//	                 neldermead, diffevo, trapezoid, simpson, gradient
//
// A minimal driver loop:
//
//	sess, err := session.Open(cat)
//	err = sess.Select("bisection", 1)
//	err = sess.HParamSet("lower", params.Float(0))
//	err = sess.HParamSet("upper", params.Float(2))
//	for {
//	    x, err := sess.Next()
//	    fx := myObjective(x[0])
//	    err = sess.SetValue(x, fx)
//	    if st, _ := sess.Done(); st == method.OutcomeDone {
//	        break
//	    }
//	}
//	var root float64
//	err = sess.Result("root", &root)
package solveloop
