// Package bisection implements the bracketing root finder of spec.md
// §4.7: given an interval [lower, upper] with f(lower) < 0 < f(upper),
// it repeatedly bisects the bracket and discards the half that does not
// contain the sign change.
package bisection
