// Package trapezoid implements the composite trapezoidal rule (spec.md
// §4.10): the caller supplies f at n+1 equally spaced abscissas and the
// method accumulates the area as each sample arrives.
package trapezoid
