// Package newton implements Newton-Raphson root finding (spec.md §4.8):
// a single-point iteration driven entirely by set_value_with_gradient,
// since the update step needs both the function value and its
// derivative at the current point.
package newton
