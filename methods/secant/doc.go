// Package secant implements the secant root finder of spec.md §4.8: a
// two-point bootstrap followed by linear interpolation through the two
// most recent (x, f(x)) pairs.
package secant
