// Package brentdekker implements the Brent-Dekker hybrid root finder
// (spec.md §4.6): bisection guarded by inverse-quadratic or linear
// interpolation steps, maintaining a bracket that always contains a
// sign change.
package brentdekker
