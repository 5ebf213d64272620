// Package localmin implements Brent's one-dimensional minimizer
// (spec.md §4.5): golden-section search guarded by parabolic
// interpolation through the three best points seen so far.
package localmin
