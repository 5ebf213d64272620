// Package simpson implements Simpson's composite rule (spec.md §4.10):
// as trapezoid, but interior samples are split into even- and
// odd-indexed running sums and n is required to be even.
package simpson
