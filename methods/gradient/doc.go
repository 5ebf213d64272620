// Package gradient implements forward-difference gradient estimation
// (spec.md §4.11): perturb one axis at a time from a base point and
// divide the resulting value difference by the step size.
package gradient
