// Package neldermead implements the Nelder-Mead simplex minimizer
// (spec.md §4.4): reflect, expand, and contract a simplex of d+1 points
// around its centroid, falling back to a two-phase shrink when none of
// those moves improves on the worst point.
package neldermead
