// Package diffevo implements differential evolution (spec.md §4.9): a
// population of NP candidate vectors advanced one member at a time by
// trial-vector mutation, crossed with nothing (mutation-only, per the
// spec's observable formulas) and accepted greedily against the
// previous generation.
package diffevo
