// Package method defines the capability contract every solveloop method
// implements (spec.md §4.2): a uniform set of operations a catalogue
// entry exposes once instantiated, so a session can drive any method —
// root finder, minimizer, integrator, or gradient estimator — through the
// identical produce/consume loop.
//
// Required operations (Name, Init is modeled by the catalogue's
// constructor, Next, SetValue, Done) must be implemented by every method.
// Optional operations (Info, HParamSet, HParamGet, Seed,
// SetValueWithGradient, Result) may be left at their Base defaults:
// Seed and SetValueWithGradient report solveerr.Unsupported, HParamSet,
// HParamGet and Result report solveerr.InvalidArgument for every name,
// Info returns a placeholder summary, and Close does nothing. Embed Base in a method's state struct to get sensible
// defaults for the operations it does not customize.
package method
