// Package session implements the driver (spec.md §4.3, component D):
// the per-session state that binds exactly one method instance at a
// time, serializes every caller-facing call into it, tracks the
// best-seen input/value pair, and applies verbosity gating to
// diagnostic output.
//
// A Session is built from a catalogue.Catalogue with Open, bound to a
// method with Select, optionally configured with HParamSet/Seed, then
// driven with the Next/SetValue loop until Done reports completion, at
// which point Result and Best retrieve the answer.
//
// Sessions are single-threaded and cooperative (spec.md §5): a Session
// must not be used from more than one goroutine concurrently. Distinct
// Sessions that are not handed the same *rand.Rand (WithRand) or
// diag.Logger (WithLogger) are fully independent and may run on
// separate goroutines.
package session
