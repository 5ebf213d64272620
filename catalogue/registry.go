package catalogue

import (
	"math/rand"

	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/method"
)

// Env carries the per-session dependencies a method constructor may
// need beyond dimensionality: an injectable randomness source (spec.md
// §9 "Randomness" — differential evolution is the only method that
// currently reads it) and a diagnostics Logger for methods that want to
// emit their own warnings (e.g. a hyper-parameter repaired to a minimum
// value). Both fields are always non-nil when passed by Session.Select.
type Env struct {
	Rand   *rand.Rand
	Logger *diag.Logger
}

// Constructor instantiates a bound method.Capability for dimensionality
// d, given the session's Env. It returns a recoverable error
// (solveerr.Unsupported or solveerr.InvalidArgument) when the method
// declines d, so Select can keep scanning for another entry of the same
// name.
type Constructor func(d int, env Env) (method.Capability, error)

type provider struct {
	name   string
	origin string
	ctor   Constructor
}

// staticProviders holds every provider registered by a methods/*
// package's init(). Order of registration is preserved, matching the
// catalogue's append-only population contract.
var staticProviders []provider

// Register adds a statically linked provider under name, with a
// descriptive origin label (e.g. "builtin:bisection"). Intended to be
// called from a methods/* package's init() function only.
func Register(name, origin string, ctor Constructor) {
	staticProviders = append(staticProviders, provider{name: name, origin: origin, ctor: ctor})
}

// lookupStatic returns the registered Constructor for name, in
// registration order, or nil if none is registered.
func lookupStatic(name string) (Constructor, string, bool) {
	for _, p := range staticProviders {
		if p.name == name {
			return p.ctor, p.origin, true
		}
	}

	return nil, "", false
}
