package method

import (
	"strings"

	"github.com/solveloop/solveloop/params"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

// Outcome is the four-valued result every fallible Capability operation
// resolves to (spec.md §4.2).
type Outcome int

const (
	// OutcomeSuccess marks an operation that completed normally.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure marks an operation that failed.
	OutcomeFailure
	// OutcomeContinue marks a method that is not yet done.
	OutcomeContinue
	// OutcomeDone marks a method that has reached completion.
	OutcomeDone
)

// String renders the Outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeContinue:
		return "continue"
	case OutcomeDone:
		return "done"
	default:
		return "unknown"
	}
}

// Info is the structured description a method may return from Info():
// a short summary plus the hyper-parameters and results it recognizes,
// so diag can format it at info verbosity without the caller needing to
// know the method's internals.
type Info struct {
	Summary    string
	HParams    []params.ParamDoc
	Results    []params.ParamDoc
	References []string
}

// String renders Info as the human-readable block spec.md §4.2 describes
// ("Emits human-readable description of hyper-parameters, results, and
// references").
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.Summary)
	if len(i.HParams) > 0 {
		b.WriteString("\nhyper-parameters:\n")
		for _, p := range i.HParams {
			b.WriteString("  ")
			b.WriteString(p.Name)
			b.WriteString(" (")
			b.WriteString(p.Type.String())
			b.WriteString("): ")
			b.WriteString(p.Desc)
			b.WriteString("\n")
		}
	}
	if len(i.Results) > 0 {
		b.WriteString("results:\n")
		for _, p := range i.Results {
			b.WriteString("  ")
			b.WriteString(p.Name)
			b.WriteString(" (")
			b.WriteString(p.Type.String())
			b.WriteString("): ")
			b.WriteString(p.Desc)
			b.WriteString("\n")
		}
	}
	for _, ref := range i.References {
		b.WriteString("ref: ")
		b.WriteString(ref)
		b.WriteString("\n")
	}

	return b.String()
}

// Capability is the uniform interface every method implements (spec.md
// §4.2). A catalogue constructor produces a bound Capability for a fixed
// dimensionality d; "init(d)" and "free(inst)" from the source protocol
// are modeled as Go construction (the constructor itself) and Close,
// respectively, rather than as interface methods, since a Go value is
// always fully initialized once returned.
//
// Optional operations (Info, HParamSet, HParamGet, Seed,
// SetValueWithGradient, Result) may be satisfied by embedding Base, which
// reports solveerr.Unsupported or solveerr.InvalidArgument as
// appropriate; a method overrides only the optional operations it
// actually supports.
type Capability interface {
	// Name returns the method's canonical catalogue name.
	Name() string

	// Close releases all method-owned state. Idempotent.
	Close() error

	// Info returns a structured description of the method.
	Info() Info

	// HParamSet is a typed setter; may reshape internal buffers if a
	// structural hyper-parameter changes.
	HParamSet(name string, v params.Value) error

	// HParamGet is a typed getter.
	HParamGet(name string) (params.Value, error)

	// Seed supplies an initial point. Valid only in a method's initial
	// mode; methods that do not bootstrap from a seed may ignore it.
	Seed(v vector.Vector) error

	// Next produces the next input point to evaluate, writing into out.
	// Must fail with solveerr.StateViolation once Done reports
	// OutcomeDone.
	Next(out vector.Vector) error

	// SetValue records f(v)=fv and drives the state machine forward by
	// one step.
	SetValue(v vector.Vector, fv float64) error

	// SetValueWithGradient is as SetValue, but with an additional
	// gradient g. Methods that do not use a gradient report
	// solveerr.Unsupported; the driver then falls back to SetValue.
	SetValueWithGradient(v vector.Vector, fv float64, g vector.Vector) error

	// Done reports OutcomeContinue or OutcomeDone (or OutcomeFailure).
	Done() (Outcome, error)

	// Result is a named typed result getter, valid only once Done
	// reports OutcomeDone.
	Result(name string, out interface{}) error
}

// Base supplies default implementations of every optional Capability
// operation, reporting the taxonomy kind spec.md §7 assigns to an
// unsupported or unrecognized request. Embed Base in a method's state
// struct and override only what that method actually implements.
type Base struct {
	MethodName string
}

// Name returns the embedded MethodName.
func (b Base) Name() string { return b.MethodName }

// Close is a no-op by default.
func (b Base) Close() error { return nil }

// Info reports that no structured description is available.
func (b Base) Info() Info {
	return Info{Summary: b.MethodName + ": no description available"}
}

// HParamSet reports InvalidArgument for any name by default.
func (b Base) HParamSet(name string, _ params.Value) error {
	return solveerr.New(solveerr.InvalidArgument, b.MethodName, "unknown parameter \""+name+"\"")
}

// HParamGet reports InvalidArgument for any name by default.
func (b Base) HParamGet(name string) (params.Value, error) {
	return params.Value{}, solveerr.New(solveerr.InvalidArgument, b.MethodName, "unknown parameter \""+name+"\"")
}

// Seed reports Unsupported by default.
func (b Base) Seed(vector.Vector) error {
	return solveerr.New(solveerr.Unsupported, b.MethodName, "seed is not supported")
}

// SetValueWithGradient reports Unsupported by default, signaling the
// driver to fall back to SetValue.
func (b Base) SetValueWithGradient(vector.Vector, float64, vector.Vector) error {
	return solveerr.New(solveerr.Unsupported, b.MethodName, "gradient is not supported")
}

// Result reports InvalidArgument for any name by default.
func (b Base) Result(name string, _ interface{}) error {
	return solveerr.New(solveerr.InvalidArgument, b.MethodName, "unknown result \""+name+"\"")
}
