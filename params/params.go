// Package params implements the name-keyed typed hyper-parameter and
// result registry every solveloop method uses to back its
// HParamSet/HParamGet/Result capability operations (spec.md §4.2, §4.3,
// component F).
//
// Rather than a dynamically-typed property bag, each method declares a
// small, fixed set of recognized identifiers up front via Registry.Define,
// generalizing the teacher's compile-time gatherOptions pattern
// (matrix/options.go) into a runtime name→typed-value map: unknown
// identifiers and type mismatches both resolve to
// solveerr.InvalidArgument, exactly as spec.md §4.1/§7 require.
package params

import (
	"fmt"

	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

// Kind identifies the dynamic type carried by a Value.
type Kind int

const (
	// KindFloat marks a scalar float64 value.
	KindFloat Kind = iota
	// KindInt marks a scalar int value.
	KindInt
	// KindBool marks a scalar bool value.
	KindBool
	// KindVector marks a vector.Vector value.
	KindVector
	// KindString marks a string value.
	KindString
)

// String renders the Kind name for documentation and error messages.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindVector:
		return "vector"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a small tagged union over the scalar/vector types a
// hyper-parameter or result can carry.
type Value struct {
	kind Kind
	f    float64
	i    int
	b    bool
	vec  vector.Vector
	s    string
}

// Float wraps a float64 as a Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Int wraps an int as a Value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Bool wraps a bool as a Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Vec wraps a vector.Vector as a Value.
func Vec(v vector.Vector) Value { return Value{kind: KindVector, vec: v} }

// Str wraps a string as a Value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// Float returns the wrapped float64, or (0, false) if v is not a float.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}

	return v.f, true
}

// Int returns the wrapped int, or (0, false) if v is not an int.
func (v Value) Int() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}

	return v.i, true
}

// Bool returns the wrapped bool, or (false, false) if v is not a bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.b, true
}

// Vector returns the wrapped vector.Vector, or (nil, false) if v is not a vector.
func (v Value) Vector() (vector.Vector, bool) {
	if v.kind != KindVector {
		return nil, false
	}

	return v.vec, true
}

// String returns the wrapped string, or ("", false) if v is not a string.
func (v Value) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.s, true
}

// ParamDoc documents one recognized hyper-parameter or result identifier,
// surfaced through method.Info.
type ParamDoc struct {
	Name string
	Type Kind
	Desc string
}

// Spec describes one recognized identifier: its declared type, an
// optional Set callback (nil makes it read-only, as results are), and a
// Get callback used to satisfy HParamGet/Result.
type Spec struct {
	Name string
	Type Kind
	Desc string
	Set  func(Value) error
	Get  func() (Value, error)
}

// Registry is a method instance's name-keyed typed configuration and
// result surface. It is not safe for concurrent use; each method instance
// owns one Registry, and the session serializes all calls into a method
// (spec.md §5 "Scheduling").
type Registry struct {
	specs map[string]Spec
	order []string
	arity string // the owning method's name, used in error messages
}

// NewRegistry creates an empty Registry for the named method.
func NewRegistry(methodName string) *Registry {
	return &Registry{specs: make(map[string]Spec), arity: methodName}
}

// Define registers a recognized identifier. Call this during method
// construction, once per identifier, in the order Info should list them.
func (r *Registry) Define(spec Spec) {
	if _, exists := r.specs[spec.Name]; !exists {
		r.order = append(r.order, spec.Name)
	}
	r.specs[spec.Name] = spec
}

// Set resolves a named Set (HParamSet or, in principle, a writable
// result) against the declared Spec, validating that the identifier is
// known, writable, and of the declared type before invoking its setter.
func (r *Registry) Set(name string, v Value) error {
	spec, ok := r.specs[name]
	if !ok {
		return solveerr.New(solveerr.InvalidArgument, r.arity, fmt.Sprintf("unknown parameter %q", name))
	}
	if spec.Set == nil {
		return solveerr.New(solveerr.InvalidArgument, r.arity, fmt.Sprintf("parameter %q is read-only", name))
	}
	if spec.Type != v.Kind() {
		return solveerr.New(solveerr.InvalidArgument, r.arity,
			fmt.Sprintf("parameter %q expects %s, got %s", name, spec.Type, v.Kind()))
	}

	return spec.Set(v)
}

// Get resolves a named Get (HParamGet or Result) against the declared
// Spec, validating that the identifier is known and readable.
func (r *Registry) Get(name string) (Value, error) {
	spec, ok := r.specs[name]
	if !ok {
		return Value{}, solveerr.New(solveerr.InvalidArgument, r.arity, fmt.Sprintf("unknown parameter %q", name))
	}
	if spec.Get == nil {
		return Value{}, solveerr.New(solveerr.InvalidArgument, r.arity, fmt.Sprintf("parameter %q is write-only", name))
	}

	return spec.Get()
}

// Docs returns ParamDoc entries in declaration order, for method.Info.
func (r *Registry) Docs() []ParamDoc {
	docs := make([]ParamDoc, 0, len(r.order))
	for _, name := range r.order {
		spec := r.specs[name]
		docs = append(docs, ParamDoc{Name: spec.Name, Type: spec.Type, Desc: spec.Desc})
	}

	return docs
}
