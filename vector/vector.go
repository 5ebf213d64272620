package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLength indicates a requested vector length is not positive.
var ErrInvalidLength = errors.New("vector: length must be > 0")

// ErrLengthMismatch indicates two vectors involved in a binary operation
// do not share the same length.
var ErrLengthMismatch = errors.New("vector: length mismatch")

// Vector is a dense, fixed-length sequence of double-precision reals.
type Vector []float64

// New allocates a zero-valued Vector of length n.
// Complexity: O(n) time and space.
func New(n int) (Vector, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}

	return make(Vector, n), nil
}

// Copy returns a fresh Vector with the same elements as v.
// Complexity: O(n).
func Copy(v Vector) Vector {
	out := make(Vector, len(v))
	copy(out, v)

	return out
}

// Reset zeroes every element of v in place.
// Complexity: O(n).
func Reset(v Vector) {
	for i := range v {
		v[i] = 0
	}
}

// Add returns a new Vector a+b. Fails with ErrLengthMismatch if the
// operands' lengths differ.
// Complexity: O(n).
func Add(a, b Vector) (Vector, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	out := make(Vector, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}

	return out, nil
}

// Sub returns a new Vector a-b. Fails with ErrLengthMismatch if the
// operands' lengths differ.
// Complexity: O(n).
func Sub(a, b Vector) (Vector, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	out := make(Vector, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}

	return out, nil
}

// Scale returns a new Vector s*v.
// Complexity: O(n).
func Scale(v Vector, s float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * s
	}

	return out
}

// AddInto writes a+b into dst, which must already have the right length.
// Complexity: O(n).
func AddInto(dst, a, b Vector) error {
	if len(a) != len(b) || len(dst) != len(a) {
		return ErrLengthMismatch
	}
	for i := range a {
		dst[i] = a[i] + b[i]
	}

	return nil
}

// L2 returns the Euclidean norm of v: sqrt(sum(v_i^2)).
// Complexity: O(n).
func L2(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}

	return math.Sqrt(sum)
}

// Dist returns the Euclidean distance between a and b: L2(a-b).
// Fails with ErrLengthMismatch if the operands' lengths differ.
// Complexity: O(n).
func Dist(a, b Vector) (float64, error) {
	d, err := Sub(a, b)
	if err != nil {
		return 0, err
	}

	return L2(d), nil
}

// String renders v as "[x0, x1, ..., xn-1]" using %g formatting, matching
// the print format callers expect from diagnostics output.
// Complexity: O(n).
func (v Vector) String() string {
	s := "["
	for i, x := range v {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%g", x)
	}
	s += "]"

	return s
}
