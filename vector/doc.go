// Package vector provides the dense, fixed-length real-vector primitives
// every solveloop method is built on: allocation, element access, the
// arithmetic the driver and methods need (add, sub, scale, copy, reset),
// and the two metrics termination checks rely on most (L2 norm, distance).
//
// A Vector's length is fixed at allocation; nothing in this package
// resizes one in place. Every method here that returns a new Vector
// allocates fresh backing storage; AddInto is the one operation that
// writes into a caller-supplied buffer instead.
//
// Complexity: every operation is O(n) in the vector length unless noted.
package vector
