package ring

import (
	"errors"
	"fmt"
)

var (
	// ErrSize is returned when a vector length does not match
	// or overflows the size expected by an operation.
	ErrSize = errors.New("size error")

	// ErrShape is returned when the dimensions of a Good's decomposition
	// are inconsistent (non coprime factors, non power-of-two transform
	// size, mismatching matrix dimensions).
	ErrShape = errors.New("shape error")

	// ErrModulus is returned when parameters are inconsistent with the
	// modulus (invalid root table, modulus too small for the lifted
	// computation, element without inverse).
	ErrModulus = errors.New("modulus error")

	// ErrNotInvertible is returned when the modular inverse of an element
	// that is not coprime with the modulus is requested.
	// It also matches ErrModulus with errors.Is.
	ErrNotInvertible = fmt.Errorf("%w: not invertible", ErrModulus)
)
