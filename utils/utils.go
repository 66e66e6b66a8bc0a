// Package utils implements various helper functions.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// IsPowerOfTwo returns true if x is a strictly positive power of two.
func IsPowerOfTwo[T constraints.Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// Log2 returns floor(log2(x)) for x > 0 and -1 otherwise.
func Log2[T constraints.Integer](x T) int {
	if x <= 0 {
		return -1
	}
	return bits.Len64(uint64(x)) - 1
}

// GCD returns the greatest common divisor of |a| and |b|.
func GCD[T constraints.Integer](a, b T) T {
	a, b = Abs(a), Abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Abs returns |x|.
func Abs[T constraints.Signed | constraints.Unsigned](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64[T constraints.Integer](index T, bitLen int) T {
	return T(bits.Reverse64(uint64(index)) >> (64 - bitLen))
}
