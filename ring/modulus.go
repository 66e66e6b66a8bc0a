// Package ring implements modular arithmetic operations for polynomials, including:
// Barrett reduction, number theoretic transforms in recursive and iterative form,
// Good's permutation and the reduction modulo cyclic, negacyclic and trinomial relations.
package ring

import (
	"fmt"
	"math/bits"
)

// MaxModulusBits is the maximum bit-size of a [Modulus].
// It guarantees that the sum of two reduced values never overflows a uint64.
const MaxModulusBits = 61

// Modulus is a scalar modular arithmetic context over Z_Q.
// Q can be a prime or a composite working modulus.
// All methods return values in [0, Q) unless stated otherwise,
// and expect their uint64 operands to be already reduced.
type Modulus struct {
	Q            uint64
	BRedConstant [2]uint64
}

// NewModulus creates a new [Modulus] for the given q.
// Returns an error wrapping [ErrModulus] if q < 2 or q >= 2^61.
func NewModulus(q uint64) (m Modulus, err error) {
	if q < 2 || bits.Len64(q) > MaxModulusBits {
		return m, fmt.Errorf("cannot NewModulus: %w: q=%d must be in [2, 2^%d)", ErrModulus, q, MaxModulusBits)
	}
	return Modulus{Q: q, BRedConstant: GetBRedConstant(q)}, nil
}

// Add returns a + b mod Q.
func (m Modulus) Add(a, b uint64) uint64 {
	return CRed(a+b, m.Q)
}

// Sub returns a - b mod Q.
func (m Modulus) Sub(a, b uint64) uint64 {
	return CRed(a+m.Q-b, m.Q)
}

// Mul returns a * b mod Q.
func (m Modulus) Mul(a, b uint64) uint64 {
	return BRed(a, b, m.Q, m.BRedConstant)
}

// Neg returns -a mod Q.
func (m Modulus) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return m.Q - a
}

// Reduce returns the representative of x in [0, Q) (Euclidean remainder).
func (m Modulus) Reduce(x int64) uint64 {
	if x >= 0 {
		return BRedAdd(uint64(x), m.Q, m.BRedConstant)
	}
	// |x| computed without overflow for math.MinInt64.
	return m.Neg(BRedAdd(uint64(-(x+1))+1, m.Q, m.BRedConstant))
}

// ReduceUint returns x mod Q.
func (m Modulus) ReduceUint(x uint64) uint64 {
	return BRedAdd(x, m.Q, m.BRedConstant)
}

// Center returns the representative of a in [-(Q-1)/2, (Q-1)/2]
// (or [-Q/2, Q/2-1] for even Q), that is ((a + Q/2) mod Q) - Q/2.
func (m Modulus) Center(a uint64) int64 {
	half := m.Q >> 1
	return int64(CRed(a+half, m.Q)) - int64(half)
}

// Inverse returns a^-1 mod Q.
// Returns an error wrapping [ErrNotInvertible] if gcd(a, Q) != 1.
func (m Modulus) Inverse(a uint64) (uint64, error) {

	a = m.ReduceUint(a)

	// Extended Euclidean algorithm on (Q, a), tracking only
	// the coefficient of a, which stays in (-Q, Q).
	var t0, t1 int64 = 0, 1
	r0, r1 := m.Q, a

	for r1 != 0 {
		quo := r0 / r1
		r0, r1 = r1, r0-quo*r1
		t0, t1 = t1, t0-int64(quo)*t1
	}

	if r0 != 1 {
		return 0, fmt.Errorf("cannot Inverse: %w: gcd(%d, %d) = %d", ErrNotInvertible, a, m.Q, r0)
	}

	return m.Reduce(t0), nil
}

// Pow returns base^e mod Q. A negative exponent is evaluated as
// (base^-1)^|e| and returns an error wrapping [ErrNotInvertible]
// if base is not invertible.
func (m Modulus) Pow(base uint64, e int64) (r uint64, err error) {

	base = m.ReduceUint(base)

	var k uint64
	if e < 0 {
		if base, err = m.Inverse(base); err != nil {
			return 0, fmt.Errorf("cannot Pow: %w", err)
		}
		k = uint64(-(e + 1)) + 1
	} else {
		k = uint64(e)
	}

	return m.exp(base, k), nil
}

// exp returns x^k mod Q by square and multiply.
func (m Modulus) exp(x, k uint64) (y uint64) {
	y = m.ReduceUint(1)
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			y = m.Mul(y, x)
		}
		x = m.Mul(x, x)
	}
	return
}

// Equal returns true if both moduli are identical.
func (m Modulus) Equal(other *Modulus) bool {
	return other != nil && m.Q == other.Q
}
