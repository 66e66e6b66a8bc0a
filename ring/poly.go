package ring

import (
	"fmt"
	"slices"

	"github.com/Pro7ech/goodntt/utils/structs"
)

var (
	_ structs.Equatable[Poly]      = Poly{}
	_ structs.Equatable[RootTable] = RootTable{}
)

// Poly is the coefficient vector of a polynomial sum_i Poly[i] X^i
// with coefficients reduced modulo some [Modulus].
type Poly []uint64

// NewPoly allocates a new zero [Poly] of N coefficients.
func NewPoly(N int) Poly {
	return make(Poly, N)
}

// N returns the number of coefficients of the receiver.
func (p Poly) N() int {
	return len(p)
}

// Zero sets all coefficients of the receiver to zero.
func (p Poly) Zero() {
	clear(p)
}

// Clone returns a deep copy of the receiver.
func (p Poly) Clone() Poly {
	return slices.Clone(p)
}

// Copy copies the coefficients of other on the receiver,
// up to the minimum size between the two.
func (p Poly) Copy(other Poly) {
	copy(p, other)
}

// Equal returns true if both polynomials have the same coefficients.
func (p Poly) Equal(other *Poly) bool {
	return other != nil && slices.Equal(p, *other)
}

// Truncate returns the first n coefficients of the receiver.
// Returns an error wrapping [ErrSize] if n > len(p).
func (p Poly) Truncate(n int) (Poly, error) {
	if n < 0 || n > len(p) {
		return nil, fmt.Errorf("cannot Truncate: %w: n=%d but len(p)=%d", ErrSize, n, len(p))
	}
	return p[:n:n], nil
}

// Pad returns a copy of v zero-extended to target coefficients.
// Returns an error wrapping [ErrSize] if len(v) > target, it never truncates.
func Pad(v Poly, target int) (Poly, error) {
	if len(v) > target {
		return nil, fmt.Errorf("cannot Pad: %w: len(v)=%d > target=%d", ErrSize, len(v), target)
	}
	p := NewPoly(target)
	copy(p, v)
	return p, nil
}

// ReduceCoeffs returns the coefficients of v reduced in [0, Q).
func ReduceCoeffs(m Modulus, v []int64) (p Poly) {
	p = NewPoly(len(v))
	for i := range v {
		p[i] = m.Reduce(v[i])
	}
	return
}

// MulNaive returns the full schoolbook product a*b mod Q,
// of len(a)+len(b)-1 coefficients.
// It runs in O(len(a)*len(b)) and is used as a reference and for
// the small sub-convolutions of the Good's decomposition.
func MulNaive(m Modulus, a, b Poly) (c Poly) {
	if len(a) == 0 || len(b) == 0 {
		return Poly{}
	}
	c = NewPoly(len(a) + len(b) - 1)
	MulNaiveThenAdd(m, a, b, c)
	return
}

// MulNaiveThenAdd evaluates c = c + a*b mod Q.
// c must have at least len(a)+len(b)-1 coefficients.
func MulNaiveThenAdd(m Modulus, a, b, c Poly) {

	// Sanity check
	if len(a) != 0 && len(b) != 0 && len(c) < len(a)+len(b)-1 {
		panic(fmt.Sprintf("cannot MulNaiveThenAdd: len(c)=%d < len(a)+len(b)-1=%d", len(c), len(a)+len(b)-1))
	}

	for i, ai := range a {
		if ai == 0 {
			continue
		}
		ci := c[i:]
		for j, bj := range b {
			ci[j] = m.Add(ci[j], m.Mul(ai, bj))
		}
	}
}

// MulNaiveInRing returns a*b mod (Q, rel(X)) where rel is the relation
// of degree n (see [Relation]), computed with the schoolbook product
// followed by the reduction. It is the reference for the fast multiplication.
func MulNaiveInRing(m Modulus, a, b Poly, n int, rel Relation) (Poly, error) {

	if len(a) > n || len(b) > n {
		return nil, fmt.Errorf("cannot MulNaiveInRing: %w: len(a)=%d, len(b)=%d > n=%d", ErrSize, len(a), len(b), n)
	}

	c := MulNaive(m, a, b)

	if len(c) < n {
		return Pad(c, n)
	}

	return rel.Reduce(m, c, n)
}
