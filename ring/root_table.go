package ring

import (
	"fmt"
	"slices"

	"github.com/Pro7ech/goodntt/utils"
	"github.com/google/go-cmp/cmp"
)

// RootTable stores the twiddle factors of a number theoretic
// transform of size N = len(Roots) + 1 in canonical order.
//
// The canonical order is the breadth-first order of the butterfly tree:
// the node at index r has its children at 2r+1 and 2r+2, the node r
// splits Z_Q[X]/(X^m - Roots[r]^2) into Z_Q[X]/(X^{m/2} - Roots[r]) and
// Z_Q[X]/(X^{m/2} + Roots[r]). RootsInv[i] is the inverse of Roots[i]
// in the same order.
type RootTable struct {
	Roots    []uint64
	RootsInv []uint64
	kind     Relation
}

// NewRootTable returns a new [RootTable] from the given roots and their inverses,
// both in canonical order. The values are reduced modulo Q.
//
// Returns an error wrapping [ErrModulus] unless len(roots) == len(rootsInv),
// len(roots)+1 is a power of two larger than one, roots[i]*rootsInv[i] = 1 mod Q
// and the roots satisfy the tree relations (see [RootTable.Validate]).
func NewRootTable(m Modulus, roots, rootsInv []uint64) (t RootTable, err error) {

	if len(roots) != len(rootsInv) {
		return t, fmt.Errorf("cannot NewRootTable: %w: len(roots)=%d != len(rootsInv)=%d", ErrModulus, len(roots), len(rootsInv))
	}

	t = RootTable{
		Roots:    make([]uint64, len(roots)),
		RootsInv: make([]uint64, len(rootsInv)),
	}

	for i := range roots {
		t.Roots[i] = m.ReduceUint(roots[i])
		t.RootsInv[i] = m.ReduceUint(rootsInv[i])
	}

	if t.kind, err = t.validate(m); err != nil {
		return RootTable{}, fmt.Errorf("cannot NewRootTable: %w", err)
	}

	return
}

// NewRootTableFromRoots returns a new [RootTable] from the given roots
// in canonical order, deriving their inverses modulo Q.
func NewRootTableFromRoots(m Modulus, roots []uint64) (t RootTable, err error) {

	rootsInv := make([]uint64, len(roots))

	for i := range roots {
		if rootsInv[i], err = m.Inverse(roots[i]); err != nil {
			return t, fmt.Errorf("cannot NewRootTableFromRoots: roots[%d]: %w", i, err)
		}
	}

	return NewRootTable(m, roots, rootsInv)
}

// NewRootTableFromPrimitiveRoot returns the canonical [RootTable] of size n
// generated by psi, which must be a primitive n-th root of unity for a
// [Cyclic] table and a primitive 2n-th root of unity for a [Negacyclic] one.
// It only arranges the powers of psi, finding psi is left to the caller.
func NewRootTableFromPrimitiveRoot(m Modulus, n int, kind Relation, psi uint64) (t RootTable, err error) {

	if n < 2 || !utils.IsPowerOfTwo(n) {
		return t, fmt.Errorf("cannot NewRootTableFromPrimitiveRoot: %w: n=%d must be a power of two larger than one", ErrSize, n)
	}

	// Works on exponents of psi modulo M = order(psi).
	// The node of exponent e (Roots[r]^2 = psi^e) has root psi^(e/2)
	// and its children have exponents e/2 and e/2 + M/2.
	var M uint64
	exps := make([]uint64, 2*n-1)

	switch kind {
	case Cyclic:
		M = uint64(n)
		exps[0] = 0
	case Negacyclic:
		M = uint64(2 * n)
		exps[0] = M >> 1
	default:
		return t, fmt.Errorf("cannot NewRootTableFromPrimitiveRoot: %w: invalid table kind %s", ErrModulus, kind)
	}

	roots := make([]uint64, n-1)

	for r := 0; r < n-1; r++ {
		e := exps[r] >> 1
		roots[r] = m.exp(m.ReduceUint(psi), e)
		exps[2*r+1] = e
		exps[2*r+2] = e + M>>1
	}

	return NewRootTableFromRoots(m, roots)
}

// N returns the size of the transform of the receiver.
func (t RootTable) N() int {
	return len(t.Roots) + 1
}

// Kind returns [Cyclic] if the table evaluates Z_Q[X]/(X^N - 1)
// and [Negacyclic] if it evaluates Z_Q[X]/(X^N + 1).
// The kind is set by the constructors, i.e. when Roots[0]^2 = 1 or -1.
func (t RootTable) Kind() Relation {
	return t.kind
}

// Validate checks the receiver modulo Q.
// Returns an error wrapping [ErrModulus] if:
//   - len(Roots) != len(RootsInv) or len(Roots)+1 is not a power of two larger than one;
//   - a coefficient is not reduced modulo Q;
//   - Roots[i]*RootsInv[i] != 1 mod Q for some i;
//   - Roots[0]^2 is neither 1 nor -1 mod Q;
//   - Roots[2r+1]^2 != Roots[r] or Roots[2r+2]^2 != -Roots[r] mod Q for some node r.
//
// The last two conditions are an O(N) check that the leaves are the
// N distinct N-th roots of X^N -/+ 1.
func (t RootTable) Validate(m Modulus) (err error) {
	_, err = t.validate(m)
	return
}

func (t RootTable) validate(m Modulus) (kind Relation, err error) {

	roots, rootsInv := t.Roots, t.RootsInv

	if len(roots) != len(rootsInv) {
		return kind, fmt.Errorf("%w: len(Roots)=%d != len(RootsInv)=%d", ErrModulus, len(roots), len(rootsInv))
	}

	if len(roots) == 0 || !utils.IsPowerOfTwo(len(roots)+1) {
		return kind, fmt.Errorf("%w: len(Roots)+1=%d must be a power of two larger than one", ErrModulus, len(roots)+1)
	}

	for i := range roots {

		if roots[i] >= m.Q || rootsInv[i] >= m.Q {
			return kind, fmt.Errorf("%w: Roots[%d]=%d or RootsInv[%d]=%d is not reduced modulo %d", ErrModulus, i, roots[i], i, rootsInv[i], m.Q)
		}

		if m.Mul(roots[i], rootsInv[i]) != 1 {
			return kind, fmt.Errorf("%w: Roots[%d]*RootsInv[%d] = %d*%d != 1 mod %d", ErrModulus, i, i, roots[i], rootsInv[i], m.Q)
		}
	}

	switch sq := m.Mul(roots[0], roots[0]); sq {
	case 1:
		kind = Cyclic
	case m.Q - 1:
		kind = Negacyclic
	default:
		return kind, fmt.Errorf("%w: Roots[0]^2 = %d is neither 1 nor -1 mod %d", ErrModulus, sq, m.Q)
	}

	for r := 0; 2*r+2 < len(roots); r++ {

		if sq := m.Mul(roots[2*r+1], roots[2*r+1]); sq != roots[r] {
			return kind, fmt.Errorf("%w: Roots[%d]^2 = %d != Roots[%d] = %d mod %d", ErrModulus, 2*r+1, sq, r, roots[r], m.Q)
		}

		if sq := m.Mul(roots[2*r+2], roots[2*r+2]); sq != m.Neg(roots[r]) {
			return kind, fmt.Errorf("%w: Roots[%d]^2 = %d != -Roots[%d] = %d mod %d", ErrModulus, 2*r+2, sq, r, m.Neg(roots[r]), m.Q)
		}
	}

	return
}

// IterativeInverseOrder returns RootsInv in the order consumed by the
// in-place backward transform.
//
// The layer of chunk length l processes N/(2l) chunks, which are the nodes
// of the tree level L = log2(N/(2l)), and chunk k uses RootsInv[2^L - 1 + k].
// Since the layers go from l = 1 to l = N/2, the result is the
// concatenation of the tree levels, deepest level first.
func (t RootTable) IterativeInverseOrder() (order []uint64) {

	order = make([]uint64, 0, len(t.RootsInv))

	for L := utils.Log2(t.N()) - 1; L >= 0; L-- {
		order = append(order, t.RootsInv[1<<L-1:1<<(L+1)-1]...)
	}

	return
}

// Clone returns a deep copy of the receiver.
func (t RootTable) Clone() RootTable {
	return RootTable{
		Roots:    slices.Clone(t.Roots),
		RootsInv: slices.Clone(t.RootsInv),
		kind:     t.kind,
	}
}

// Equal performs a deep equal.
func (t RootTable) Equal(other *RootTable) bool {
	return other != nil && t.kind == other.kind && cmp.Equal(t.Roots, other.Roots) && cmp.Equal(t.RootsInv, other.RootsInv)
}
