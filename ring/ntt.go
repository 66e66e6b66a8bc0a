package ring

import (
	"encoding/json"
	"fmt"

	"github.com/Pro7ech/goodntt/utils"
)

// NumberTheoreticTransformer is an interface to provide
// flexibility on what type of NTT is used by the multiplier.
type NumberTheoreticTransformer interface {
	// Forward writes NTT(p1) on p2.
	Forward(p1, p2 []uint64)
	// Backward writes NTT^-1(p1) on p2.
	Backward(p1, p2 []uint64)
	N() int
	Modulus() Modulus
	Table() RootTable
}

// Variant selects the form of the transform.
// Both forms are bit-identical.
type Variant int

const (
	// Recursive is the divide and conquer form walking the butterfly tree.
	Recursive = Variant(iota)
	// Iterative is the in-place layer by layer form.
	Iterative
)

// String returns the string representation of the receiver.
func (v Variant) String() string {
	switch v {
	case Recursive:
		return "Recursive"
	case Iterative:
		return "Iterative"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// MarshalJSON encodes the receiver as a JSON string.
func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string (or its integer value) on the receiver.
func (v *Variant) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var i int
		if err := json.Unmarshal(b, &i); err != nil {
			return fmt.Errorf("cannot UnmarshalJSON: %w", err)
		}
		s = Variant(i).String()
	}
	return v.UnmarshalText([]byte(s))
}

// MarshalText encodes the receiver as text.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes the text representation of a [Variant] on the receiver.
func (v *Variant) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case "Recursive", "recursive":
		*v = Recursive
	case "Iterative", "iterative":
		*v = Iterative
	default:
		return fmt.Errorf("cannot UnmarshalText: invalid variant %q", s)
	}
	return nil
}

type numberTheoreticTransformerBase struct {
	modulus Modulus
	n       int
	logN    int
	table   RootTable

	// RootsInv in the order consumed by BackwardIterative.
	rootsInvIter []uint64

	// 2^{-logN} mod Q
	nInv uint64
}

// NewNTT returns a [NumberTheoreticTransformer] of size n modulo Q
// for the given [RootTable] in canonical order.
// Returns an error wrapping [ErrSize] if n is not a power of two larger
// than one, or [ErrModulus] if the table is not a valid table of size n
// modulo Q or if 2 is not invertible modulo Q.
func NewNTT(m Modulus, n int, table RootTable, variant Variant) (NumberTheoreticTransformer, error) {

	base, err := newNumberTheoreticTransformerBase(m, n, table)
	if err != nil {
		return nil, fmt.Errorf("cannot NewNTT: %w", err)
	}

	switch variant {
	case Recursive:
		return &NumberTheoreticTransformerRecursive{numberTheoreticTransformerBase: base}, nil
	case Iterative:
		return &NumberTheoreticTransformerIterative{numberTheoreticTransformerBase: base}, nil
	default:
		return nil, fmt.Errorf("cannot NewNTT: invalid variant %s", variant)
	}
}

func newNumberTheoreticTransformerBase(m Modulus, n int, table RootTable) (base numberTheoreticTransformerBase, err error) {

	if n < 2 || !utils.IsPowerOfTwo(n) {
		return base, fmt.Errorf("%w: n=%d must be a power of two larger than one", ErrSize, n)
	}

	if table.N() != n {
		return base, fmt.Errorf("%w: table of size %d but n=%d", ErrModulus, table.N(), n)
	}

	// Revalidates modulo Q, the table might have been built for another modulus.
	if table, err = NewRootTable(m, table.Roots, table.RootsInv); err != nil {
		return base, err
	}

	logN := utils.Log2(n)

	nInv, err := m.Pow(2, -int64(logN))
	if err != nil {
		return base, fmt.Errorf("cannot compute 2^-%d: %w", logN, err)
	}

	return numberTheoreticTransformerBase{
		modulus:      m,
		n:            n,
		logN:         logN,
		table:        table,
		rootsInvIter: table.IterativeInverseOrder(),
		nInv:         nInv,
	}, nil
}

// N returns the size of the transform.
func (ntt numberTheoreticTransformerBase) N() int {
	return ntt.n
}

// LogN returns log2 of the size of the transform.
func (ntt numberTheoreticTransformerBase) LogN() int {
	return ntt.logN
}

// Modulus returns the modulus of the transform.
func (ntt numberTheoreticTransformerBase) Modulus() Modulus {
	return ntt.modulus
}

// Table returns a copy of the [RootTable] of the transform.
func (ntt numberTheoreticTransformerBase) Table() RootTable {
	return ntt.table.Clone()
}

// NInv returns 2^{-log2(N)} mod Q, the scaling factor of the backward transform.
func (ntt numberTheoreticTransformerBase) NInv() uint64 {
	return ntt.nInv
}

func (ntt numberTheoreticTransformerBase) scale(p []uint64) {
	MulScalarVec(p[:ntt.n], ntt.nInv, p[:ntt.n], ntt.modulus)
}

func (ntt numberTheoreticTransformerBase) load(p1, p2 []uint64, caller string) {

	// Sanity check
	if len(p1) < ntt.n || len(p2) < ntt.n {
		panic(fmt.Sprintf("cannot %s: ensure that len(p1)=%d and len(p2)=%d >= N=%d", caller, len(p1), len(p2), ntt.n))
	}

	if &p1[0] != &p2[0] {
		copy(p2[:ntt.n], p1)
	}
}

// butterfly returns (x + w*y, x - w*y) mod Q.
func butterfly(x, y, w uint64, m Modulus) (uint64, uint64) {
	wy := m.Mul(w, y)
	return m.Add(x, wy), m.Sub(x, wy)
}

// invButterfly returns (l + r, (l - r)*w) mod Q.
func invButterfly(l, r, w uint64, m Modulus) (uint64, uint64) {
	return m.Add(l, r), m.Mul(m.Sub(l, r), w)
}
