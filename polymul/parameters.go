package polymul

import (
	"encoding/json"
	"fmt"

	"github.com/Pro7ech/goodntt/ring"
	"github.com/Pro7ech/goodntt/utils/bignum"
	"github.com/Pro7ech/goodntt/utils/structs"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var _ structs.Equatable[Parameters] = Parameters{}

// Parameters represents a checked parameter set for the multiplication in
// Z_Q[X]/(f(X)). Its fields are private and immutable.
// See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	n        int
	q        ring.Modulus
	workingQ ring.Modulus
	shape    ring.GoodsShape
	relation ring.Relation
	table    ring.RootTable
	variant  ring.Variant
	centered bool
	workers  int
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a [ParametersLiteral] specification.
// It returns the empty parameters Parameters{} and a non-nil error if the specified parameters are invalid:
//   - [ring.ErrSize] if N < 1;
//   - [ring.ErrShape] if the relation or the variant is invalid, if (P0, P1) is not a valid
//     [ring.GoodsShape] with P1 >= 2, if P0 > 1 and the table is not cyclic, or if
//     P0*P1 < 2N-1 and the transform is not native (P0 = 1, P1 = N and a table
//     of the same kind as the relation);
//   - [ring.ErrModulus] if Q or WorkingQ is not a valid [ring.Modulus], or if
//     the root table is not a valid table of size P1 modulo WorkingQ.
func NewParametersFromLiteral(pl ParametersLiteral) (p Parameters, err error) {

	if pl.N < 1 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: N=%d < 1", ring.ErrSize, pl.N)
	}

	switch pl.Ring {
	case ring.Cyclic, ring.Negacyclic, ring.Trinomial:
	default:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: invalid relation %s", ring.ErrShape, pl.Ring)
	}

	switch pl.Variant {
	case ring.Recursive, ring.Iterative:
	default:
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: invalid variant %s", ring.ErrShape, pl.Variant)
	}

	if pl.Workers < 0 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: invalid number of workers %d", pl.Workers)
	}

	p = Parameters{
		n:        pl.N,
		relation: pl.Ring,
		variant:  pl.Variant,
		centered: pl.Centered,
		workers:  max(pl.Workers, 1),
	}

	if p.q, err = ring.NewModulus(pl.Q); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: Q: %w", err)
	}

	if p.workingQ, err = ring.NewModulus(pl.GetWorkingQ()); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: WorkingQ: %w", err)
	}

	if p.shape, err = ring.NewGoodsShape(pl.P0, pl.P1); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	if pl.P1 < 2 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: P1=%d < 2", ring.ErrShape, pl.P1)
	}

	if len(pl.Roots) != pl.P1-1 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: len(Roots)=%d != P1-1=%d", ring.ErrModulus, len(pl.Roots), pl.P1-1)
	}

	if len(pl.RootsInv) == 0 {
		p.table, err = ring.NewRootTableFromRoots(p.workingQ, pl.Roots)
	} else {
		p.table, err = ring.NewRootTable(p.workingQ, pl.Roots, pl.RootsInv)
	}

	if err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	if !p.Native() {

		if pl.P0 > 1 && p.table.Kind() != ring.Cyclic {
			return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: P0=%d > 1 requires a cyclic root table but table is %s", ring.ErrShape, pl.P0, p.table.Kind())
		}

		if pl.P0*pl.P1 < 2*pl.N-1 {
			return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: P0*P1=%d < 2N-1=%d and the %s transform of size %d does not match the %s ring of degree %d",
				ring.ErrShape, pl.P0*pl.P1, 2*pl.N-1, p.table.Kind(), pl.P1, pl.Ring, pl.N)
		}
	}

	// Checks that 2 is invertible modulo WorkingQ.
	if _, err = ring.NewNTT(p.workingQ, p.shape.P1, p.table, p.variant); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	return
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	table := p.table.Clone()
	return ParametersLiteral{
		N:        p.n,
		Q:        p.q.Q,
		WorkingQ: p.workingQ.Q,
		P0:       p.shape.P0,
		P1:       p.shape.P1,
		Ring:     p.relation,
		Roots:    table.Roots,
		RootsInv: table.RootsInv,
		Variant:  p.variant,
		Centered: p.centered,
		Workers:  p.workers,
	}
}

// N returns the degree of the ring.
func (p Parameters) N() int {
	return p.n
}

// Q returns the modulus of the ring.
func (p Parameters) Q() ring.Modulus {
	return p.q
}

// WorkingQ returns the modulus under which the product is computed.
func (p Parameters) WorkingQ() ring.Modulus {
	return p.workingQ
}

// Shape returns the Good's shape of the multiplication.
func (p Parameters) Shape() ring.GoodsShape {
	return p.shape
}

// Ring returns the relation of the ring.
func (p Parameters) Ring() ring.Relation {
	return p.relation
}

// Table returns a copy of the root table of the transforms.
func (p Parameters) Table() ring.RootTable {
	return p.table.Clone()
}

// Variant returns the form of the transforms.
func (p Parameters) Variant() ring.Variant {
	return p.variant
}

// Centered returns true if the products are returned in centered representation.
func (p Parameters) Centered() bool {
	return p.centered
}

// Workers returns the number of goroutines used by the multiplication.
func (p Parameters) Workers() int {
	return p.workers
}

// Native returns true if the transform directly evaluates the ring,
// in which case no Good's permutation nor reduction is needed.
func (p Parameters) Native() bool {
	return p.shape.P0 == 1 && p.shape.P1 == p.n && p.table.Kind() == p.relation
}

// Lifted returns true if the product is computed under WorkingQ != Q.
func (p Parameters) Lifted() bool {
	return p.workingQ.Q != p.q.Q
}

// foldFactor returns the maximum number of coefficients of the linear
// product accumulated in a coefficient of the reduced product.
func (p Parameters) foldFactor() int64 {
	switch {
	case p.Native():
		return 1
	case p.relation == ring.Trinomial:
		return 3
	default:
		return 2
	}
}

// CheckBound returns an error wrapping [ring.ErrModulus] if the product of a and b
// over the integers, reduced modulo the relation, could have a coefficient of
// absolute value larger than or equal to WorkingQ/2, in which case it cannot
// be recovered from its residues modulo WorkingQ.
func (p Parameters) CheckBound(a, b []int64) (err error) {

	bound := bignum.ConvolutionBound(a, b)
	bound.Mul(bound, bignum.NewInt(p.foldFactor()))
	bound.Lsh(bound, 1)

	if bound.Cmp(bignum.NewInt(p.workingQ.Q)) >= 0 {
		return fmt.Errorf("%w: 2 * coefficient bound = %v >= WorkingQ = %d", ring.ErrModulus, bound, p.workingQ.Q)
	}

	return
}

// Equal compares two sets of parameters for equality.
func (p Parameters) Equal(other *Parameters) bool {
	return other != nil && cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral(), cmpopts.EquateEmpty())
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (p Parameters) MarshalBinary() (data []byte, err error) {
	return p.ParametersLiteral().MarshalBinary()
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary on the object.
func (p *Parameters) UnmarshalBinary(data []byte) (err error) {
	var pl ParametersLiteral
	if err = pl.UnmarshalBinary(data); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}
