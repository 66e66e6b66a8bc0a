package polymul

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/Pro7ech/goodntt/ring"
	"github.com/fxamacker/cbor/v2"
)

// ParametersLiteral is a literal representation of the parameters of a [Multiplier].
// It has public fields and is used to express unchecked user-defined parameters
// literally into Go programs, JSON, TOML or CBOR documents.
// The [NewParametersFromLiteral] function is used to generate the actual checked
// parameters from the literal representation.
//
// Users must set the ring degree N, the modulus Q, the relation of the ring,
// the Good's shape (P0, P1) and the root table of the transform of size P1
// modulo WorkingQ in canonical order (see [ring.RootTable]).
//
// Optionally, users may specify:
//   - WorkingQ, the modulus under which the product is computed before being mapped
//     back modulo Q, default is Q;
//   - RootsInv, default is the inverses of Roots modulo WorkingQ;
//   - Variant, the form of the NTT, default is [ring.Recursive];
//   - Centered, to get the result in (-Q/2, Q/2] instead of [0, Q);
//   - Workers, the number of goroutines used by the multiplication, 0 or 1 is sequential.
type ParametersLiteral struct {
	N        int           `json:"N" toml:"N" cbor:"1,keyasint"`
	Q        uint64        `json:"Q" toml:"Q" cbor:"2,keyasint"`
	WorkingQ uint64        `json:"WorkingQ,omitempty" toml:"WorkingQ" cbor:"3,keyasint,omitempty"`
	P0       int           `json:"P0" toml:"P0" cbor:"4,keyasint"`
	P1       int           `json:"P1" toml:"P1" cbor:"5,keyasint"`
	Ring     ring.Relation `json:"Ring" toml:"Ring" cbor:"6,keyasint"`
	Roots    []uint64      `json:"Roots" toml:"Roots" cbor:"7,keyasint"`
	RootsInv []uint64      `json:"RootsInv,omitempty" toml:"RootsInv" cbor:"8,keyasint,omitempty"`
	Variant  ring.Variant  `json:"Variant" toml:"Variant" cbor:"9,keyasint"`
	Centered bool          `json:"Centered,omitempty" toml:"Centered" cbor:"10,keyasint,omitempty"`
	Workers  int           `json:"Workers,omitempty" toml:"Workers" cbor:"11,keyasint,omitempty"`
}

// NTRULPR761 is the parameter set of the ntrulpr761 multiplication
// in Z_4591[X]/(X^761 - X - 1): the product is computed with Good's
// permutation of shape 3 x 512 under the auxiliary modulus
// 6984193 = 13641 * 512 + 1, for which cyclic transforms of size 512 exist.
// The root table must be supplied with [ParametersLiteral.WithRoots].
var NTRULPR761 = ParametersLiteral{
	N:        761,
	Q:        4591,
	WorkingQ: 6984193,
	P0:       3,
	P1:       512,
	Ring:     ring.Trinomial,
	Variant:  ring.Iterative,
}

// WithRoots returns a copy of the receiver with the given root table.
// rootsInv can be nil.
func (p ParametersLiteral) WithRoots(roots, rootsInv []uint64) ParametersLiteral {
	p.Roots = slices.Clone(roots)
	p.RootsInv = slices.Clone(rootsInv)
	return p
}

// GetWorkingQ returns WorkingQ, or Q if WorkingQ is unset.
func (p ParametersLiteral) GetWorkingQ() uint64 {
	if p.WorkingQ == 0 {
		return p.Q
	}
	return p.WorkingQ
}

// parametersLiteral has no methods so that the cbor encoder
// does not recurse into [ParametersLiteral.MarshalBinary].
type parametersLiteral ParametersLiteral

// MarshalBinary encodes the object into a compact CBOR form.
func (p ParametersLiteral) MarshalBinary() (data []byte, err error) {
	if data, err = cbor.Marshal(parametersLiteral(p)); err != nil {
		return nil, fmt.Errorf("cannot MarshalBinary: %w", err)
	}
	return
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on the object.
func (p *ParametersLiteral) UnmarshalBinary(data []byte) (err error) {
	var pl parametersLiteral
	if err = cbor.Unmarshal(data, &pl); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w", err)
	}
	*p = ParametersLiteral(pl)
	return
}

// LoadParametersLiteral parses the provided buffer b as a TOML document
// and returns the [ParametersLiteral] it describes. It does not check them.
func LoadParametersLiteral(b []byte) (p ParametersLiteral, err error) {

	if b == nil {
		return p, errors.New("cannot LoadParametersLiteral: nil buffer")
	}

	md, err := toml.Decode(string(b), &p)
	if err != nil {
		return p, fmt.Errorf("cannot LoadParametersLiteral: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return p, fmt.Errorf("cannot LoadParametersLiteral: unknown keys %v", undecoded)
	}

	return
}

// LoadParameters parses and validates the provided buffer b as a TOML
// document and returns the checked [Parameters].
func LoadParameters(b []byte) (Parameters, error) {

	pl, err := LoadParametersLiteral(b)
	if err != nil {
		return Parameters{}, err
	}

	return NewParametersFromLiteral(pl)
}
