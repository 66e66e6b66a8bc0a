package ring

import (
	"fmt"

	"github.com/Pro7ech/goodntt/utils/sampling"
)

// UniformSampler wraps a [sampling.Source] and represents
// the state of a sampler of uniform polynomials modulo Q.
type UniformSampler struct {
	Modulus
	*sampling.Source
}

// NewUniformSampler creates a new instance of [UniformSampler] from a
// [sampling.Source] and a [Modulus].
func NewUniformSampler(source *sampling.Source, m Modulus) (u *UniformSampler) {
	return &UniformSampler{
		Modulus: m,
		Source:  source,
	}
}

// WithSource returns an instance of the underlying sampler with
// a new [sampling.Source].
// It can be used concurrently with the receiver.
func (u UniformSampler) WithSource(source *sampling.Source) *UniformSampler {
	return NewUniformSampler(source, u.Modulus)
}

// Read samples the coefficients of pol uniformly in [0, Q).
func (u *UniformSampler) Read(pol Poly) {
	u.read(pol, func(a, b uint64) uint64 {
		return b
	})
}

// ReadAndAdd adds on pol a polynomial with coefficients uniform in [0, Q).
func (u *UniformSampler) ReadAndAdd(pol Poly) {
	u.read(pol, u.Modulus.Add)
}

func (u *UniformSampler) read(pol Poly, f func(a, b uint64) uint64) {
	for i := range pol {
		pol[i] = f(pol[i], u.Source.Uint64n(u.Q))
	}
}

// ReadNew generates a new polynomial with coefficients
// following a uniform distribution over [0, Q).
func (u *UniformSampler) ReadNew(N int) (pol Poly) {
	pol = NewPoly(N)
	u.Read(pol)
	return
}

// ReadCenteredNew generates a new vector of N integers following
// a uniform distribution over the centered residues modulo Q.
func (u *UniformSampler) ReadCenteredNew(N int) (v []int64) {
	return RecenterPoly(u.Modulus, u.ReadNew(N))
}

// TernarySampler samples vectors in {-1, 0, 1}^N with exactly
// HammingWeight non-zero coefficients.
type TernarySampler struct {
	HammingWeight int
	*sampling.Source
}

// NewTernarySampler creates a new instance of [TernarySampler].
// Returns an error if hw is negative.
func NewTernarySampler(source *sampling.Source, hw int) (*TernarySampler, error) {
	if hw < 0 {
		return nil, fmt.Errorf("cannot NewTernarySampler: invalid hamming weight %d", hw)
	}
	return &TernarySampler{HammingWeight: hw, Source: source}, nil
}

// Read samples the coefficients of v.
// If HammingWeight > len(v), every coefficient is set to -1 or 1.
func (ts *TernarySampler) Read(v []int64) {

	N := len(v)
	hw := min(ts.HammingWeight, N)

	clear(v)

	index := make([]int, N)
	for i := range index {
		index[i] = i
	}

	var signs uint64

	for i := 0; i < hw; i++ {

		// Random position among the len(index) remaining ones.
		j := ts.Source.Uint64n(uint64(len(index)))

		if i&63 == 0 {
			signs = ts.Source.Uint64()
		}

		// 0 = 1, 1 = -1
		v[index[j]] = 1 - 2*int64(signs&1)
		signs >>= 1

		// Removes the element in position j of the slice (order not preserved)
		index[j] = index[len(index)-1]
		index = index[:len(index)-1]
	}
}

// ReadNew generates a new ternary vector of N coefficients.
func (ts *TernarySampler) ReadNew(N int) (v []int64) {
	v = make([]int64, N)
	ts.Read(v)
	return
}
