// Package bignum implements arbitrary precision integer helpers.
package bignum

import (
	"fmt"
	"math/big"
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int or *big.Int.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewInt: accepted types are string, uint, uint64, int, int64, *big.Int, but is %T", x))
	}

	return
}

// MaxAbs returns max_i |v[i]|.
func MaxAbs(v []int64) (m *big.Int) {
	m = new(big.Int)
	tmp := new(big.Int)
	for i := range v {
		if tmp.SetInt64(v[i]).Abs(tmp).Cmp(m) > 0 {
			m.Set(tmp)
		}
	}
	return
}

// NormL1 returns sum_i |v[i]|.
func NormL1(v []int64) (s *big.Int) {
	s = new(big.Int)
	tmp := new(big.Int)
	for i := range v {
		s.Add(s, tmp.SetInt64(v[i]).Abs(tmp))
	}
	return
}

// ConvolutionBound returns an upper bound on the absolute value of any
// coefficient of the integer product a*b, that is
// min(max|a| * |b|_1, |a|_1 * max|b|).
func ConvolutionBound(a, b []int64) (bound *big.Int) {
	bound = new(big.Int).Mul(MaxAbs(a), NormL1(b))
	other := new(big.Int).Mul(NormL1(a), MaxAbs(b))
	if other.Cmp(bound) < 0 {
		bound.Set(other)
	}
	return
}
