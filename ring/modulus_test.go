package ring

import (
	"math"
	"math/big"
	"testing"

	"github.com/Pro7ech/goodntt/utils/sampling"
	"github.com/stretchr/testify/require"
)

func TestModulus(t *testing.T) {

	t.Run("NewModulus", func(t *testing.T) {
		for _, q := range []uint64{0, 1, 1 << 61, math.MaxUint64} {
			_, err := NewModulus(q)
			require.ErrorIs(t, err, ErrModulus)
		}
		_, err := NewModulus(1<<61 - 1)
		require.NoError(t, err)
	})

	t.Run("Reduce", func(t *testing.T) {
		m, err := NewModulus(17)
		require.NoError(t, err)
		require.Equal(t, uint64(0), m.Reduce(0))
		require.Equal(t, uint64(16), m.Reduce(-1))
		require.Equal(t, uint64(0), m.Reduce(-17))
		require.Equal(t, uint64(1), m.Reduce(18))
		require.Equal(t, uint64(16), m.Reduce(-18))

		bigQ := new(big.Int).SetUint64(m.Q)
		for _, x := range []int64{math.MinInt64, math.MaxInt64, math.MinInt64 + 1} {
			want := new(big.Int).Mod(big.NewInt(x), bigQ).Uint64()
			require.Equal(t, want, m.Reduce(x), x)
		}
	})

	t.Run("Center", func(t *testing.T) {
		m, err := NewModulus(17)
		require.NoError(t, err)
		require.Equal(t, int64(8), m.Center(8))
		require.Equal(t, int64(-8), m.Center(9))
		require.Equal(t, int64(-1), m.Center(16))

		m, err = NewModulus(16)
		require.NoError(t, err)
		require.Equal(t, int64(7), m.Center(7))
		require.Equal(t, int64(-8), m.Center(8))
	})

	t.Run("Inverse", func(t *testing.T) {
		m, err := NewModulus(17)
		require.NoError(t, err)
		for a := uint64(1); a < m.Q; a++ {
			aInv, err := m.Inverse(a)
			require.NoError(t, err)
			require.Equal(t, uint64(1), m.Mul(a, aInv))
		}

		_, err = m.Inverse(0)
		require.ErrorIs(t, err, ErrNotInvertible)

		m, err = NewModulus(15)
		require.NoError(t, err)
		_, err = m.Inverse(6)
		require.ErrorIs(t, err, ErrNotInvertible)
		require.ErrorIs(t, err, ErrModulus)
		aInv, err := m.Inverse(7)
		require.NoError(t, err)
		require.Equal(t, uint64(13), aInv)
	})

	t.Run("Pow", func(t *testing.T) {
		m, err := NewModulus(17)
		require.NoError(t, err)

		x, err := m.Pow(2, 4)
		require.NoError(t, err)
		require.Equal(t, uint64(16), x)

		// 2^-3 = 8^-1 = 15 mod 17
		x, err = m.Pow(2, -3)
		require.NoError(t, err)
		require.Equal(t, uint64(15), x)

		x, err = m.Pow(5, 0)
		require.NoError(t, err)
		require.Equal(t, uint64(1), x)

		_, err = m.Pow(0, -1)
		require.ErrorIs(t, err, ErrNotInvertible)

		m, err = NewModulus(4590)
		require.NoError(t, err)
		_, err = m.Pow(2, -1)
		require.ErrorIs(t, err, ErrModulus)
	})

	t.Run("Arithmetic/61-bit", func(t *testing.T) {

		m, err := NewModulus(0x1fffffffffe00001)
		require.NoError(t, err)

		source := sampling.NewSource([32]byte{})
		bigQ := new(big.Int).SetUint64(m.Q)

		for i := 0; i < 1024; i++ {

			a, b := source.Uint64n(m.Q), source.Uint64n(m.Q)
			bigA, bigB := new(big.Int).SetUint64(a), new(big.Int).SetUint64(b)

			want := new(big.Int)

			require.Equal(t, want.Mul(bigA, bigB).Mod(want, bigQ).Uint64(), m.Mul(a, b))
			require.Equal(t, want.Add(bigA, bigB).Mod(want, bigQ).Uint64(), m.Add(a, b))
			require.Equal(t, want.Sub(bigA, bigB).Mod(want, bigQ).Uint64(), m.Sub(a, b))
			require.Equal(t, want.Neg(bigA).Mod(want, bigQ).Uint64(), m.Neg(a))

			x := source.Uint64()
			require.Equal(t, want.SetUint64(x).Mod(want, bigQ).Uint64(), m.ReduceUint(x))

			if a != 0 {
				aInv, err := m.Inverse(a)
				require.NoError(t, err)
				require.Equal(t, uint64(1), m.Mul(a, aInv))
			}
		}
	})
}
