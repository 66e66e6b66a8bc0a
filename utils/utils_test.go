package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtils(t *testing.T) {

	t.Run("IsPowerOfTwo", func(t *testing.T) {
		for _, x := range []int{1, 2, 512, 1 << 40} {
			require.True(t, IsPowerOfTwo(x), x)
		}
		for _, x := range []int{-8, 0, 3, 761, 1536} {
			require.False(t, IsPowerOfTwo(x), x)
		}
		require.True(t, IsPowerOfTwo(uint64(1<<63)))
	})

	t.Run("Log2", func(t *testing.T) {
		require.Equal(t, -1, Log2(0))
		require.Equal(t, -1, Log2(-4))
		require.Equal(t, 0, Log2(1))
		require.Equal(t, 9, Log2(512))
		require.Equal(t, 9, Log2(761))
	})

	t.Run("GCD", func(t *testing.T) {
		require.Equal(t, 1, GCD(3, 512))
		require.Equal(t, 4, GCD(12, 8))
		require.Equal(t, 4, GCD(-12, 8))
		require.Equal(t, 7, GCD(0, 7))
		require.Equal(t, uint64(5), GCD(uint64(15), uint64(10)))
	})

	t.Run("BitReverse64", func(t *testing.T) {
		var have []int
		for i := 0; i < 8; i++ {
			have = append(have, BitReverse64(i, 3))
		}
		require.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, have)
		require.Equal(t, uint64(1), BitReverse64(uint64(1<<9), 10))
	})
}
