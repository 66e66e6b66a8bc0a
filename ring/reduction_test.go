package ring

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/Pro7ech/goodntt/utils/sampling"
	"github.com/stretchr/testify/require"
)

func TestReduction(t *testing.T) {

	m, err := NewModulus(17)
	require.NoError(t, err)

	t.Run("Cyclic", func(t *testing.T) {
		v := Poly{1, 2, 3, 4, 5, 6, 7}
		have, err := ReduceCyclic(m, v, 4)
		require.NoError(t, err)
		require.Equal(t, Poly{6, 8, 10, 4}, have)
	})

	t.Run("Negacyclic", func(t *testing.T) {
		v := Poly{1, 2, 3, 4, 5, 6, 7}
		have, err := ReduceNegacyclic(m, v, 4)
		require.NoError(t, err)
		require.Equal(t, Poly{13, 13, 13, 4}, have)
	})

	t.Run("Trinomial", func(t *testing.T) {
		// x^3 = x + 1, x^4 = x^2 + x
		v := Poly{0, 0, 0, 1, 1}
		have, err := ReduceTrinomial(m, v, 3)
		require.NoError(t, err)
		require.Equal(t, Poly{1, 2, 1}, have)
	})

	t.Run("Trinomial/Product", func(t *testing.T) {
		a := make(Poly, 11)
		b := make(Poly, 11)
		for i := range a {
			a[i] = uint64(i + 1)
			b[i] = uint64(11 - i)
		}
		have, err := MulNaiveInRing(m, a, b, 11, Trinomial)
		require.NoError(t, err)
		require.Equal(t, Poly{9, 14, 1, 1, 15, 10, 4, 15, 10, 7, 7}, have)
	})

	t.Run("FoldInt64", func(t *testing.T) {

		source := sampling.NewSource([32]byte{})

		for _, rel := range []Relation{Cyclic, Negacyclic, Trinomial} {

			n := 11
			v := make([]int64, 2*n-1)
			for i := range v {
				v[i] = source.Int64n(1 << 20)
			}

			want, err := FoldInt64(v, n, rel)
			require.NoError(t, err)

			have, err := rel.Reduce(m, ReduceCoeffs(m, v), n)
			require.NoError(t, err)

			require.Equal(t, ReduceCoeffs(m, want), have, rel.String())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ReduceCyclic(m, Poly{1, 2}, 3)
		require.ErrorIs(t, err, ErrSize)
		_, err = ReduceTrinomial(m, Poly{1, 2}, 0)
		require.ErrorIs(t, err, ErrSize)
		_, err = Relation(5).Reduce(m, Poly{1, 2}, 1)
		require.ErrorIs(t, err, ErrShape)
		_, err = FoldInt64([]int64{1}, 2, Cyclic)
		require.ErrorIs(t, err, ErrSize)
	})

	t.Run("Recenter", func(t *testing.T) {

		v := []int64{0, 8, 9, 16, 17, -1, -8, -9, 25, math.MinInt64, math.MaxInt64}
		Recenter(v, 17)
		require.Equal(t, []int64{0, 8, -8, -1, 0, -1, -8, 8, 8, 8, 8}, v)

		w := append([]int64{}, v...)
		Recenter(w, 17)
		require.Equal(t, v, w)

		u := []int64{7, 8, 9, -8, -9}
		Recenter(u, 16)
		require.Equal(t, []int64{7, -8, -7, -8, 7}, u)
	})

	t.Run("RecenterPoly", func(t *testing.T) {
		p := Poly{0, 1, 8, 9, 16}
		v := RecenterPoly(m, p)
		require.Equal(t, []int64{0, 1, 8, -8, -1}, v)
		require.Equal(t, p, ReduceCoeffs(m, v))
	})

	t.Run("Relation/Marshal", func(t *testing.T) {

		for _, rel := range []Relation{Cyclic, Negacyclic, Trinomial} {
			b, err := json.Marshal(rel)
			require.NoError(t, err)

			var have Relation
			require.NoError(t, json.Unmarshal(b, &have))
			require.Equal(t, rel, have)
		}

		var rel Relation
		require.NoError(t, json.Unmarshal([]byte(`"trinomial"`), &rel))
		require.Equal(t, Trinomial, rel)
		require.NoError(t, json.Unmarshal([]byte(`1`), &rel))
		require.Equal(t, Negacyclic, rel)
		require.Error(t, json.Unmarshal([]byte(`"x^n+x+1"`), &rel))
		require.Equal(t, "Relation(9)", Relation(9).String())
	})
}
