package ring

import (
	"testing"

	"github.com/Pro7ech/goodntt/utils"
	"github.com/stretchr/testify/require"
)

func TestNTT(t *testing.T) {

	testNTTSample(t)

	forEachTestParameters(t, func(tc *testParams, t *testing.T) {
		testNTTRoundTrip(tc, t)
		testNTTVariantsMatch(tc, t)
		testNTTEvaluation(tc, t)
		testNTTLayers(tc, t)
		testNTTConvolution(tc, t)
	})

	testNTTInvalid(t)
}

func testNTTSample(t *testing.T) {

	t.Run("Sample", func(t *testing.T) {

		m, err := NewModulus(17)
		require.NoError(t, err)

		for _, tv := range []struct {
			roots, rootsInv []uint64
			a, b, want      Poly
		}{
			{
				roots:    []uint64{4, 2, 8},
				rootsInv: []uint64{13, 9, 15},
				a:        Poly{2, 0, 0, 7},
				b:        Poly{6, 0, 2, 0},
				want:     Poly{12, 3, 4, 8},
			},
			{
				roots:    []uint64{1, 1, 4, 1, 4, 2, 8},
				rootsInv: []uint64{1, 1, 13, 1, 13, 9, 15},
				a:        Poly{2, 0, 0, 7, 2, 0, 0, 7},
				b:        Poly{6, 0, 2, 0, 6, 0, 2, 0},
				want:     Poly{7, 11, 8, 16, 7, 11, 8, 16},
			},
			{
				roots:    []uint64{4, 2, 8, 6, 10, 5, 3},
				rootsInv: []uint64{13, 9, 15, 3, 12, 7, 6},
				a:        Poly{2, 0, 0, 7, 2, 0, 0, 7},
				b:        Poly{6, 0, 2, 0, 6, 0, 2, 0},
				want:     Poly{0, 6, 0, 0, 7, 0, 8, 16},
			},
		} {
			table, err := NewRootTable(m, tv.roots, tv.rootsInv)
			require.NoError(t, err)

			for _, variant := range []Variant{Recursive, Iterative} {

				ntt, err := NewNTT(m, table.N(), table, variant)
				require.NoError(t, err)

				a, b := NewPoly(ntt.N()), NewPoly(ntt.N())
				ntt.Forward(tv.a, a)
				ntt.Forward(tv.b, b)
				MulCoeffsVec(a, b, a, m)
				ntt.Backward(a, a)

				require.Equal(t, tv.want, a, "%s/%s", variant, table.Kind())
			}
		}
	})
}

func testNTTRoundTrip(tc *testParams, t *testing.T) {

	for _, variant := range []Variant{Recursive, Iterative} {

		t.Run(testString("RoundTrip/"+variant.String(), tc), func(t *testing.T) {

			ntt, err := NewNTT(tc.m, tc.n, tc.table, variant)
			require.NoError(t, err)

			p := tc.sampler.ReadNew(tc.n)
			pNTT := NewPoly(tc.n)

			ntt.Forward(p, pNTT)
			require.NotEqual(t, p, pNTT)

			// in place
			pInv := pNTT.Clone()
			ntt.Backward(pInv, pInv)
			require.Equal(t, p, pInv)
		})
	}
}

func testNTTVariantsMatch(tc *testParams, t *testing.T) {

	t.Run(testString("VariantsMatch", tc), func(t *testing.T) {

		rec, err := NewNTT(tc.m, tc.n, tc.table, Recursive)
		require.NoError(t, err)
		ite, err := NewNTT(tc.m, tc.n, tc.table, Iterative)
		require.NoError(t, err)

		p := tc.sampler.ReadNew(tc.n)

		p0, p1 := NewPoly(tc.n), NewPoly(tc.n)
		rec.Forward(p, p0)
		ite.Forward(p, p1)
		require.Equal(t, p0, p1)

		rec.Backward(p0, p0)
		ite.Backward(p1, p1)
		require.Equal(t, p0, p1)
		require.Equal(t, p, p0)
	})
}

// testNTTEvaluation checks that the k-th output of the forward transform is
// the evaluation of the input at psi^brv(k) (cyclic) or psi^(2*brv(k)+1) (negacyclic).
func testNTTEvaluation(tc *testParams, t *testing.T) {

	t.Run(testString("Evaluation", tc), func(t *testing.T) {

		if tc.n > 1<<10 {
			t.Skip("quadratic evaluation")
		}

		ntt, err := NewNTT(tc.m, tc.n, tc.table, Iterative)
		require.NoError(t, err)

		m := tc.m
		logN := utils.Log2(tc.n)

		p := tc.sampler.ReadNew(tc.n)
		pNTT := NewPoly(tc.n)
		ntt.Forward(p, pNTT)

		for k := 0; k < tc.n; k++ {

			e := utils.BitReverse64(uint64(k), logN)
			if tc.kind == Negacyclic {
				e = 2*e + 1
			}

			x := m.exp(tc.psi, e)

			// Horner
			var y uint64
			for i := tc.n - 1; i >= 0; i-- {
				y = m.Add(m.Mul(y, x), p[i])
			}

			require.Equal(t, y, pNTT[k], "k=%d", k)
		}
	})
}

func testNTTLayers(tc *testParams, t *testing.T) {

	t.Run(testString("Layers", tc), func(t *testing.T) {

		ntt, err := NewNTT(tc.m, tc.n, tc.table, Iterative)
		require.NoError(t, err)

		ite := ntt.(*NumberTheoreticTransformerIterative)

		p := tc.sampler.ReadNew(tc.n)

		want := NewPoly(tc.n)
		ite.Forward(p, want)

		have := p.Clone()
		for layer := 0; layer < ite.LogN(); layer++ {
			ite.ForwardLayer(have, layer)
		}
		require.Equal(t, want, have)

		for layer := 0; layer < ite.LogN(); layer++ {
			ite.BackwardLayer(have, layer)
		}
		MulScalarVec(have, ite.NInv(), have, tc.m)
		require.Equal(t, p, have)

		require.Panics(t, func() { ite.ForwardLayer(have, ite.LogN()) })
		require.Panics(t, func() { ite.BackwardLayer(have, -1) })
	})
}

func testNTTConvolution(tc *testParams, t *testing.T) {

	t.Run(testString("Convolution", tc), func(t *testing.T) {

		if tc.n > 1<<10 {
			t.Skip("quadratic reference")
		}

		ntt, err := NewNTT(tc.m, tc.n, tc.table, Recursive)
		require.NoError(t, err)

		a := tc.sampler.ReadNew(tc.n)
		b := tc.sampler.ReadNew(tc.n)

		want, err := MulNaiveInRing(tc.m, a, b, tc.n, tc.kind)
		require.NoError(t, err)

		aNTT, bNTT := NewPoly(tc.n), NewPoly(tc.n)
		ntt.Forward(a, aNTT)
		ntt.Forward(b, bNTT)
		MulCoeffsVec(aNTT, bNTT, aNTT, tc.m)
		ntt.Backward(aNTT, aNTT)

		require.Equal(t, want, aNTT)
	})
}

func testNTTInvalid(t *testing.T) {

	t.Run("Invalid", func(t *testing.T) {

		m, err := NewModulus(17)
		require.NoError(t, err)

		table, err := NewRootTable(m, []uint64{4, 2, 8}, []uint64{13, 9, 15})
		require.NoError(t, err)

		_, err = NewNTT(m, 3, table, Recursive)
		require.ErrorIs(t, err, ErrSize)

		_, err = NewNTT(m, 8, table, Recursive)
		require.ErrorIs(t, err, ErrModulus)

		_, err = NewNTT(m, 4, table, Variant(7))
		require.Error(t, err)

		// 4*13 != 1 mod 19
		m19, err := NewModulus(19)
		require.NoError(t, err)
		_, err = NewNTT(m19, 4, table, Iterative)
		require.ErrorIs(t, err, ErrModulus)

		ntt, err := NewNTT(m, 4, table, Iterative)
		require.NoError(t, err)
		require.Equal(t, 4, ntt.N())
		require.Equal(t, m, ntt.Modulus())
		have := ntt.Table()
		require.True(t, table.Equal(&have))

		require.Panics(t, func() { ntt.Forward(make([]uint64, 2), make([]uint64, 4)) })
	})
}
