package ring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkNTT(b *testing.B) {

	for _, p := range []struct {
		q    uint64
		logN int
		kind Relation
	}{
		{6984193, 9, Cyclic},
		{0x1fffffffffe00001, 12, Negacyclic},
		{0x1fffffffffe00001, 16, Negacyclic},
	} {

		tc := genTestParams(b, p.q, p.logN, p.kind)

		for _, variant := range []Variant{Recursive, Iterative} {

			ntt, err := NewNTT(tc.m, tc.n, tc.table, variant)
			require.NoError(b, err)

			poly := tc.sampler.ReadNew(tc.n)

			b.Run(fmt.Sprintf("Forward/%s/N=%d", variant, tc.n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					ntt.Forward(poly, poly)
				}
			})

			b.Run(fmt.Sprintf("Backward/%s/N=%d", variant, tc.n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					ntt.Backward(poly, poly)
				}
			})
		}
	}
}
