package ring

import (
	"fmt"
	"testing"

	"github.com/Pro7ech/goodntt/utils/sampling"
	"github.com/stretchr/testify/require"
)

// testParameters are NTT friendly (q, n, kind) triplets.
var testParameters = []struct {
	q    uint64
	logN int
	kind Relation
}{
	{17, 3, Cyclic},
	{17, 3, Negacyclic},
	{12289, 10, Negacyclic},
	{6984193, 9, Cyclic},
	{0x1fffffffffe00001, 4, Cyclic},
	{0x1fffffffffe00001, 12, Negacyclic},
}

func testString(opname string, tc *testParams) string {
	return fmt.Sprintf("%s/q=%d/N=%d/%s", opname, tc.m.Q, tc.n, tc.kind)
}

type testParams struct {
	m       Modulus
	n       int
	kind    Relation
	psi     uint64
	table   RootTable
	sampler *UniformSampler
}

func genTestParams(t testing.TB, q uint64, logN int, kind Relation) (tc *testParams) {

	m, err := NewModulus(q)
	require.NoError(t, err)

	tc = &testParams{m: m, n: 1 << logN, kind: kind}

	order := tc.n
	if kind == Negacyclic {
		order <<= 1
	}

	tc.psi = findPrimitiveRoot(t, m, order)

	tc.table, err = NewRootTableFromPrimitiveRoot(m, tc.n, kind, tc.psi)
	require.NoError(t, err)

	tc.sampler = NewUniformSampler(sampling.NewSource([32]byte{}), m)

	return
}

// findPrimitiveRoot returns a primitive order-th root of unity modulo Q,
// order being a power of two dividing Q-1.
func findPrimitiveRoot(t testing.TB, m Modulus, order int) uint64 {

	require.Zero(t, (m.Q-1)%uint64(order), "%d does not divide Q-1", order)

	for g := uint64(2); g < m.Q; g++ {
		psi := m.exp(g, (m.Q-1)/uint64(order))
		if m.exp(psi, uint64(order>>1)) == m.Q-1 {
			return psi
		}
	}

	t.Fatalf("no primitive %d-th root of unity modulo %d", order, m.Q)
	return 0
}

func forEachTestParameters(t *testing.T, f func(tc *testParams, t *testing.T)) {
	for _, p := range testParameters {
		f(genTestParams(t, p.q, p.logN, p.kind), t)
	}
}
