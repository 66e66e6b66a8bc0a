package ring

import (
	"fmt"
)

// NumberTheoreticTransformerIterative computes the transform
// in place, one layer of butterflies at a time.
type NumberTheoreticTransformerIterative struct {
	numberTheoreticTransformerBase
}

// Forward writes the forward NTT of p1 on p2.
func (ntt NumberTheoreticTransformerIterative) Forward(p1, p2 []uint64) {
	ntt.load(p1, p2, "Forward")
	ntt.ForwardIterative(p2)
}

// Backward writes the backward NTT of p1 on p2.
func (ntt NumberTheoreticTransformerIterative) Backward(p1, p2 []uint64) {
	ntt.load(p1, p2, "Backward")
	ntt.BackwardIterative(p2)
}

// ForwardIterative evaluates p = NTT(p) in place.
// The layers go from chunk length N/2 down to 1 and the root index
// advances once per chunk, which walks the table in canonical order.
func (ntt numberTheoreticTransformerBase) ForwardIterative(p []uint64) {

	ntt.check(p, "ForwardIterative")

	m, roots, N := ntt.modulus, ntt.table.Roots, ntt.n

	var idx int
	for t := N >> 1; t > 0; t >>= 1 {
		for j1 := 0; j1 < N; j1 += t << 1 {

			w := roots[idx]
			idx++

			for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+1, jy+1 {
				p[jx], p[jy] = butterfly(p[jx], p[jy], w, m)
			}
		}
	}
}

// BackwardIterative evaluates p = NTT^-1(p) in place.
// The layers go from chunk length 1 up to N/2 and consume the
// inverse roots in the order of [RootTable.IterativeInverseOrder].
func (ntt numberTheoreticTransformerBase) BackwardIterative(p []uint64) {

	ntt.check(p, "BackwardIterative")

	m, rootsInv, N := ntt.modulus, ntt.rootsInvIter, ntt.n

	var idx int
	for t := 1; t < N; t <<= 1 {
		for j1 := 0; j1 < N; j1 += t << 1 {

			w := rootsInv[idx]
			idx++

			for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+1, jy+1 {
				p[jx], p[jy] = invButterfly(p[jx], p[jy], w, m)
			}
		}
	}

	ntt.scale(p)
}

// ForwardLayer applies in place the butterflies of the given layer of
// the forward transform, layer 0 being the first one (chunk length N/2).
// Applying the layers 0 to log2(N)-1 in that order is [NumberTheoreticTransformerIterative.Forward].
func (ntt NumberTheoreticTransformerIterative) ForwardLayer(p []uint64, layer int) {

	ntt.check(p, "ForwardLayer")
	ntt.checkLayer(layer, "ForwardLayer")

	m, N := ntt.modulus, ntt.n

	// Layer k holds the nodes of the tree level k.
	roots := ntt.table.Roots[1<<layer-1:]
	t := N >> (layer + 1)

	for k, j1 := 0, 0; j1 < N; k, j1 = k+1, j1+t<<1 {
		for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+1, jy+1 {
			p[jx], p[jy] = butterfly(p[jx], p[jy], roots[k], m)
		}
	}
}

// BackwardLayer applies in place the butterflies of the given layer of
// the backward transform, layer 0 being the first one (chunk length 1).
// The layers do not scale their output: applying the layers 0 to log2(N)-1
// then multiplying by NInv is
// [NumberTheoreticTransformerIterative.Backward].
func (ntt NumberTheoreticTransformerIterative) BackwardLayer(p []uint64, layer int) {

	ntt.check(p, "BackwardLayer")
	ntt.checkLayer(layer, "BackwardLayer")

	m, N := ntt.modulus, ntt.n

	// Layer k holds the nodes of the tree level log2(N)-1-k.
	L := ntt.logN - 1 - layer
	rootsInv := ntt.table.RootsInv[1<<L-1:]
	t := 1 << layer

	for k, j1 := 0, 0; j1 < N; k, j1 = k+1, j1+t<<1 {
		for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+1, jy+1 {
			p[jx], p[jy] = invButterfly(p[jx], p[jy], rootsInv[k], m)
		}
	}
}

func (ntt numberTheoreticTransformerBase) check(p []uint64, caller string) {
	// Sanity check
	if len(p) < ntt.n {
		panic(fmt.Sprintf("cannot %s: len(p)=%d < N=%d", caller, len(p), ntt.n))
	}
}

func (ntt numberTheoreticTransformerBase) checkLayer(layer int, caller string) {
	if layer < 0 || layer >= ntt.logN {
		panic(fmt.Sprintf("cannot %s: layer=%d must be in [0, %d)", caller, layer, ntt.logN))
	}
}
