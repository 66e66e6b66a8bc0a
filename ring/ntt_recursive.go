package ring

// NumberTheoreticTransformerRecursive computes the transform by walking
// the butterfly tree depth first.
type NumberTheoreticTransformerRecursive struct {
	numberTheoreticTransformerBase
}

// Forward writes the forward NTT of p1 on p2.
func (ntt NumberTheoreticTransformerRecursive) Forward(p1, p2 []uint64) {
	ntt.ForwardRecursive(p1, p2)
}

// Backward writes the backward NTT of p1 on p2.
func (ntt NumberTheoreticTransformerRecursive) Backward(p1, p2 []uint64) {
	ntt.BackwardRecursive(p1, p2)
}

// segment is a node of the butterfly tree: the coefficients
// [offset, offset+size) and the index of its root in the table.
type segment struct {
	offset, size, node int
	combine            bool
}

// maxSegments bounds the depth of the explicit stack:
// at most two pending segments per tree level.
const maxSegments = 2*64 + 1

// ForwardRecursive writes the forward NTT of p1 on p2.
//
// The segment of node r is split in halves x and y into x + Roots[r]*y
// and x - Roots[r]*y, which are then transformed with the nodes 2r+1 and
// 2r+2. The recursion is unrolled on an explicit stack and p2 is the only
// buffer, so the output is in the order of the leaves of the tree.
func (ntt numberTheoreticTransformerBase) ForwardRecursive(p1, p2 []uint64) {

	ntt.load(p1, p2, "ForwardRecursive")

	m, roots := ntt.modulus, ntt.table.Roots

	var buf [maxSegments]segment
	stack := append(buf[:0], segment{offset: 0, size: ntt.n, node: 0})

	for len(stack) != 0 {

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.size == 1 {
			continue
		}

		h := s.size >> 1
		w := roots[s.node]

		x := p2[s.offset : s.offset+h]
		y := p2[s.offset+h : s.offset+s.size]

		for i := range x {
			x[i], y[i] = butterfly(x[i], y[i], w, m)
		}

		// Right pushed first so that the left subtree is processed first.
		stack = append(stack,
			segment{offset: s.offset + h, size: h, node: 2*s.node + 2},
			segment{offset: s.offset, size: h, node: 2*s.node + 1})
	}
}

// BackwardRecursive writes the backward NTT of p1 on p2.
//
// Both subtrees of node r are inverted first, then their outputs l and r
// are combined into l + r and (l - r)*RootsInv[r], each combination
// doubling the value, which is compensated by a final multiplication by
// 2^{-log2(N)}.
func (ntt numberTheoreticTransformerBase) BackwardRecursive(p1, p2 []uint64) {

	ntt.load(p1, p2, "BackwardRecursive")

	m, rootsInv := ntt.modulus, ntt.table.RootsInv

	var buf [maxSegments]segment
	stack := append(buf[:0], segment{offset: 0, size: ntt.n, node: 0})

	for len(stack) != 0 {

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.size == 1 {
			continue
		}

		h := s.size >> 1

		if !s.combine {
			// Post-order: the node is revisited once both children are done.
			s.combine = true
			stack = append(stack, s,
				segment{offset: s.offset + h, size: h, node: 2*s.node + 2},
				segment{offset: s.offset, size: h, node: 2*s.node + 1})
			continue
		}

		w := rootsInv[s.node]

		l := p2[s.offset : s.offset+h]
		r := p2[s.offset+h : s.offset+s.size]

		for i := range l {
			l[i], r[i] = invButterfly(l[i], r[i], w, m)
		}
	}

	ntt.scale(p2)
}
