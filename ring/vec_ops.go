package ring

import (
	"fmt"
)

// AddVec evaluates p3 = p1 + p2 mod Q.
// p1, p2, p3 must be of the same size.
func AddVec(p1, p2, p3 []uint64, m Modulus) {

	N := checkVec(p1, p2, p3)

	for j := 0; j < N-(N&7); j = j + 8 {

		x := (*[8]uint64)(p1[j : j+8])
		y := (*[8]uint64)(p2[j : j+8])
		z := (*[8]uint64)(p3[j : j+8])

		z[0] = CRed(x[0]+y[0], m.Q)
		z[1] = CRed(x[1]+y[1], m.Q)
		z[2] = CRed(x[2]+y[2], m.Q)
		z[3] = CRed(x[3]+y[3], m.Q)
		z[4] = CRed(x[4]+y[4], m.Q)
		z[5] = CRed(x[5]+y[5], m.Q)
		z[6] = CRed(x[6]+y[6], m.Q)
		z[7] = CRed(x[7]+y[7], m.Q)
	}

	for i := N - (N & 7); i < N; i++ {
		p3[i] = CRed(p1[i]+p2[i], m.Q)
	}
}

// SubVec evaluates p3 = p1 - p2 mod Q.
// p1, p2, p3 must be of the same size.
func SubVec(p1, p2, p3 []uint64, m Modulus) {

	N := checkVec(p1, p2, p3)

	for j := 0; j < N-(N&7); j = j + 8 {

		x := (*[8]uint64)(p1[j : j+8])
		y := (*[8]uint64)(p2[j : j+8])
		z := (*[8]uint64)(p3[j : j+8])

		z[0] = CRed(x[0]+m.Q-y[0], m.Q)
		z[1] = CRed(x[1]+m.Q-y[1], m.Q)
		z[2] = CRed(x[2]+m.Q-y[2], m.Q)
		z[3] = CRed(x[3]+m.Q-y[3], m.Q)
		z[4] = CRed(x[4]+m.Q-y[4], m.Q)
		z[5] = CRed(x[5]+m.Q-y[5], m.Q)
		z[6] = CRed(x[6]+m.Q-y[6], m.Q)
		z[7] = CRed(x[7]+m.Q-y[7], m.Q)
	}

	for i := N - (N & 7); i < N; i++ {
		p3[i] = CRed(p1[i]+m.Q-p2[i], m.Q)
	}
}

// MulCoeffsVec evaluates p3 = p1 * p2 mod Q coefficient-wise.
// p1, p2, p3 must be of the same size.
func MulCoeffsVec(p1, p2, p3 []uint64, m Modulus) {

	N := checkVec(p1, p2, p3)

	q, bredconstant := m.Q, m.BRedConstant

	for j := 0; j < N-(N&7); j = j + 8 {

		x := (*[8]uint64)(p1[j : j+8])
		y := (*[8]uint64)(p2[j : j+8])
		z := (*[8]uint64)(p3[j : j+8])

		z[0] = BRed(x[0], y[0], q, bredconstant)
		z[1] = BRed(x[1], y[1], q, bredconstant)
		z[2] = BRed(x[2], y[2], q, bredconstant)
		z[3] = BRed(x[3], y[3], q, bredconstant)
		z[4] = BRed(x[4], y[4], q, bredconstant)
		z[5] = BRed(x[5], y[5], q, bredconstant)
		z[6] = BRed(x[6], y[6], q, bredconstant)
		z[7] = BRed(x[7], y[7], q, bredconstant)
	}

	for i := N - (N & 7); i < N; i++ {
		p3[i] = BRed(p1[i], p2[i], q, bredconstant)
	}
}

// MulScalarVec evaluates p2 = p1 * scalar mod Q.
// p1, p2 must be of the same size.
func MulScalarVec(p1 []uint64, scalar uint64, p2 []uint64, m Modulus) {

	checkVec(p1, p2, p2)

	for i := range p1 {
		p2[i] = BRed(p1[i], scalar, m.Q, m.BRedConstant)
	}
}

func checkVec(p1, p2, p3 []uint64) (N int) {
	N = len(p1)
	if len(p2) != N || len(p3) != N {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d len(p3)=%d", N, len(p2), len(p3)))
	}
	return
}
