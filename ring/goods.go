package ring

import (
	"fmt"

	"github.com/Pro7ech/goodntt/utils"
	"github.com/Pro7ech/goodntt/utils/structs"
)

// GoodsMatrix is the two-dimensional view of a polynomial of
// P0*P1 coefficients under Good's permutation: P0 rows (lanes)
// of P1 coefficients each.
type GoodsMatrix = structs.Matrix[uint64]

// GoodsShape stores the dimensions of a Good's (CRT) index decomposition.
// By the Chinese remainder theorem, idx -> (idx mod P0, idx mod P1) is a
// bijection between [0, P0*P1) and [0, P0) x [0, P1), which maps the
// cyclic convolution of size P0*P1 onto a two-dimensional cyclic
// convolution of size P0 x P1.
type GoodsShape struct {
	P0 int
	P1 int
}

// NewGoodsShape returns a new [GoodsShape].
// Returns an error wrapping [ErrShape] unless p0 >= 1, p1 is a power
// of two and gcd(p0, p1) = 1.
func NewGoodsShape(p0, p1 int) (GoodsShape, error) {

	if p0 < 1 {
		return GoodsShape{}, fmt.Errorf("cannot NewGoodsShape: %w: p0=%d must be at least 1", ErrShape, p0)
	}

	if !utils.IsPowerOfTwo(p1) {
		return GoodsShape{}, fmt.Errorf("cannot NewGoodsShape: %w: p1=%d must be a power of two", ErrShape, p1)
	}

	if g := utils.GCD(p0, p1); g != 1 {
		return GoodsShape{}, fmt.Errorf("cannot NewGoodsShape: %w: gcd(p0=%d, p1=%d)=%d != 1", ErrShape, p0, p1, g)
	}

	return GoodsShape{P0: p0, P1: p1}, nil
}

// N returns P0*P1.
func (s GoodsShape) N() int {
	return s.P0 * s.P1
}

// NewMatrix allocates a zero [GoodsMatrix] of dimension P0 x P1.
func (s GoodsShape) NewMatrix() GoodsMatrix {
	return structs.NewMatrix[uint64](s.P0, s.P1)
}

// Forward returns the Good's permutation of coeffs.
// Returns an error wrapping [ErrSize] if len(coeffs) != P0*P1.
func (s GoodsShape) Forward(coeffs Poly) (mat GoodsMatrix, err error) {
	mat = s.NewMatrix()
	if err = s.ForwardTo(coeffs, mat); err != nil {
		return nil, err
	}
	return
}

// ForwardTo writes the Good's permutation of coeffs on mat.
// Returns an error wrapping [ErrSize] if len(coeffs) != P0*P1
// or [ErrShape] if mat is not P0 x P1.
func (s GoodsShape) ForwardTo(coeffs Poly, mat GoodsMatrix) (err error) {

	if len(coeffs) != s.N() {
		return fmt.Errorf("cannot Forward: %w: len(coeffs)=%d != P0*P1=%d", ErrSize, len(coeffs), s.N())
	}

	if err = s.checkMatrix(mat); err != nil {
		return fmt.Errorf("cannot Forward: %w", err)
	}

	// Walks (idx mod P0, idx mod P1) incrementally.
	var i, j int
	for idx := range coeffs {
		mat[i][j] = coeffs[idx]
		if i++; i == s.P0 {
			i = 0
		}
		if j++; j == s.P1 {
			j = 0
		}
	}

	return
}

// Inverse returns the polynomial of P0*P1 coefficients
// whose Good's permutation is mat.
// Returns an error wrapping [ErrShape] if mat is not P0 x P1.
func (s GoodsShape) Inverse(mat GoodsMatrix) (coeffs Poly, err error) {
	coeffs = NewPoly(s.N())
	if err = s.InverseTo(mat, coeffs); err != nil {
		return nil, err
	}
	return
}

// InverseTo writes on coeffs the polynomial whose Good's permutation is mat.
// Returns an error wrapping [ErrShape] if mat is not P0 x P1
// or [ErrSize] if len(coeffs) != P0*P1.
func (s GoodsShape) InverseTo(mat GoodsMatrix, coeffs Poly) (err error) {

	if err = s.checkMatrix(mat); err != nil {
		return fmt.Errorf("cannot Inverse: %w", err)
	}

	if len(coeffs) != s.N() {
		return fmt.Errorf("cannot Inverse: %w: len(coeffs)=%d != P0*P1=%d", ErrSize, len(coeffs), s.N())
	}

	var i, j int
	for idx := range coeffs {
		coeffs[idx] = mat[i][j]
		if i++; i == s.P0 {
			i = 0
		}
		if j++; j == s.P1 {
			j = 0
		}
	}

	return
}

func (s GoodsShape) checkMatrix(mat GoodsMatrix) error {
	if mat.Rows() != s.P0 || mat.Cols() != s.P1 {
		return fmt.Errorf("%w: matrix is %dx%d but shape is %dx%d", ErrShape, mat.Rows(), mat.Cols(), s.P0, s.P1)
	}
	return nil
}
