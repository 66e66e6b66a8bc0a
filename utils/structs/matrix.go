package structs

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Matrix is a struct wrapping a double slice of components of type T.
// Rows are independent slices and may be handed to different workers.
type Matrix[T any] [][]T

// NewMatrix allocates a new zero [Matrix] of the given dimensions,
// backed by a single contiguous slice.
func NewMatrix[T any](rows, cols int) (m Matrix[T]) {

	if rows < 0 || cols < 0 {
		panic(fmt.Errorf("cannot NewMatrix: invalid dimensions %dx%d", rows, cols))
	}

	buf := make([]T, rows*cols)
	m = make(Matrix[T], rows)
	for i := range m {
		m[i] = buf[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return
}

// Rows returns the number of rows of the receiver.
func (m Matrix[T]) Rows() int {
	return len(m)
}

// Cols returns the number of columns of the receiver,
// or -1 if the rows are not all of the same size.
func (m Matrix[T]) Cols() int {
	if len(m) == 0 {
		return 0
	}
	cols := len(m[0])
	for i := range m {
		if len(m[i]) != cols {
			return -1
		}
	}
	return cols
}

// Column copies the j-th column of the receiver on col.
func (m Matrix[T]) Column(j int, col []T) {
	for i := range m {
		col[i] = m[i][j]
	}
}

// SetColumn sets the j-th column of the receiver to col.
func (m Matrix[T]) SetColumn(j int, col []T) {
	for i := range m {
		m[i][j] = col[i]
	}
}

// Copy copies the operand on the receiver, up to the
// maximum available size between the two.
func (m Matrix[T]) Copy(other Matrix[T]) {
	for i := 0; i < min(len(m), len(other)); i++ {
		copy(m[i], other[i])
	}
}

// Clone returns a deep copy of the object.
func (m Matrix[T]) Clone() (mcpy Matrix[T]) {

	cols := m.Cols()

	if cols < 0 {
		mcpy = make(Matrix[T], len(m))
		for i := range m {
			mcpy[i] = make([]T, len(m[i]))
			copy(mcpy[i], m[i])
		}
		return
	}

	mcpy = NewMatrix[T](len(m), cols)
	mcpy.Copy(m)
	return
}

// Equal performs a deep equal.
func (m Matrix[T]) Equal(other *Matrix[T]) bool {
	if other == nil {
		return false
	}
	return cmp.Equal([][]T(m), [][]T(*other))
}
