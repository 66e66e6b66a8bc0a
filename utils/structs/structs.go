// Package structs implements helpers to generalize vectors and matrices of components.
package structs

// Equatable is implemented by types that can be compared for deep equality.
type Equatable[T any] interface {
	Equal(*T) bool
}

var _ Equatable[Matrix[uint64]] = Matrix[uint64]{}
