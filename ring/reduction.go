package ring

import (
	"encoding/json"
	"fmt"
)

// Relation is the defining polynomial f(X) of degree n
// of the quotient ring Z_Q[X]/(f(X)).
type Relation int

const (
	// Cyclic is f(X) = X^n - 1.
	Cyclic = Relation(iota)
	// Negacyclic is f(X) = X^n + 1.
	Negacyclic
	// Trinomial is f(X) = X^n - X - 1 (NTRU Prime).
	Trinomial
)

// String returns the string representation of the receiver.
func (rel Relation) String() string {
	switch rel {
	case Cyclic:
		return "Cyclic"
	case Negacyclic:
		return "Negacyclic"
	case Trinomial:
		return "Trinomial"
	default:
		return fmt.Sprintf("Relation(%d)", int(rel))
	}
}

// MarshalJSON encodes the receiver as a JSON string.
func (rel Relation) MarshalJSON() ([]byte, error) {
	return json.Marshal(rel.String())
}

// UnmarshalJSON decodes a JSON string (or its integer value) on the receiver.
func (rel *Relation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var i int
		if err := json.Unmarshal(b, &i); err != nil {
			return fmt.Errorf("cannot UnmarshalJSON: %w", err)
		}
		s = Relation(i).String()
	}
	return rel.UnmarshalText([]byte(s))
}

// MarshalText encodes the receiver as text.
func (rel Relation) MarshalText() ([]byte, error) {
	return []byte(rel.String()), nil
}

// UnmarshalText decodes the text representation of a [Relation] on the receiver.
func (rel *Relation) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case "Cyclic", "cyclic":
		*rel = Cyclic
	case "Negacyclic", "negacyclic":
		*rel = Negacyclic
	case "Trinomial", "trinomial":
		*rel = Trinomial
	default:
		return fmt.Errorf("cannot UnmarshalText: invalid relation %q", s)
	}
	return nil
}

// Reduce returns the first n coefficients of v reduced modulo the receiver.
// Returns an error wrapping [ErrSize] if len(v) < n or [ErrShape] if the
// receiver is not a valid [Relation].
func (rel Relation) Reduce(m Modulus, v Poly, n int) (Poly, error) {
	switch rel {
	case Cyclic:
		return ReduceCyclic(m, v, n)
	case Negacyclic:
		return ReduceNegacyclic(m, v, n)
	case Trinomial:
		return ReduceTrinomial(m, v, n)
	default:
		return nil, fmt.Errorf("cannot Reduce: %w: invalid relation %s", ErrShape, rel)
	}
}

// ReduceCyclic reduces v in place modulo X^n - 1 and returns its first n coefficients.
func ReduceCyclic(m Modulus, v Poly, n int) (Poly, error) {

	if err := checkFold(v, n); err != nil {
		return nil, fmt.Errorf("cannot ReduceCyclic: %w", err)
	}

	for i := len(v) - 1; i >= n; i-- {
		v[i-n] = m.Add(v[i-n], v[i])
		v[i] = 0
	}

	return v[:n:n], nil
}

// ReduceNegacyclic reduces v in place modulo X^n + 1 and returns its first n coefficients.
func ReduceNegacyclic(m Modulus, v Poly, n int) (Poly, error) {

	if err := checkFold(v, n); err != nil {
		return nil, fmt.Errorf("cannot ReduceNegacyclic: %w", err)
	}

	for i := len(v) - 1; i >= n; i-- {
		v[i-n] = m.Sub(v[i-n], v[i])
		v[i] = 0
	}

	return v[:n:n], nil
}

// ReduceTrinomial reduces v in place modulo X^n - X - 1 and returns its first n coefficients.
// Since X^i = X^(i-n+1) + X^(i-n), the folding goes from the highest index down.
func ReduceTrinomial(m Modulus, v Poly, n int) (Poly, error) {

	if err := checkFold(v, n); err != nil {
		return nil, fmt.Errorf("cannot ReduceTrinomial: %w", err)
	}

	for i := len(v) - 1; i >= n; i-- {
		v[i-n+1] = m.Add(v[i-n+1], v[i])
		v[i-n] = m.Add(v[i-n], v[i])
		v[i] = 0
	}

	return v[:n:n], nil
}

func checkFold(v []uint64, n int) error {
	if n < 1 || len(v) < n {
		return fmt.Errorf("%w: len(v)=%d < n=%d", ErrSize, len(v), n)
	}
	return nil
}

// FoldInt64 returns v reduced modulo the relation of degree n over the integers.
// It is a reference for small values and does not check for overflows.
func FoldInt64(v []int64, n int, rel Relation) ([]int64, error) {

	if n < 1 || len(v) < n {
		return nil, fmt.Errorf("cannot FoldInt64: %w: len(v)=%d < n=%d", ErrSize, len(v), n)
	}

	w := make([]int64, len(v))
	copy(w, v)

	for i := len(w) - 1; i >= n; i-- {
		switch rel {
		case Cyclic:
			w[i-n] += w[i]
		case Negacyclic:
			w[i-n] -= w[i]
		case Trinomial:
			w[i-n+1] += w[i]
			w[i-n] += w[i]
		default:
			return nil, fmt.Errorf("cannot FoldInt64: %w: invalid relation %s", ErrShape, rel)
		}
		w[i] = 0
	}

	return w[:n:n], nil
}

// Recenter maps each coefficient c of v in place to ((c + q/2) mod q) - q/2,
// with a floored modulo, that is the representative of c in
// [-(q-1)/2, (q-1)/2] (or [-q/2, q/2-1] for an even q).
// The map is idempotent.
func Recenter(v []int64, q int64) {

	if q < 1 {
		panic(fmt.Sprintf("cannot Recenter: q=%d < 1", q))
	}

	half := q / 2

	for i, c := range v {
		// c + half can overflow for large inputs, the floored
		// remainder is taken first.
		r := c % q
		if r < 0 {
			r += q
		}
		if r >= q-half {
			r -= q
		}
		v[i] = r
	}
}

// RecenterPoly returns the centered representatives of the coefficients of p.
func RecenterPoly(m Modulus, p Poly) (v []int64) {
	v = make([]int64, len(p))
	for i := range p {
		v[i] = m.Center(p[i])
	}
	return
}
