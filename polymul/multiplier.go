// Package polymul implements the multiplication of polynomials in Z_Q[X]/(f(X))
// with number theoretic transforms extended by Good's permutation, which
// supports ring degrees that are not NTT friendly (e.g. f(X) = X^n - X - 1
// with n prime) and transforms computed under an auxiliary modulus.
package polymul

import (
	"fmt"

	"github.com/Pro7ech/goodntt/ring"
	"github.com/Pro7ech/goodntt/utils/concurrency"
	"github.com/Pro7ech/goodntt/utils/log"
	"gopkg.in/op/go-logging.v1"
)

// Multiplier computes products in Z_Q[X]/(f(X)) for a fixed set of [Parameters].
//
// The product is computed as follows:
//  1. the operands are reduced modulo WorkingQ and zero-padded to P0*P1 coefficients;
//  2. Good's permutation maps them on P0 x P1 matrices;
//  3. each of the P0 rows (lanes) is transformed with a forward NTT of size P1;
//  4. each of the P1 columns of the product is the cyclic product modulo X^P0 - 1
//     of the columns of the operands;
//  5. each lane is transformed back with a backward NTT;
//  6. the inverse Good's permutation maps the matrix back on P0*P1 coefficients,
//     which is the linear product of the operands;
//  7. the linear product is reduced modulo f(X);
//  8. if WorkingQ != Q, the coefficients are centered modulo WorkingQ, which gives
//     the product over the integers, then mapped modulo Q.
//
// If P0 = 1, P1 = N and the transform evaluates Z[X]/(f(X)), steps 2, 6 and 7 are skipped.
//
// A Multiplier is safe for concurrent use by multiple goroutines.
type Multiplier struct {
	params Parameters
	ntt    ring.NumberTheoreticTransformer
	log    *logging.Logger
}

// Option is an optional argument of [NewMultiplier].
type Option func(*Multiplier)

// WithLogger sets the logger of the [Multiplier].
// The default logger discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(m *Multiplier) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMultiplier instantiates a new [Multiplier] for the given [Parameters].
func NewMultiplier(params Parameters, opts ...Option) (m *Multiplier, err error) {

	m = &Multiplier{
		params: params,
		log:    log.Discard().GetLogger("polymul"),
	}

	for _, opt := range opts {
		opt(m)
	}

	shape := params.Shape()

	if m.ntt, err = ring.NewNTT(params.WorkingQ(), shape.P1, params.table, params.Variant()); err != nil {
		return nil, fmt.Errorf("cannot NewMultiplier: %w", err)
	}

	m.log.Infof("N=%d Q=%d WorkingQ=%d shape=%dx%d ring=%s table=%s variant=%s native=%t workers=%d",
		params.N(), params.Q().Q, params.WorkingQ().Q, shape.P0, shape.P1, params.Ring(),
		params.table.Kind(), params.Variant(), params.Native(), params.Workers())

	return
}

// Parameters returns the parameters of the receiver.
func (m *Multiplier) Parameters() Parameters {
	return m.params
}

// Multiply returns a * b in Z_Q[X]/(f(X)).
// a and b are signed coefficients of at most N coefficients and the result has
// exactly N coefficients, in [0, Q) or centered if the parameters say so.
//
// Returns an error wrapping [ring.ErrSize] if len(a) > N or len(b) > N, or
// [ring.ErrModulus] if WorkingQ != Q and WorkingQ is too small for the
// product of a and b to be recovered exactly (see [Parameters.CheckBound]).
func (m *Multiplier) Multiply(a, b []int64) (c []int64, err error) {

	params := m.params
	N := params.N()

	if len(a) > N || len(b) > N {
		return nil, fmt.Errorf("cannot Multiply: %w: len(a)=%d, len(b)=%d > N=%d", ring.ErrSize, len(a), len(b), N)
	}

	if params.Lifted() {
		if err = params.CheckBound(a, b); err != nil {
			return nil, fmt.Errorf("cannot Multiply: %w", err)
		}
	}

	qw := params.WorkingQ()

	prod, err := m.multiply(ring.ReduceCoeffs(qw, a), ring.ReduceCoeffs(qw, b))
	if err != nil {
		return nil, fmt.Errorf("cannot Multiply: %w", err)
	}

	q := params.Q()

	if params.Lifted() {
		m.log.Debugf("recentering modulo %d then %d", qw.Q, q.Q)
		c = ring.RecenterPoly(qw, prod)
		prod = ring.ReduceCoeffs(q, c)
	}

	if params.Centered() {
		c = ring.RecenterPoly(q, prod)
	} else {
		c = make([]int64, N)
		for i := range prod {
			c[i] = int64(prod[i])
		}
	}

	return
}

// MultiplyPoly returns a * b in Z_Q[X]/(f(X)) for residues modulo Q.
// The result is always in [0, Q).
// If WorkingQ != Q, the operands are lifted on their centered representatives.
func (m *Multiplier) MultiplyPoly(a, b ring.Poly) (ring.Poly, error) {

	q := m.params.Q()

	lift := func(p ring.Poly) []int64 {
		if m.params.Lifted() {
			return ring.RecenterPoly(q, p)
		}
		v := make([]int64, len(p))
		for i := range p {
			v[i] = int64(q.ReduceUint(p[i]))
		}
		return v
	}

	c, err := m.Multiply(lift(a), lift(b))
	if err != nil {
		return nil, err
	}

	return ring.ReduceCoeffs(q, c), nil
}

// Multiply returns a * b in Z_Q[X]/(f(X)) for the given parameters.
// See [Multiplier.Multiply].
func Multiply(a, b []int64, params Parameters) ([]int64, error) {
	m, err := NewMultiplier(params)
	if err != nil {
		return nil, err
	}
	return m.Multiply(a, b)
}

// scratch is the private buffer of a worker.
type scratch struct {
	colA ring.Poly
	colB ring.Poly
	prod ring.Poly
}

func newScratch(P0 int) *scratch {
	return &scratch{
		colA: ring.NewPoly(P0),
		colB: ring.NewPoly(P0),
		prod: ring.NewPoly(2*P0 - 1),
	}
}

// executor runs f(resource, i) for i in [0, n) and waits for completion.
type executor interface {
	ForEach(n int, f func(s *scratch, i int) (err error)) (err error)
}

type sequential struct {
	*scratch
}

func (e sequential) ForEach(n int, f func(s *scratch, i int) (err error)) (err error) {
	for i := 0; i < n; i++ {
		if err = f(e.scratch, i); err != nil {
			return
		}
	}
	return
}

func (m *Multiplier) newExecutor() executor {

	P0 := m.params.Shape().P0

	if m.params.Workers() <= 1 {
		return sequential{newScratch(P0)}
	}

	scratches := make([]*scratch, m.params.Workers())
	for i := range scratches {
		scratches[i] = newScratch(P0)
	}

	return concurrency.NewResourceManager(scratches)
}

// multiply returns a * b mod (WorkingQ, f(X)) for a and b reduced modulo WorkingQ.
func (m *Multiplier) multiply(a, b ring.Poly) (c ring.Poly, err error) {

	params := m.params
	N, shape, qw := params.N(), params.Shape(), params.WorkingQ()

	if a, err = ring.Pad(a, shape.N()); err != nil {
		return
	}

	if b, err = ring.Pad(b, shape.N()); err != nil {
		return
	}

	exec := m.newExecutor()

	m.log.Debugf("Good's forward %dx%d", shape.P0, shape.P1)

	matA, err := shape.Forward(a)
	if err != nil {
		return nil, err
	}

	matB, err := shape.Forward(b)
	if err != nil {
		return nil, err
	}

	m.log.Debugf("NTT forward on %d lanes", 2*shape.P0)

	if err = exec.ForEach(2*shape.P0, func(_ *scratch, i int) error {
		lane := matA[i>>1]
		if i&1 == 1 {
			lane = matB[i>>1]
		}
		m.ntt.Forward(lane, lane)
		return nil
	}); err != nil {
		return nil, err
	}

	if shape.P0 == 1 {

		m.log.Debugf("pointwise product on %d coefficients", shape.P1)

		ring.MulCoeffsVec(matA[0], matB[0], matA[0], qw)

	} else {

		m.log.Debugf("cyclic products modulo X^%d - 1 on %d columns", shape.P0, shape.P1)

		if err = exec.ForEach(shape.P1, func(s *scratch, j int) (err error) {

			matA.Column(j, s.colA)
			matB.Column(j, s.colB)

			s.prod.Zero()
			ring.MulNaiveThenAdd(qw, s.colA, s.colB, s.prod)

			var col ring.Poly
			if col, err = ring.ReduceCyclic(qw, s.prod, shape.P0); err != nil {
				return
			}

			matA.SetColumn(j, col)

			return
		}); err != nil {
			return nil, err
		}
	}

	m.log.Debugf("NTT backward on %d lanes", shape.P0)

	if err = exec.ForEach(shape.P0, func(_ *scratch, i int) error {
		m.ntt.Backward(matA[i], matA[i])
		return nil
	}); err != nil {
		return nil, err
	}

	if params.Native() {
		return matA[0], nil
	}

	m.log.Debugf("Good's inverse %dx%d", shape.P0, shape.P1)

	if c, err = shape.Inverse(matA); err != nil {
		return nil, err
	}

	m.log.Debugf("reduction modulo %s of degree %d", params.Ring(), N)

	return params.Ring().Reduce(qw, c, N)
}
