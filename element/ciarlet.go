package element

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

// CiarletElement is the nodal basis dual to a set of functionals. Basis
// function i is sum_j C[i][j] phi_j over the members phi_j of the primal
// space, with C = (V^-1)^T and V[k][j] = L_k(phi_j).
type CiarletElement struct {
	name   string
	space  *polyset.PolynomialSet
	dual   *functional.DualSet
	degree  int
	mapping Mapping
	C       utils.Matrix
	cond    float64
}

type options struct {
	solver  Solver
	name    string
	logger  *slog.Logger
	mapping Mapping
}

type Option func(*options)

func WithSolver(s Solver) Option { return func(o *options) { o.solver = s } }

func WithName(name string) Option { return func(o *options) { o.name = name } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithMapping sets the pullback of the element, Affine when unset
func WithMapping(m Mapping) Option { return func(o *options) { o.mapping = m } }

func NewCiarletElement(space *polyset.PolynomialSet, dual *functional.DualSet, degree int,
	opts ...Option) (ce *CiarletElement, err error) {
	o := options{
		solver:  LUSolver{},
		name:    "Ciarlet",
		logger:  slog.Default(),
		mapping: Affine,
	}
	for _, opt := range opts {
		opt(&o)
	}
	var (
		M = space.Cardinality()
		N = dual.Len()
	)
	if space.Cell() != dual.Cell() {
		err = fmt.Errorf("%w: %s space on %v, functionals on %v",
			ErrCellMismatch, o.name, space.Cell(), dual.Cell())
		return
	}
	if N != M {
		err = fmt.Errorf("%w: %s expected %d functionals for a space of dimension %d, have %d",
			ErrCardinality, o.name, M, M, N)
		return
	}
	var V utils.Matrix
	if V, err = dual.Matrix(space); err != nil {
		return
	}
	cond := V.ConditionNumber()
	o.logger.Debug("dual matrix", "element", o.name, "dim", M, "cond", cond)
	if cond > utils.CONDTOL {
		o.logger.Warn("dual matrix is poorly conditioned", "element", o.name, "cond", cond)
	}
	var Vinv utils.Matrix
	if Vinv, err = o.solver.Invert(V); err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrSingular, o.name, err)
		return
	}
	if o.logger.Enabled(context.Background(), slog.LevelDebug) {
		I := utils.NewMatrix(M, M)
		for i := 0; i < M; i++ {
			I.Set(i, i, 1)
		}
		o.logger.Debug("dual matrix inverse", "element", o.name, "residual", V.Mul(Vinv).MaxAbsDiff(I))
	}
	ce = &CiarletElement{
		name:    o.name,
		space:   space,
		dual:    dual,
		degree:  degree,
		mapping: o.mapping,
		C:       Vinv.Transpose(),
		cond:    cond,
	}
	ce.C.SetReadOnly(o.name + ".C")
	return
}

func (ce *CiarletElement) Name() string { return ce.name }

func (ce *CiarletElement) Cell() *reference.Cell { return ce.space.Cell() }

func (ce *CiarletElement) Degree() int { return ce.degree }

func (ce *CiarletElement) SpaceDimension() int { return ce.space.Cardinality() }

func (ce *CiarletElement) ValueShape() []int { return ce.space.ValueShape() }

func (ce *CiarletElement) ValueSize() int { return ce.space.ValueSize() }

// Mapping has one entry per value component
func (ce *CiarletElement) Mapping() []Mapping { return repeatMapping(ce.mapping, ce.ValueSize()) }

func (ce *CiarletElement) DualSet() *functional.DualSet { return ce.dual }

func (ce *CiarletElement) EntityDofs() *functional.EntityDofMap { return ce.dual.EntityDofs() }

func (ce *CiarletElement) PrimalSpace() *polyset.PolynomialSet { return ce.space }

// Coefficients is a writable copy of C
func (ce *CiarletElement) Coefficients() utils.Matrix { return ce.C.Copy() }

// ConditionNumber of the dual matrix the element was built from
func (ce *CiarletElement) ConditionNumber() float64 { return ce.cond }

// NodalBasis is the nodal basis as a polynomial set over the primal expansion
func (ce *CiarletElement) NodalBasis() (ps *polyset.PolynomialSet, err error) {
	return polyset.NewPolynomialSet(ce.space.Expansion(), ce.space.Degree(), ce.space.ValueShape(),
		ce.C.Mul(ce.space.Coefficients()))
}

func (ce *CiarletElement) Tabulate(order int, pts [][]float64, entity *reference.Entity) (tab polyset.Tabulation, err error) {
	if err = CheckOrder(order); err != nil {
		return
	}
	var cellPts [][]float64
	if cellPts, err = PullBack(ce.Cell(), pts, entity); err != nil {
		return
	}
	var primal polyset.Tabulation
	if primal, err = ce.space.Tabulate(order, cellPts); err != nil {
		return
	}
	var (
		N     = ce.SpaceDimension()
		ncomp = ce.ValueSize()
		np    = len(cellPts)
	)
	tab = make(polyset.Tabulation, len(primal))
	for alpha, P := range primal {
		T := polyset.NewTable(N, ncomp, np)
		tab[alpha] = T
		if np == 0 || N == 0 {
			continue
		}
		copy(T.Data(), ce.C.Mul(P.Matrix()).DataP())
	}
	return
}

func (ce *CiarletElement) String() string {
	return fmt.Sprintf("%s(%v, degree %d, dim %d)", ce.name, ce.Cell().Shape(), ce.degree, ce.SpaceDimension())
}
