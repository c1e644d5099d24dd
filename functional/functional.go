// Package functional describes degrees of freedom as linear functionals on
// polynomial spaces, the dual sets they form, and the map from reference
// cell entities to the dofs that live on them.
package functional

import (
	"fmt"
	"strings"

	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/quadrature"
	"github.com/notargets/gobasis/reference"
)

type Kind uint8

const (
	PointEval Kind = iota
	ComponentPointEval
	PointDeriv
	IntegralMoment
	ScaledNormalMoment
	PointScaledNormalEval
	FrobeniusMoment
)

func (k Kind) String() string {
	switch k {
	case PointEval:
		return "PointEval"
	case ComponentPointEval:
		return "ComponentPointEval"
	case PointDeriv:
		return "PointDeriv"
	case IntegralMoment:
		return "IntegralMoment"
	case ScaledNormalMoment:
		return "ScaledNormalMoment"
	case PointScaledNormalEval:
		return "PointScaledNormalEval"
	case FrobeniusMoment:
		return "FrobeniusMoment"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Term is one weighted sample: Weight * d^Alpha f_Component(Points[Point])
type Term struct {
	Point     int
	Alpha     polyset.MultiIndex
	Component int
	Weight    float64
}

// Functional is a linear functional L(f) = sum over terms of
// Weight * d^Alpha f_Component(x_Point)
type Functional interface {
	Kind() Kind
	Cell() *reference.Cell
	Points() [][]float64
	Terms() []Term
	MaxOrder() int
	// Evaluate applies the functional to every member of a tabulation taken
	// at Points() with at least MaxOrder() derivatives
	Evaluate(tab polyset.Tabulation) (vals []float64, err error)
	String() string
}

type functional struct {
	kind   Kind
	cell   *reference.Cell
	rule   *quadrature.Rule // nil for point functionals
	points [][]float64
	terms  []Term
	label  string
}

func (f *functional) Kind() Kind { return f.kind }

func (f *functional) Cell() *reference.Cell { return f.cell }

func (f *functional) Points() [][]float64 {
	pts := make([][]float64, len(f.points))
	for i, p := range f.points {
		pts[i] = append([]float64(nil), p...)
	}
	return pts
}

func (f *functional) Terms() []Term { return append([]Term(nil), f.terms...) }

func (f *functional) MaxOrder() (order int) {
	for _, t := range f.terms {
		if o := t.Alpha.Order(); o > order {
			order = o
		}
	}
	return
}

func (f *functional) Evaluate(tab polyset.Tabulation) (vals []float64, err error) {
	return evaluateTerms(f.terms, 0, tab)
}

func (f *functional) String() string {
	return fmt.Sprintf("%v(%s)", f.kind, f.label)
}

// evaluateTerms reduces a tabulation to one value per member, reading the
// functional's points starting at column offset
func evaluateTerms(terms []Term, offset int, tab polyset.Tabulation) (vals []float64, err error) {
	var members, ncomp, npts int
	for _, T := range tab {
		members, ncomp, npts = T.Dims()
		break
	}
	vals = make([]float64, members)
	for _, t := range terms {
		T, ok := tab[t.Alpha]
		if !ok {
			err = fmt.Errorf("tabulation is missing derivative %v", t.Alpha)
			return
		}
		if t.Component >= ncomp {
			err = fmt.Errorf("functional reads component %d of a %d component space",
				t.Component, ncomp)
			return
		}
		if offset+t.Point >= npts {
			err = fmt.Errorf("functional reads point %d of %d", offset+t.Point, npts)
			return
		}
		for m := 0; m < members; m++ {
			vals[m] += t.Weight * T.At(m, t.Component, offset+t.Point)
		}
	}
	return
}

func formatPoint(x []float64) string {
	s := make([]string, len(x))
	for i, v := range x {
		s[i] = fmt.Sprintf("%.4g", v)
	}
	return "(" + strings.Join(s, ",") + ")"
}

func NewPointEvaluation(cell *reference.Cell, x []float64) Functional {
	return &functional{
		kind:   PointEval,
		cell:   cell,
		points: [][]float64{append([]float64(nil), x...)},
		terms:  []Term{{Weight: 1}},
		label:  formatPoint(x),
	}
}

// NewComponentPointEvaluation evaluates one component of a vector valued
// function at x
func NewComponentPointEvaluation(cell *reference.Cell, x []float64, comp int) Functional {
	return &functional{
		kind:   ComponentPointEval,
		cell:   cell,
		points: [][]float64{append([]float64(nil), x...)},
		terms:  []Term{{Component: comp, Weight: 1}},
		label:  fmt.Sprintf("%s[%d]", formatPoint(x), comp),
	}
}

func NewPointDerivative(cell *reference.Cell, x []float64, alpha polyset.MultiIndex) Functional {
	return &functional{
		kind:   PointDeriv,
		cell:   cell,
		points: [][]float64{append([]float64(nil), x...)},
		terms:  []Term{{Alpha: alpha, Weight: 1}},
		label:  fmt.Sprintf("%s,d%v", formatPoint(x), alpha.Format(cell.SpatialDimension())),
	}
}

// NewIntegralMoment is sum_q w_q phi_q f_comp(x_q) over a rule on the cell
func NewIntegralMoment(cell *reference.Cell, q *quadrature.Rule, phi []float64, comp int) (Functional, error) {
	if len(phi) != q.Len() {
		return nil, fmt.Errorf("moment weight has %d values for %d quadrature points", len(phi), q.Len())
	}
	var (
		w     = q.Weights()
		terms = make([]Term, q.Len())
	)
	for i := range w {
		terms[i] = Term{Point: i, Component: comp, Weight: w[i] * phi[i]}
	}
	return &functional{
		kind:   IntegralMoment,
		cell:   cell,
		rule:   q,
		points: q.Points(),
		terms:  terms,
		label:  fmt.Sprintf("deg %d,comp %d", q.Degree(), comp),
	}, nil
}

// NewScaledNormalMoment integrates (f·n) phi over a facet, with n the
// facet's scaled outward normal. The facet rule is exact to degree and phi
// holds its values at the points of that rule on the reference facet.
func NewScaledNormalMoment(cell *reference.Cell, facet, degree int, phi []float64) (Functional, error) {
	var (
		sd = cell.SpatialDimension()
	)
	q, pts, err := quadrature.MakeOnEntity(cell, sd-1, facet, degree)
	if err != nil {
		return nil, err
	}
	if len(phi) != q.Len() {
		return nil, fmt.Errorf("moment weight has %d values for %d quadrature points", len(phi), q.Len())
	}
	n, err := cell.ScaledNormal(facet)
	if err != nil {
		return nil, err
	}
	w := q.Weights()
	var terms []Term
	for i := range w {
		for d := 0; d < sd; d++ {
			terms = append(terms, Term{Point: i, Component: d, Weight: w[i] * phi[i] * n[d]})
		}
	}
	return &functional{
		kind:   ScaledNormalMoment,
		cell:   cell,
		rule:   q,
		points: pts,
		terms:  terms,
		label:  fmt.Sprintf("facet %d,deg %d", facet, q.Degree()),
	}, nil
}

// NewPointScaledNormalEvaluation is f(x)·n for the scaled normal of facet
func NewPointScaledNormalEvaluation(cell *reference.Cell, facet int, x []float64) (Functional, error) {
	n, err := cell.ScaledNormal(facet)
	if err != nil {
		return nil, err
	}
	terms := make([]Term, len(n))
	for d := range n {
		terms[d] = Term{Component: d, Weight: n[d]}
	}
	return &functional{
		kind:   PointScaledNormalEval,
		cell:   cell,
		points: [][]float64{append([]float64(nil), x...)},
		terms:  terms,
		label:  fmt.Sprintf("facet %d,%s", facet, formatPoint(x)),
	}, nil
}

// NewFrobeniusMoment is sum_q w_q <f(x_q), Phi(x_q)> with Phi indexed
// [component][point]
func NewFrobeniusMoment(cell *reference.Cell, q *quadrature.Rule, Phi [][]float64) (Functional, error) {
	w := q.Weights()
	var terms []Term
	for c, phi := range Phi {
		if len(phi) != len(w) {
			return nil, fmt.Errorf("component %d of the moment weight has %d values for %d quadrature points",
				c, len(phi), len(w))
		}
		for i := range w {
			terms = append(terms, Term{Point: i, Component: c, Weight: w[i] * phi[i]})
		}
	}
	return &functional{
		kind:   FrobeniusMoment,
		cell:   cell,
		rule:   q,
		points: q.Points(),
		terms:  terms,
		label:  fmt.Sprintf("deg %d,%d components", q.Degree(), len(Phi)),
	}, nil
}
