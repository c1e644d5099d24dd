// Package quadrature builds quadrature rules on the reference cells. Simplex
// rules are collapsed-coordinate (Stroud conical product) rules assembled from
// one dimensional Gauss-Jacobi rules.
package quadrature

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gobasis/reference"
)

// Rule is an immutable set of points and weights on a reference cell
type Rule struct {
	cell    *reference.Cell
	degree  int
	points  [][]float64
	weights []float64
}

func NewRule(cell *reference.Cell, degree int, points [][]float64, weights []float64) (q *Rule, err error) {
	if len(points) != len(weights) {
		err = fmt.Errorf("quadrature has %d points and %d weights", len(points), len(weights))
		return
	}
	q = &Rule{
		cell:    cell,
		degree:  degree,
		points:  points,
		weights: weights,
	}
	return
}

func (q *Rule) Cell() *reference.Cell { return q.cell }

// Degree is the total polynomial degree integrated exactly
func (q *Rule) Degree() int { return q.degree }

func (q *Rule) Len() int { return len(q.weights) }

func (q *Rule) Points() [][]float64 {
	pts := make([][]float64, len(q.points))
	for i, p := range q.points {
		pts[i] = append([]float64(nil), p...)
	}
	return pts
}

func (q *Rule) Weights() []float64 { return append([]float64(nil), q.weights...) }

// Integrate applies the rule to a function sampled at Points()
func (q *Rule) Integrate(vals []float64) float64 {
	return floats.Dot(vals, q.weights)
}

// Make returns a rule on cell exact for polynomials of total degree degree
func Make(cell *reference.Cell, degree int) (q *Rule, err error) {
	if degree < 0 {
		degree = 0
	}
	// m point Gauss rules are exact to degree 2m-1
	m := (degree + 2) / 2
	var (
		pts [][]float64
		wts []float64
	)
	switch cell.Shape() {
	case reference.Interval:
		x, w := JacobiGQ(0, 0, m-1)
		for i := range x {
			pts = append(pts, []float64{x[i]})
		}
		wts = w
	case reference.Quadrilateral:
		x, w := JacobiGQ(0, 0, m-1)
		for i := range x {
			for j := range x {
				pts = append(pts, []float64{x[i], x[j]})
				wts = append(wts, w[i]*w[j])
			}
		}
	case reference.Triangle:
		// The collapsed direction carries one extra polynomial degree
		a, wa := JacobiGQ(0, 0, m-1)
		b, wb := JacobiGQ(1, 0, m-1)
		for j := range b {
			for i := range a {
				r := 0.5*(1+a[i])*(1-b[j]) - 1
				pts = append(pts, []float64{r, b[j]})
				wts = append(wts, 0.5*wa[i]*wb[j])
			}
		}
	case reference.Tetrahedron:
		a, wa := JacobiGQ(0, 0, m-1)
		b, wb := JacobiGQ(1, 0, m-1)
		c, wc := JacobiGQ(2, 0, m-1)
		for k := range c {
			for j := range b {
				for i := range a {
					t := c[k]
					s := 0.5*(1+b[j])*(1-c[k]) - 1
					r := 0.25*(1+a[i])*(1-b[j])*(1-c[k]) - 1
					pts = append(pts, []float64{r, s, t})
					wts = append(wts, 0.125*wa[i]*wb[j]*wc[k])
				}
			}
		}
	default:
		err = fmt.Errorf("%w: no quadrature on %v", reference.ErrShape, cell.Shape())
		return
	}
	return NewRule(cell, degree, pts, wts)
}

// MakeOnEntity maps a rule built on the sub-entity's reference shape onto the
// sub-entity (dim, id) of cell. Weights stay those of the reference entity.
func MakeOnEntity(cell *reference.Cell, dim, id, degree int) (q *Rule, pts [][]float64, err error) {
	shape, ok := cell.EntityShape(dim)
	if !ok {
		err = fmt.Errorf("%w: no quadrature on entity (%d,%d)", reference.ErrShape, dim, id)
		return
	}
	if q, err = Make(reference.NewCell(shape), degree); err != nil {
		return
	}
	pts, err = cell.MapPoints(dim, id, q.points)
	return
}
