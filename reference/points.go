package reference

import (
	"fmt"
	"math"
)

// MakePoints returns the equispaced lattice points of the given degree that
// lie strictly inside the sub-entity (dim, id). A vertex yields itself.
func (c *Cell) MakePoints(dim, id, degree int) (pts [][]float64, err error) {
	var verts [][]float64
	if verts, err = c.EntityVertices(dim, id); err != nil {
		return
	}
	if degree < 0 {
		err = fmt.Errorf("lattice degree must be >= 0, have %d", degree)
		return
	}
	h := 1. / float64(degree)
	lattice := func(coef ...float64) []float64 {
		x := append([]float64(nil), verts[0]...)
		for i, l := range coef {
			for k := range x {
				x[k] += l * (verts[i+1][k] - verts[0][k])
			}
		}
		return x
	}
	switch {
	case dim == 0:
		pts = [][]float64{verts[0]}
	case dim == 2 && c.shape == Quadrilateral:
		// verts: (-1,-1), (-1,1), (1,-1), (1,1); direction 0 is v2-v0
		for i := 1; i < degree; i++ {
			for j := 1; j < degree; j++ {
				x := append([]float64(nil), verts[0]...)
				for k := range x {
					x[k] += float64(i)*h*(verts[2][k]-verts[0][k]) +
						float64(j)*h*(verts[1][k]-verts[0][k])
				}
				pts = append(pts, x)
			}
		}
	case dim == 1:
		for i := 1; i < degree; i++ {
			pts = append(pts, lattice(float64(i)*h))
		}
	case dim == 2:
		for j := 1; j < degree; j++ {
			for i := 1; i+j < degree; i++ {
				pts = append(pts, lattice(float64(i)*h, float64(j)*h))
			}
		}
	case dim == 3:
		for k := 1; k < degree; k++ {
			for j := 1; j+k < degree; j++ {
				for i := 1; i+j+k < degree; i++ {
					pts = append(pts, lattice(float64(i)*h, float64(j)*h, float64(k)*h))
				}
			}
		}
	}
	return
}

// UnitNormal is the outward unit normal of a facet
func (c *Cell) UnitNormal(facet int) (n []float64, err error) {
	var (
		sd    = c.SpatialDimension()
		verts [][]float64
	)
	if verts, err = c.EntityVertices(sd-1, facet); err != nil {
		return
	}
	switch sd {
	case 1:
		n = []float64{1}
	case 2:
		t := []float64{verts[1][0] - verts[0][0], verts[1][1] - verts[0][1]}
		n = []float64{t[1], -t[0]}
	case 3:
		a := []float64{verts[1][0] - verts[0][0], verts[1][1] - verts[0][1], verts[1][2] - verts[0][2]}
		b := []float64{verts[2][0] - verts[0][0], verts[2][1] - verts[0][1], verts[2][2] - verts[0][2]}
		n = []float64{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		}
	default:
		err = fmt.Errorf("%w: normals in dimension %d", ErrShape, sd)
		return
	}
	// Orient away from the cell centroid
	fc, cc := centroid(verts), c.Centroid()
	var out float64
	for k := range n {
		out += n[k] * (fc[k] - cc[k])
	}
	norm := math.Sqrt(dot(n, n))
	if out < 0 {
		norm = -norm
	}
	for k := range n {
		n[k] /= norm
	}
	return
}

// ScaledNormal is the outward unit normal scaled by the ratio of the facet
// measure to the measure of the reference facet. A quadrature rule on the
// reference facet weighted with v·ScaledNormal integrates v·n over the facet.
func (c *Cell) ScaledNormal(facet int) (n []float64, err error) {
	var (
		sd        = c.SpatialDimension()
		m, refM   float64
		refFacet  *Cell
		facetDims = sd - 1
	)
	if n, err = c.UnitNormal(facet); err != nil {
		return
	}
	if m, err = c.EntityMeasure(facetDims, facet); err != nil {
		return
	}
	if facetDims == 0 {
		return
	}
	refFacet = c.FacetCell()
	if refM, err = refFacet.EntityMeasure(facetDims, 0); err != nil {
		return
	}
	for k := range n {
		n[k] *= m / refM
	}
	return
}
