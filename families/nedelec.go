package families

import (
	"fmt"

	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
)

// NedelecSpace is the first kind Nedelec space of index q >= 1: vector
// P_{q-1} plus the homogeneous degree q-1 polynomials rotated against x,
// phi*(-y,x) in 2D and phi*(e_d x x) in 3D. The members are orthonormal in
// coefficient space.
func NedelecSpace(cell *reference.Cell, q int) (ned *polyset.PolynomialSet, err error) {
	if err = requireShape(cell, "Nedelec", reference.Triangle, reference.Tetrahedron); err != nil {
		return
	}
	if q < 1 {
		err = fmt.Errorf("%w: Nedelec needs index >= 1, have %d", ErrDegree, q)
		return
	}
	var (
		k                = q - 1
		sd               = cell.SpatialDimension()
		vecPkp1, PkHcurl *polyset.PolynomialSet
	)
	if vecPkp1, err = polyset.NewONPolynomialSet(cell, k+1, sd); err != nil {
		return
	}
	es := vecPkp1.Expansion()
	rot := func(x []float64) [][]float64 {
		return [][]float64{{-x[1], x[0]}}
	}
	if sd == 3 {
		rot = func(x []float64) [][]float64 {
			return [][]float64{
				{0, -x[2], x[1]},
				{x[2], 0, -x[0]},
				{-x[1], x[0], 0},
			}
		}
	}
	C := homogeneousTimes(es, k, rot)
	if PkHcurl, err = polyset.NewPolynomialSet(es, k+1, []int{sd}, C); err != nil {
		return
	}
	return polyset.UnionNormalized(vectorPk(vecPkp1, k), PkHcurl)
}
