package families

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
)

// checkDuality verifies L_k(phi_i) = delta_ik for a Ciarlet element
func checkDuality(t *testing.T, ce *element.CiarletElement) {
	t.Helper()
	nodal, err := ce.NodalBasis()
	require.NoError(t, err)
	V, err := ce.DualSet().Matrix(nodal)
	require.NoError(t, err)
	n := ce.SpaceDimension()
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			expected := 0.
			if i == k {
				expected = 1
			}
			require.InDelta(t, expected, V.At(k, i), 1e-9, "%s L_%d(phi_%d)", ce.Name(), k, i)
		}
	}
	require.NoError(t, ce.EntityDofs().Validate())
	assert.Equal(t, n, ce.EntityDofs().NumDofs())
}

// checkGradient compares first derivatives with central differences of values
func checkGradient(t *testing.T, el element.Element, pts [][]float64) {
	t.Helper()
	const h = 1e-6
	var (
		sd    = el.Cell().SpatialDimension()
		ncomp = el.ValueSize()
	)
	tab, err := el.Tabulate(1, pts, nil)
	require.NoError(t, err)
	for d := 0; d < sd; d++ {
		var plus, minus [][]float64
		for _, p := range pts {
			pp, pm := append([]float64(nil), p...), append([]float64(nil), p...)
			pp[d] += h
			pm[d] -= h
			plus, minus = append(plus, pp), append(minus, pm)
		}
		tp, err := el.Tabulate(0, plus, nil)
		require.NoError(t, err)
		tm, err := el.Tabulate(0, minus, nil)
		require.NoError(t, err)
		var alpha polyset.MultiIndex
		alpha[d] = 1
		for i := 0; i < el.SpaceDimension(); i++ {
			for c := 0; c < ncomp; c++ {
				for p := range pts {
					fd := (tp[polyset.MultiIndex{}].At(i, c, p) - tm[polyset.MultiIndex{}].At(i, c, p)) / (2 * h)
					assert.InDelta(t, fd, tab[alpha].At(i, c, p), 1e-5)
				}
			}
		}
	}
}

var (
	triPoints = [][]float64{{-0.5, -0.3}, {0.1, -0.6}, {-0.2, 0.1}}
	tetPoints = [][]float64{{-0.5, -0.4, -0.3}, {0, -0.5, -0.6}}
)

func TestLagrange(t *testing.T) {
	tests := []struct {
		cell *reference.Cell
		k    int
		dim  int
	}{
		{reference.NewInterval(), 4, 5},
		{reference.NewTriangle(), 4, 15},
		{reference.NewTetrahedron(), 3, 20},
		{reference.NewQuadrilateral(), 3, 16},
	}
	for _, tc := range tests {
		t.Run(tc.cell.Shape().String(), func(t *testing.T) {
			ce, err := NewLagrange(tc.cell, tc.k)
			require.NoError(t, err)
			assert.Equal(t, tc.dim, ce.SpaceDimension())
			assert.Equal(t, tc.k, ce.Degree())
			checkDuality(t, ce)
		})
	}
	_, err := NewLagrange(reference.NewTriangle(), 0)
	assert.ErrorIs(t, err, ErrDegree)
}

func TestNedelecSpace(t *testing.T) {
	tests := []struct {
		cell *reference.Cell
		q    int
		dim  int
	}{
		{reference.NewTriangle(), 1, 3},
		{reference.NewTriangle(), 2, 8},
		{reference.NewTetrahedron(), 1, 6},
		{reference.NewTetrahedron(), 2, 20},
	}
	for _, tc := range tests {
		ned, err := NedelecSpace(tc.cell, tc.q)
		require.NoError(t, err)
		assert.Equal(t, tc.dim, ned.Cardinality(), "%v q=%d", tc.cell.Shape(), tc.q)
		assert.Equal(t, tc.q, ned.Degree())
	}
	_, err := NedelecSpace(reference.NewQuadrilateral(), 1)
	assert.ErrorIs(t, err, reference.ErrShape)
}

func TestRaviartThomas(t *testing.T) {
	tests := []struct {
		cell *reference.Cell
		q    int
		dim  int
	}{
		{reference.NewTriangle(), 1, 3},
		{reference.NewTriangle(), 2, 8},
		{reference.NewTriangle(), 3, 15},
		{reference.NewTetrahedron(), 1, 4},
		{reference.NewTetrahedron(), 2, 15},
	}
	for _, tc := range tests {
		ce, err := NewRaviartThomas(tc.cell, tc.q)
		require.NoError(t, err)
		assert.Equal(t, tc.dim, ce.SpaceDimension())
		assert.Equal(t, []int{tc.cell.SpatialDimension()}, ce.ValueShape())
		checkDuality(t, ce)
	}

	tri := reference.NewTriangle()
	rt1, err := NewRaviartThomas(tri, 1)
	require.NoError(t, err)
	assert.Equal(t, "{0:{0:[],1:[],2:[]},1:{0:[0],1:[1],2:[2]},2:{0:[]}}", rt1.EntityDofs().String())
	checkGradient(t, rt1, triPoints)

	// The normal component of RT1 is constant along each edge
	for e := 0; e < 3; e++ {
		n, err := tri.UnitNormal(e)
		require.NoError(t, err)
		tab, err := rt1.Tabulate(0, [][]float64{{-0.8}, {0}, {0.6}}, &reference.Entity{Dim: 1, ID: e})
		require.NoError(t, err)
		T := tab[polyset.MultiIndex{}]
		for i := 0; i < 3; i++ {
			vn := func(p int) float64 { return T.At(i, 0, p)*n[0] + T.At(i, 1, p)*n[1] }
			assert.InDelta(t, vn(0), vn(1), 1e-12)
			assert.InDelta(t, vn(0), vn(2), 1e-12)
		}
	}

	_, err = NewRaviartThomas(reference.NewInterval(), 1)
	assert.ErrorIs(t, err, reference.ErrShape)
	_, err = NewRaviartThomas(tri, 0)
	assert.ErrorIs(t, err, ErrDegree)
}

func TestBrezziDouglasMarini(t *testing.T) {
	tests := []struct {
		name    string
		cell    *reference.Cell
		k       int
		variant functional.Variant
		dim     int
	}{
		{"tri_point_1", reference.NewTriangle(), 1, functional.PointVariant(), 6},
		{"tri_integral_1", reference.NewTriangle(), 1, functional.IntegralVariant(0), 6},
		{"tri_point_2", reference.NewTriangle(), 2, functional.PointVariant(), 12},
		{"tri_integral_2", reference.NewTriangle(), 2, functional.IntegralVariant(8), 12},
		{"tri_integral_3", reference.NewTriangle(), 3, functional.IntegralVariant(0), 20},
		{"tet_point_1", reference.NewTetrahedron(), 1, functional.PointVariant(), 12},
		{"tet_integral_2", reference.NewTetrahedron(), 2, functional.IntegralVariant(0), 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ce, err := NewBrezziDouglasMarini(tc.cell, tc.k, tc.variant)
			require.NoError(t, err)
			assert.Equal(t, tc.dim, ce.SpaceDimension())
			checkDuality(t, ce)
		})
	}

	tri := reference.NewTriangle()
	bdm1, err := NewBrezziDouglasMarini(tri, 1, functional.PointVariant())
	require.NoError(t, err)
	assert.Equal(t, "{0:{0:[],1:[],2:[]},1:{0:[0,1],1:[2,3],2:[4,5]},2:{0:[]}}", bdm1.EntityDofs().String())
	assert.Equal(t, 6, bdm1.DualSet().Len())
	checkGradient(t, bdm1, triPoints)

	bdm2, err := NewBrezziDouglasMarini(tri, 2, functional.IntegralVariant(0))
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10, 11}, bdm2.EntityDofs().Dofs(2, 0))
	for _, f := range bdm2.DualSet().Functionals()[9:] {
		assert.Equal(t, functional.FrobeniusMoment, f.Kind())
	}

	_, err = NewBrezziDouglasMarini(tri, 2, functional.IntegralVariant(3))
	assert.ErrorIs(t, err, functional.ErrVariant)
	_, err = NewBrezziDouglasMarini(tri, 0, functional.PointVariant())
	assert.ErrorIs(t, err, ErrDegree)
	_, err = NewBrezziDouglasMarini(tri, 1, functional.Variant{Kind: 7})
	assert.ErrorIs(t, err, functional.ErrVariant)
}

func TestHermite(t *testing.T) {
	iv := reference.NewInterval()
	for n := 3; n <= 6; n++ {
		ce, err := NewHermite(iv, n)
		require.NoError(t, err)
		assert.Equal(t, n+1, ce.SpaceDimension())
		checkDuality(t, ce)
		em := ce.EntityDofs()
		assert.Equal(t, []int{0, 1}, em.Dofs(0, 0))
		assert.Equal(t, []int{n - 1, n}, em.Dofs(0, 1))
		assert.Len(t, em.Dofs(1, 0), n-3)
	}

	h3, err := NewHermite(iv, 3)
	require.NoError(t, err)
	assert.Equal(t, "{0:{0:[0,1],1:[2,3]},1:{0:[]}}", h3.EntityDofs().String())
	tab, err := h3.Tabulate(1, [][]float64{{-1}, {1}}, nil)
	require.NoError(t, err)
	dx := polyset.NewMultiIndex(1)
	// Basis 1 has unit slope at the left vertex and basis 3 at the right
	assert.InDelta(t, 1, tab[dx].At(1, 0, 0), 1e-10)
	assert.InDelta(t, 1, tab[dx].At(3, 0, 1), 1e-10)
	assert.InDelta(t, 0, tab[dx].At(0, 0, 0), 1e-10)
	checkGradient(t, h3, [][]float64{{-0.3}, {0.55}})

	_, err = NewHermite(iv, 2)
	assert.ErrorIs(t, err, ErrDegree)
	_, err = NewHermite(reference.NewTriangle(), 3)
	assert.ErrorIs(t, err, reference.ErrShape)
}

func TestSerendipity(t *testing.T) {
	quad := reference.NewQuadrilateral()
	s, err := NewSerendipity(quad)
	require.NoError(t, err)
	assert.Equal(t, 8, s.SpaceDimension())
	assert.Equal(t, 1, s.ValueSize())
	assert.Equal(t, 0, s.DualSet().Len())
	assert.Equal(t, "{0:{0:[0],1:[1],2:[2],3:[3]},1:{0:[4],1:[5],2:[6],3:[7]},2:{0:[]}}",
		s.EntityDofs().String())

	verts := quad.Vertices()
	tab, err := s.Tabulate(2, verts, nil)
	require.NoError(t, err)
	assert.Len(t, tab, 6)
	T := tab[polyset.MultiIndex{}]
	for i := 0; i < 8; i++ {
		for v := range verts {
			expected := 0.
			if i == v {
				expected = 1
			}
			assert.InDelta(t, expected, T.At(i, 0, v), 1e-15)
		}
	}
	// On the unit square basis 0 is 1 - 2x - 2y + ..., so d/dr = -1 at vertex 0
	assert.InDelta(t, -1, tab[polyset.NewMultiIndex(1, 0)].At(0, 0, 0), 1e-15)
	// Basis 0 has d2/dxdy = 3 - 2x - 2y, scaled by 1/4
	assert.InDelta(t, 0.75, tab[polyset.NewMultiIndex(1, 1)].At(0, 0, 0), 1e-15)

	mid, err := s.Tabulate(0, [][]float64{{0}}, &reference.Entity{Dim: 1, ID: 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, mid[polyset.MultiIndex{}].At(4, 0, 0), 1e-15)

	checkGradient(t, s, [][]float64{{0.3, -0.7}, {-0.2, 0.9}})

	_, err = s.Tabulate(-1, verts, nil)
	assert.ErrorIs(t, err, element.ErrOrder)
	assert.EqualError(t, err, "negative derivative order: -1")
	_, err = NewSerendipity(reference.NewTriangle())
	assert.ErrorIs(t, err, reference.ErrShape)
}

func TestMixedWithFamilies(t *testing.T) {
	tri := reference.NewTriangle()
	rt, err := NewRaviartThomas(tri, 2)
	require.NoError(t, err)
	p1, err := NewLagrange(tri, 1)
	require.NoError(t, err)
	me, err := element.NewMixedElement(rt, p1)
	require.NoError(t, err)
	assert.Equal(t, 11, me.SpaceDimension())
	assert.Equal(t, []int{3}, me.ValueShape())
	assert.Equal(t, []int{8, 9, 10}, append(append(me.EntityDofs().Dofs(0, 0), me.EntityDofs().Dofs(0, 1)...),
		me.EntityDofs().Dofs(0, 2)...))
	assert.Equal(t, 11, me.DualSet().Len())

	// Each value component carries its sub-element's pullback
	piola, affine := element.ContravariantPiola, element.Affine
	assert.Equal(t, []element.Mapping{piola, piola}, rt.Mapping())
	bdm2, err := NewBrezziDouglasMarini(tri, 2, functional.PointVariant())
	require.NoError(t, err)
	mb, err := element.NewMixedElement(bdm2, p1)
	require.NoError(t, err)
	assert.Equal(t, []element.Mapping{piola, piola, affine}, mb.Mapping())
	assert.Equal(t, "[contravariant piola contravariant piola affine]", fmt.Sprint(mb.Mapping()))

	quad := reference.NewQuadrilateral()
	s, err := NewSerendipity(quad)
	require.NoError(t, err)
	q1, err := NewLagrange(quad, 1)
	require.NoError(t, err)
	ms, err := element.NewMixedElement(q1, s)
	require.NoError(t, err)
	assert.Equal(t, 0, ms.DualSet().Len())
	assert.Equal(t, 12, ms.EntityDofs().NumDofs())
	assert.Equal(t, []element.Mapping{affine, affine}, ms.Mapping())

	_, err = element.NewMixedElement(p1, s)
	assert.ErrorIs(t, err, element.ErrCellMismatch)
}

func TestNew(t *testing.T) {
	tri := reference.NewTriangle()
	el, err := New("BDM", tri, 1, functional.IntegralVariant(0))
	require.NoError(t, err)
	assert.Equal(t, "BDM1", el.Name())
	el, err = New("serendipity", reference.NewQuadrilateral(), 2, functional.PointVariant())
	require.NoError(t, err)
	assert.Equal(t, "S2", el.Name())

	el, err = New("Crouzeix-Raviart", tri, 1, functional.PointVariant())
	assert.ErrorIs(t, err, ErrFamily)
	assert.Nil(t, el)
	el, err = New("rt", reference.NewQuadrilateral(), 1, functional.PointVariant())
	assert.ErrorIs(t, err, reference.ErrShape)
	assert.Nil(t, el)
	assert.Equal(t, 6, BDMQuadratureDegree(2))
}
