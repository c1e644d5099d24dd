package functional

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/quadrature"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

func TestPointFunctionals(t *testing.T) {
	tri := reference.NewTriangle()
	ps, err := polyset.NewONPolynomialSet(tri, 2)
	require.NoError(t, err)
	x := []float64{-0.3, -0.2}
	tab, err := ps.Tabulate(1, [][]float64{x})
	require.NoError(t, err)

	pe := NewPointEvaluation(tri, x)
	assert.Equal(t, PointEval, pe.Kind())
	assert.Equal(t, 0, pe.MaxOrder())
	vals, err := pe.Evaluate(tab)
	require.NoError(t, err)
	for m := range vals {
		assert.Equal(t, tab[polyset.MultiIndex{}].At(m, 0, 0), vals[m])
	}

	dy := polyset.NewMultiIndex(0, 1)
	pd := NewPointDerivative(tri, x, dy)
	assert.Equal(t, 1, pd.MaxOrder())
	vals, err = pd.Evaluate(tab)
	require.NoError(t, err)
	for m := range vals {
		assert.Equal(t, tab[dy].At(m, 0, 0), vals[m])
	}
	assert.Equal(t, "PointDeriv((-0.3,-0.2),d(0,1))", pd.String())

	// A scalar space has no component 1
	_, err = NewComponentPointEvaluation(tri, x, 1).Evaluate(tab)
	assert.Error(t, err)
	// Order 0 tabulations cannot feed a derivative
	tab0, err := ps.Tabulate(0, [][]float64{x})
	require.NoError(t, err)
	_, err = pd.Evaluate(tab0)
	assert.Error(t, err)
}

func TestMomentFunctionals(t *testing.T) {
	var (
		tri   = reference.NewTriangle()
		rs2   = 1 / math.Sqrt(2)
		facet = tri.FacetCell()
	)
	vecP0, err := polyset.NewONPolynomialSet(tri, 0, 2)
	require.NoError(t, err)

	q, err := quadrature.Make(tri, 2)
	require.NoError(t, err)
	im, err := NewIntegralMoment(tri, q, ones(q.Len()), 0)
	require.NoError(t, err)
	fq, err := quadrature.Make(facet, 2)
	require.NoError(t, err)
	sn1, err := NewScaledNormalMoment(tri, 1, 2, ones(fq.Len()))
	require.NoError(t, err)
	sn0, err := NewScaledNormalMoment(tri, 0, 2, ones(fq.Len()))
	require.NoError(t, err)
	// The facet rule points land on the facet itself
	for _, p := range sn0.Points() {
		assert.InDelta(t, 0, p[0]+p[1], 1e-14)
	}
	_, err = NewScaledNormalMoment(tri, 0, 2, ones(fq.Len()+1))
	assert.Error(t, err)
	_, err = NewScaledNormalMoment(tri, 3, 2, ones(fq.Len()))
	assert.ErrorIs(t, err, reference.ErrEntityRange)
	fm, err := NewFrobeniusMoment(tri, q, [][]float64{ones(q.Len()), ones(q.Len())})
	require.NoError(t, err)

	tests := []struct {
		name     string
		f        Functional
		expected []float64
	}{
		{"integral_component0", im, []float64{2 * rs2, 0}},
		{"normal_edge1", sn1, []float64{-2 * rs2, 0}},
		{"normal_edge0", sn0, []float64{2 * rs2, 2 * rs2}},
		{"frobenius", fm, []float64{2 * rs2, 2 * rs2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tab, err := vecP0.Tabulate(tc.f.MaxOrder(), tc.f.Points())
			require.NoError(t, err)
			vals, err := tc.f.Evaluate(tab)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.expected, vals, 1e-13)
		})
	}

	_, err = NewIntegralMoment(tri, q, ones(q.Len()+1), 0)
	assert.Error(t, err)
}

func ones(n int) (v []float64) {
	v = make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return
}

func TestVariant(t *testing.T) {
	v, err := NewVariant("Integral", 6)
	require.NoError(t, err)
	assert.Equal(t, IntegralVariant(6), v)
	assert.Equal(t, "integral(6)", v.String())
	v, err = NewVariant("point", 0)
	require.NoError(t, err)
	assert.Equal(t, PointVariant(), v)
	_, err = NewVariant("integral(6)", 0)
	assert.ErrorIs(t, err, ErrVariant)
}

func TestEntityDofMapBuild(t *testing.T) {
	tri := reference.NewTriangle()
	em, err := Build(tri, []Group{{1, 0, 2}, {1, 1, 2}, {1, 2, 2}})
	require.NoError(t, err)
	assert.Equal(t, "{0:{0:[],1:[],2:[]},1:{0:[0,1],1:[2,3],2:[4,5]},2:{0:[]}}", em.String())
	assert.Equal(t, 6, em.NumDofs())
	assert.Equal(t, 3, em.Dimensions())
	assert.NotNil(t, em.Dofs(0, 1))
	assert.Empty(t, em.Dofs(2, 0))
	require.NoError(t, em.Validate())
	inc := em.Incidence()
	nr, nc := inc.Dims()
	assert.Equal(t, []int{7, 6}, []int{nr, nc})
	assert.Equal(t, 6, inc.NNZ())
	assert.Equal(t, []int{2, 3}, []int(inc.RowNonZeros(4)))

	_, err = Build(tri, []Group{{1, 3, 1}})
	assert.ErrorIs(t, err, reference.ErrEntityRange)
}

func TestEntityDofMapFromLists(t *testing.T) {
	iv := reference.NewInterval()
	em, err := FromLists(iv, map[int]map[int][]int{
		0: {0: {0, 1}, 1: {3, 4}},
		1: {0: {2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "{0:{0:[0,1],1:[3,4]},1:{0:[2]}}", em.String())

	_, err = FromLists(iv, map[int]map[int][]int{0: {0: {0, 1}, 1: {1}}})
	assert.ErrorIs(t, err, ErrPartition)
	_, err = FromLists(iv, map[int]map[int][]int{0: {0: {0}, 1: {2}}})
	assert.ErrorIs(t, err, ErrPartition)
}

func TestClosureDofs(t *testing.T) {
	tri := reference.NewTriangle()
	em, err := Build(tri, []Group{{0, 0, 1}, {0, 1, 1}, {0, 2, 1}, {1, 0, 1}, {1, 1, 1}, {1, 2, 1}})
	require.NoError(t, err)
	tests := []struct {
		dim, id  int
		expected utils.Index
	}{
		{0, 1, utils.Index{1}},
		{1, 0, utils.Index{1, 2, 3}},
		{1, 2, utils.Index{0, 1, 5}},
		{2, 0, utils.Index{0, 1, 2, 3, 4, 5}},
	}
	for _, tc := range tests {
		dofs, err := em.ClosureDofs(tc.dim, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, dofs, "entity (%d,%d)", tc.dim, tc.id)
	}
	_, err = em.ClosureDofs(2, 1)
	assert.ErrorIs(t, err, reference.ErrEntityRange)

	// Several dofs on one vertex stay together
	iv := reference.NewInterval()
	h, err := FromLists(iv, map[int]map[int][]int{
		0: {0: {0, 1}, 1: {3, 4}},
		1: {0: {2}},
	})
	require.NoError(t, err)
	dofs, err := h.ClosureDofs(1, 0)
	require.NoError(t, err)
	assert.Equal(t, utils.Index{0, 1, 3, 4, 2}, dofs)

	empty, err := Build(tri, nil)
	require.NoError(t, err)
	dofs, err = empty.ClosureDofs(2, 0)
	require.NoError(t, err)
	assert.Empty(t, dofs)
}

func TestEntityDofMapMerge(t *testing.T) {
	iv := reference.NewInterval()
	p2, err := Build(iv, []Group{{0, 0, 1}, {0, 1, 1}, {1, 0, 1}})
	require.NoError(t, err)
	p3, err := Build(iv, []Group{{0, 0, 1}, {0, 1, 1}, {1, 0, 2}})
	require.NoError(t, err)
	em, err := Merge(iv, []*EntityDofMap{p2, p3}, []int{0, 3})
	require.NoError(t, err)
	assert.Equal(t, "{0:{0:[0,3],1:[1,4]},1:{0:[2,5,6]}}", em.String())
	require.NoError(t, em.Validate())
	assert.Equal(t, []int{5, 6}, p3.Offset(3).Dofs(1, 0))

	_, err = Merge(reference.NewInterval(), []*EntityDofMap{p2}, []int{0})
	assert.Error(t, err)
}

func facetPointDual(t *testing.T, cell *reference.Cell, degree int) *DualSet {
	var (
		sd     = cell.SpatialDimension()
		fs     []Functional
		groups []Group
	)
	for f := 0; f < cell.NumEntities(sd-1); f++ {
		pts, err := cell.MakePoints(sd-1, f, sd+degree)
		require.NoError(t, err)
		for _, x := range pts {
			l, err := NewPointScaledNormalEvaluation(cell, f, x)
			require.NoError(t, err)
			fs = append(fs, l)
		}
		groups = append(groups, Group{sd - 1, f, len(pts)})
	}
	em, err := Build(cell, groups)
	require.NoError(t, err)
	ds, err := NewDualSet(cell, fs, em)
	require.NoError(t, err)
	return ds
}

func TestDualSetFacetScenario(t *testing.T) {
	tri := reference.NewTriangle()
	ds := facetPointDual(t, tri, 1)
	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, "{0:{0:[],1:[],2:[]},1:{0:[0,1],1:[2,3],2:[4,5]},2:{0:[]}}",
		ds.EntityDofs().String())
	for _, f := range ds.Functionals() {
		assert.Equal(t, PointScaledNormalEval, f.Kind())
	}

	space, err := polyset.NewONPolynomialSet(tri, 1, 2)
	require.NoError(t, err)
	V, err := ds.Matrix(space)
	require.NoError(t, err)
	nr, nc := V.Dims()
	assert.Equal(t, []int{6, 6}, []int{nr, nc})
	assert.Less(t, V.ConditionNumber(), 1e4)

	// Row k agrees with evaluating functional k on its own
	f := ds.At(3)
	tab, err := space.Tabulate(0, f.Points())
	require.NoError(t, err)
	row, err := f.Evaluate(tab)
	require.NoError(t, err)
	assert.InDeltaSlice(t, row, V.Row(3), 1e-14)
}

func TestDualSetErrors(t *testing.T) {
	tri := reference.NewTriangle()
	em, err := Build(tri, []Group{{0, 0, 1}, {0, 1, 1}})
	require.NoError(t, err)
	_, err = NewDualSet(tri, []Functional{NewPointEvaluation(tri, []float64{-1, -1})}, em)
	assert.ErrorIs(t, err, ErrDofCount)

	// Closed form elements have no functionals
	ds, err := NewDualSet(tri, nil, em)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, 2, ds.EntityDofs().NumDofs())

	other := reference.NewTriangle()
	_, err = NewDualSet(tri, []Functional{
		NewPointEvaluation(other, []float64{-1, -1}),
		NewPointEvaluation(other, []float64{1, -1}),
	}, em)
	assert.Error(t, err)
}
