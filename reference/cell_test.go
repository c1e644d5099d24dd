package reference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellTopology(t *testing.T) {
	tests := []struct {
		shape    Shape
		sd       int
		entities []int
	}{
		{Interval, 1, []int{2, 1}},
		{Triangle, 2, []int{3, 3, 1}},
		{Tetrahedron, 3, []int{4, 6, 4, 1}},
		{Quadrilateral, 2, []int{4, 4, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.shape.String(), func(t *testing.T) {
			c := NewCell(tc.shape)
			assert.Equal(t, tc.sd, c.SpatialDimension())
			for d, n := range tc.entities {
				assert.Equal(t, n, c.NumEntities(d))
			}
			assert.ErrorIs(t, c.CheckEntity(tc.sd+1, 0), ErrEntityRange)
			assert.ErrorIs(t, c.CheckEntity(0, len(c.Vertices())), ErrEntityRange)
		})
	}
}

func TestCellIdentity(t *testing.T) {
	a, b := NewTriangle(), NewTriangle()
	assert.False(t, a == b)
	assert.Equal(t, a.Shape(), b.Shape())
}

func TestEntityTransform(t *testing.T) {
	c := NewTriangle()
	// Edge 0 runs from vertex 1 to vertex 2
	f, err := c.EntityTransform(1, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, -1}, f([]float64{-1}), 1e-14)
	assert.InDeltaSlice(t, []float64{-1, 1}, f([]float64{1}), 1e-14)
	assert.InDeltaSlice(t, []float64{0, 0}, f([]float64{0}), 1e-14)

	tet := NewTetrahedron()
	// Face 0 is (1,2,3); the reference triangle vertices land on them in order
	f, err = tet.EntityTransform(2, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, -1, -1}, f([]float64{-1, -1}), 1e-14)
	assert.InDeltaSlice(t, []float64{-1, 1, -1}, f([]float64{1, -1}), 1e-14)
	assert.InDeltaSlice(t, []float64{-1, -1, 1}, f([]float64{-1, 1}), 1e-14)

	_, err = c.EntityTransform(1, 3)
	assert.ErrorIs(t, err, ErrEntityRange)
}

func TestMakePoints(t *testing.T) {
	tri := NewTriangle()
	for k := 1; k < 6; k++ {
		pts, err := tri.MakePoints(1, 0, k)
		require.NoError(t, err)
		assert.Len(t, pts, k-1)
		pts, err = tri.MakePoints(2, 0, k)
		require.NoError(t, err)
		assert.Len(t, pts, (k-1)*(k-2)/2)
	}
	tet := NewTetrahedron()
	pts, err := tet.MakePoints(2, 1, 4)
	require.NoError(t, err)
	assert.Len(t, pts, 3)
	for _, p := range pts {
		// face 1 is opposite vertex 1, so it lies in the plane r = -1
		assert.InDelta(t, -1, p[0], 1e-14)
	}
	pts, err = tet.MakePoints(3, 0, 4)
	require.NoError(t, err)
	assert.Len(t, pts, 1)

	quad := NewQuadrilateral()
	pts, err = quad.MakePoints(2, 0, 3)
	require.NoError(t, err)
	assert.Len(t, pts, 4)
	pts, err = quad.MakePoints(0, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1}}, pts)
}

func TestNormals(t *testing.T) {
	tri := NewTriangle()
	n, err := tri.UnitNormal(0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1 / math.Sqrt2, 1 / math.Sqrt2}, n, 1e-14)
	n, err = tri.UnitNormal(1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 0}, n, 1e-14)
	// hypotenuse length is 2*sqrt(2), reference interval length is 2
	n, err = tri.ScaledNormal(0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, n, 1e-14)

	tet := NewTetrahedron()
	for f := 0; f < 4; f++ {
		n, err = tet.UnitNormal(f)
		require.NoError(t, err)
		var norm float64
		for _, v := range n {
			norm += v * v
		}
		assert.InDelta(t, 1, norm, 1e-14)
	}
	n, err = tet.UnitNormal(3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, -1}, n, 1e-14)
}

func TestEntityMeasure(t *testing.T) {
	m, err := NewTriangle().EntityMeasure(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2, m, 1e-14)
	m, err = NewTetrahedron().EntityMeasure(3, 0)
	require.NoError(t, err)
	assert.InDelta(t, 4./3., m, 1e-14)
	m, err = NewQuadrilateral().EntityMeasure(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2, m, 1e-14)
}
