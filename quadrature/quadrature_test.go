package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobasis/reference"
)

func TestJacobiGQ(t *testing.T) {
	tests := []struct {
		name     string
		alpha    float64
		beta     float64
		N        int
		expected []float64
	}{
		{"N=0_Legendre", 0, 0, 0, []float64{0}},
		{"N=1_Legendre", 0, 0, 1, []float64{-1 / math.Sqrt(3), 1 / math.Sqrt(3)}},
		{"N=2_Legendre", 0, 0, 2, []float64{-math.Sqrt(0.6), 0, math.Sqrt(0.6)}},
		{"N=0_Jacobi_1_0", 1, 0, 0, []float64{-1. / 3.}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, w := JacobiGQ(tc.alpha, tc.beta, tc.N)
			assert.InDeltaSlice(t, tc.expected, x, 1e-14)
			var sum float64
			for _, val := range w {
				sum += val
			}
			assert.InDelta(t, Gamma0(tc.alpha, tc.beta), sum, 1e-13)
		})
	}
}

func TestMakeExactness(t *testing.T) {
	tests := []struct {
		name     string
		shape    reference.Shape
		degree   int
		f        func(x []float64) float64
		expected float64
	}{
		{"interval_const", reference.Interval, 0, func(x []float64) float64 { return 1 }, 2},
		{"interval_x4", reference.Interval, 4, func(x []float64) float64 { return math.Pow(x[0], 4) }, 0.4},
		{"triangle_area", reference.Triangle, 1, func(x []float64) float64 { return 1 }, 2},
		{"triangle_r", reference.Triangle, 1, func(x []float64) float64 { return x[0] }, -2. / 3.},
		{"triangle_r2", reference.Triangle, 2, func(x []float64) float64 { return x[0] * x[0] }, 2. / 3.},
		{"tet_volume", reference.Tetrahedron, 2, func(x []float64) float64 { return 1 }, 4. / 3.},
		{"tet_t", reference.Tetrahedron, 1, func(x []float64) float64 { return x[2] }, -2. / 3.},
		{"quad_area", reference.Quadrilateral, 1, func(x []float64) float64 { return 1 }, 4},
		{"quad_x2y2", reference.Quadrilateral, 4, func(x []float64) float64 { return x[0] * x[0] * x[1] * x[1] }, 4. / 9.},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Make(reference.NewCell(tc.shape), tc.degree)
			require.NoError(t, err)
			assert.Equal(t, len(q.Points()), q.Len())
			vals := make([]float64, q.Len())
			for i, p := range q.Points() {
				vals[i] = tc.f(p)
			}
			assert.InDelta(t, tc.expected, q.Integrate(vals), 1e-13)
		})
	}
}

func TestMakeOnEntity(t *testing.T) {
	tri := reference.NewTriangle()
	q, pts, err := MakeOnEntity(tri, 1, 0, 3)
	require.NoError(t, err)
	require.Len(t, pts, q.Len())
	for _, p := range pts {
		// Edge 0 lies on r + s = 0
		assert.InDelta(t, 0, p[0]+p[1], 1e-14)
	}
	_, _, err = MakeOnEntity(tri, 0, 0, 3)
	assert.ErrorIs(t, err, reference.ErrShape)
}
