// Package reference holds the reference cells that finite elements are
// defined on: vertex coordinates, topology, sub-entity affine maps, lattice
// points and facet normals. All cells use the biunit convention, so the
// triangle is (-1,-1),(1,-1),(-1,1) and the interval is [-1,1].
package reference

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEntityRange = errors.New("entity out of range")
	ErrShape       = errors.New("unsupported cell shape")
)

type Shape uint8

const (
	Interval Shape = iota
	Triangle
	Tetrahedron
	Quadrilateral
)

func (s Shape) String() string {
	switch s {
	case Interval:
		return "Interval"
	case Triangle:
		return "Triangle"
	case Tetrahedron:
		return "Tetrahedron"
	case Quadrilateral:
		return "Quadrilateral"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

func NewShape(label string) (s Shape, err error) {
	switch label {
	case "Interval", "interval", "Line", "line":
		s = Interval
	case "Triangle", "triangle", "Tri", "tri":
		s = Triangle
	case "Tetrahedron", "tetrahedron", "Tet", "tet":
		s = Tetrahedron
	case "Quadrilateral", "quadrilateral", "Quad", "quad":
		s = Quadrilateral
	default:
		err = fmt.Errorf("%w: %q", ErrShape, label)
	}
	return
}

// IsSimplex reports whether the shape is an interval, triangle or tetrahedron
func (s Shape) IsSimplex() bool { return s != Quadrilateral }

// Entity names a topological sub-entity of a cell
type Entity struct {
	Dim, ID int
}

func (e Entity) String() string { return fmt.Sprintf("(%d,%d)", e.Dim, e.ID) }

// Cell is a reference cell. Cells are compared by identity: two elements
// share a cell only when they hold the same *Cell.
type Cell struct {
	shape    Shape
	vertices [][]float64
	topology [][][]int // [dim][entity] -> vertex ids
}

func NewCell(shape Shape) (c *Cell) {
	c = &Cell{shape: shape}
	switch shape {
	case Interval:
		c.vertices = [][]float64{{-1}, {1}}
		c.topology = [][][]int{
			{{0}, {1}},
			{{0, 1}},
		}
	case Triangle:
		c.vertices = [][]float64{{-1, -1}, {1, -1}, {-1, 1}}
		// Edge i is opposite vertex i
		c.topology = [][][]int{
			{{0}, {1}, {2}},
			{{1, 2}, {0, 2}, {0, 1}},
			{{0, 1, 2}},
		}
	case Tetrahedron:
		c.vertices = [][]float64{{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
		c.topology = [][][]int{
			{{0}, {1}, {2}, {3}},
			{{2, 3}, {1, 3}, {1, 2}, {0, 3}, {0, 2}, {0, 1}},
			{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}},
			{{0, 1, 2, 3}},
		}
	case Quadrilateral:
		c.vertices = [][]float64{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
		c.topology = [][][]int{
			{{0}, {1}, {2}, {3}},
			{{0, 1}, {2, 3}, {0, 2}, {1, 3}},
			{{0, 1, 2, 3}},
		}
	default:
		panic(fmt.Errorf("%w: %v", ErrShape, shape))
	}
	return
}

func NewInterval() *Cell      { return NewCell(Interval) }
func NewTriangle() *Cell      { return NewCell(Triangle) }
func NewTetrahedron() *Cell   { return NewCell(Tetrahedron) }
func NewQuadrilateral() *Cell { return NewCell(Quadrilateral) }

func (c *Cell) Shape() Shape { return c.shape }

func (c *Cell) String() string { return fmt.Sprintf("%v@%p", c.shape, c) }

func (c *Cell) SpatialDimension() int { return len(c.topology) - 1 }

func (c *Cell) Vertices() [][]float64 {
	v := make([][]float64, len(c.vertices))
	for i := range c.vertices {
		v[i] = append([]float64(nil), c.vertices[i]...)
	}
	return v
}

// Topology returns dimension -> entity id -> vertex ids
func (c *Cell) Topology() [][][]int {
	t := make([][][]int, len(c.topology))
	for d := range c.topology {
		t[d] = make([][]int, len(c.topology[d]))
		for e := range c.topology[d] {
			t[d][e] = append([]int(nil), c.topology[d][e]...)
		}
	}
	return t
}

func (c *Cell) NumEntities(dim int) int {
	if dim < 0 || dim >= len(c.topology) {
		return 0
	}
	return len(c.topology[dim])
}

func (c *Cell) CheckEntity(dim, id int) error {
	if dim < 0 || dim > c.SpatialDimension() || id < 0 || id >= c.NumEntities(dim) {
		return fmt.Errorf("%w: entity (%d,%d) on %v", ErrEntityRange, dim, id, c.shape)
	}
	return nil
}

func (c *Cell) EntityVertices(dim, id int) (verts [][]float64, err error) {
	if err = c.CheckEntity(dim, id); err != nil {
		return
	}
	for _, v := range c.topology[dim][id] {
		verts = append(verts, append([]float64(nil), c.vertices[v]...))
	}
	return
}

// EntityShape is the reference shape of the sub-entity (dim, id). Vertices
// have no shape and report ok == false.
func (c *Cell) EntityShape(dim int) (s Shape, ok bool) {
	switch {
	case dim <= 0:
		return
	case dim == c.SpatialDimension():
		return c.shape, true
	case dim == 1:
		return Interval, true
	case dim == 2:
		return Triangle, true
	}
	return
}

// FacetCell is a fresh cell of the facet shape
func (c *Cell) FacetCell() *Cell {
	s, ok := c.EntityShape(c.SpatialDimension() - 1)
	if !ok {
		panic(fmt.Errorf("%w: %v has no facet cell", ErrShape, c.shape))
	}
	return NewCell(s)
}

// EntityTransform maps a point in the reference coordinates of the
// sub-entity (dim, id) into cell coordinates. The map is affine and sends the
// sub-entity's reference vertices to the entity's vertices in order.
func (c *Cell) EntityTransform(dim, id int) (f func(x []float64) []float64, err error) {
	var verts [][]float64
	if verts, err = c.EntityVertices(dim, id); err != nil {
		return
	}
	sd := c.SpatialDimension()
	if dim == sd {
		f = func(x []float64) []float64 { return append([]float64(nil), x...) }
		return
	}
	if dim == 0 {
		f = func(_ []float64) []float64 { return append([]float64(nil), verts[0]...) }
		return
	}
	// Sub-entities below the cell dimension are simplices (edges of a quad
	// are intervals), so the collapsed vertex map applies.
	f = func(x []float64) []float64 {
		y := append([]float64(nil), verts[0]...)
		for i := 0; i < dim; i++ {
			l := 0.5 * (x[i] + 1)
			for k := 0; k < sd; k++ {
				y[k] += l * (verts[i+1][k] - verts[0][k])
			}
		}
		return y
	}
	return
}

// MapPoints applies EntityTransform to a list of points
func (c *Cell) MapPoints(dim, id int, pts [][]float64) (out [][]float64, err error) {
	var f func([]float64) []float64
	if f, err = c.EntityTransform(dim, id); err != nil {
		return
	}
	out = make([][]float64, len(pts))
	for i, p := range pts {
		if len(p) != dim && dim != 0 {
			err = fmt.Errorf("%w: point %d has %d coordinates, entity (%d,%d) needs %d",
				ErrShape, i, len(p), dim, id, dim)
			return
		}
		out[i] = f(p)
	}
	return
}

// EntityMeasure is the length, area or volume of the sub-entity
func (c *Cell) EntityMeasure(dim, id int) (m float64, err error) {
	var verts [][]float64
	if verts, err = c.EntityVertices(dim, id); err != nil {
		return
	}
	switch {
	case dim == 0:
		m = 1
	case dim == c.SpatialDimension() && c.shape == Quadrilateral:
		m = 4
	default:
		m = simplexVolume(verts)
	}
	return
}

func simplexVolume(verts [][]float64) float64 {
	var (
		dim = len(verts) - 1
		sd  = len(verts[0])
		e   = make([][]float64, dim)
	)
	for i := 0; i < dim; i++ {
		e[i] = make([]float64, sd)
		for k := 0; k < sd; k++ {
			e[i][k] = verts[i+1][k] - verts[0][k]
		}
	}
	// Gram determinant handles entities embedded in higher dimension
	G := make([][]float64, dim)
	for i := range G {
		G[i] = make([]float64, dim)
		for j := range G[i] {
			G[i][j] = dot(e[i], e[j])
		}
	}
	var det float64
	switch dim {
	case 1:
		det = G[0][0]
	case 2:
		det = G[0][0]*G[1][1] - G[0][1]*G[1][0]
	case 3:
		det = G[0][0]*(G[1][1]*G[2][2]-G[1][2]*G[2][1]) -
			G[0][1]*(G[1][0]*G[2][2]-G[1][2]*G[2][0]) +
			G[0][2]*(G[1][0]*G[2][1]-G[1][1]*G[2][0])
	}
	return math.Sqrt(math.Abs(det)) / float64(factorial(dim))
}

func factorial(n int) (f int) {
	f = 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return
}

func dot(a, b []float64) (d float64) {
	for i := range a {
		d += a[i] * b[i]
	}
	return
}

func (c *Cell) Centroid() []float64 {
	return centroid(c.vertices)
}

func centroid(verts [][]float64) (x []float64) {
	x = make([]float64, len(verts[0]))
	for _, v := range verts {
		for k := range v {
			x[k] += v[k]
		}
	}
	for k := range x {
		x[k] /= float64(len(verts))
	}
	return
}
