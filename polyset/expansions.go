package polyset

import (
	"fmt"
	"math"

	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

// expansionBasis evaluates an orthonormal expansion and its first
// derivatives at points. Members are ordered by increasing total degree on
// simplices, so the leading PolynomialDimension(k) members span P_k.
type expansionBasis interface {
	size() int
	values(pts [][]float64) utils.Matrix
	gradients(pts [][]float64) []utils.Matrix
}

// PolynomialDimension is the dimension of P_degree on a simplex, or of
// Q_degree on the quadrilateral
func PolynomialDimension(shape reference.Shape, degree int) int {
	if degree < 0 {
		return 0
	}
	switch shape {
	case reference.Interval:
		return degree + 1
	case reference.Triangle:
		return (degree + 1) * (degree + 2) / 2
	case reference.Tetrahedron:
		return (degree + 1) * (degree + 2) * (degree + 3) / 6
	case reference.Quadrilateral:
		return (degree + 1) * (degree + 1)
	}
	panic(fmt.Errorf("%w: %v", reference.ErrShape, shape))
}

func coordinate(pts [][]float64, d int) (x []float64) {
	x = make([]float64, len(pts))
	for i, p := range pts {
		x[i] = p[d]
	}
	return
}

type legendreBasis struct {
	N int
}

func (lb legendreBasis) size() int { return lb.N + 1 }

func (lb legendreBasis) values(pts [][]float64) (V utils.Matrix) {
	r := coordinate(pts, 0)
	V = utils.NewMatrix(lb.size(), len(pts))
	for i := 0; i <= lb.N; i++ {
		V.SetRow(i, JacobiP(r, 0, 0, i))
	}
	return
}

func (lb legendreBasis) gradients(pts [][]float64) []utils.Matrix {
	r := coordinate(pts, 0)
	Vr := utils.NewMatrix(lb.size(), len(pts))
	for i := 0; i <= lb.N; i++ {
		Vr.SetRow(i, GradJacobiP(r, 0, 0, i))
	}
	return []utils.Matrix{Vr}
}

// RStoAB maps the biunit triangle to the collapsed square
func RStoAB(r, s []float64) (a, b []float64) {
	a, b = make([]float64, len(r)), make([]float64, len(r))
	for n := range r {
		if s[n] != 1 {
			a[n] = 2*(1+r[n])/(1-s[n]) - 1
		} else {
			a[n] = -1
		}
		b[n] = s[n]
	}
	return
}

// RSTtoABC maps the biunit tetrahedron to the collapsed cube
func RSTtoABC(r, s, t []float64) (a, b, c []float64) {
	Np := len(r)
	a, b, c = make([]float64, Np), make([]float64, Np), make([]float64, Np)
	for n := 0; n < Np; n++ {
		if s[n]+t[n] != 0 {
			a[n] = 2*(1+r[n])/(-s[n]-t[n]) - 1
		} else {
			a[n] = -1
		}
		if t[n] != 1 {
			b[n] = 2*(1+s[n])/(1-t[n]) - 1
		} else {
			b[n] = -1
		}
	}
	copy(c, t)
	return
}

type dubinerBasis struct {
	N int
}

func (db dubinerBasis) size() int { return PolynomialDimension(reference.Triangle, db.N) }

// orders lists (i,j) by total degree
func (db dubinerBasis) orders() (ij [][2]int) {
	for n := 0; n <= db.N; n++ {
		for i := n; i >= 0; i-- {
			ij = append(ij, [2]int{i, n - i})
		}
	}
	return
}

// Simplex2DP evaluates the orthonormal triangle polynomial of order (i,j)
func Simplex2DP(a, b []float64, i, j int) (P []float64) {
	h1 := JacobiP(a, 0, 0, i)
	h2 := JacobiP(b, float64(2*i+1), 0, j)
	P = make([]float64, len(a))
	sq2 := math.Sqrt(2)
	for ii := range h1 {
		P[ii] = sq2 * h1[ii] * h2[ii] * utils.POW(1-b[ii], i)
	}
	return
}

// GradSimplex2DP is the (r,s) gradient of Simplex2DP
func GradSimplex2DP(a, b []float64, id, jd int) (ddr, dds []float64) {
	var (
		fa  = JacobiP(a, 0, 0, id)
		dfa = GradJacobiP(a, 0, 0, id)
		gb  = JacobiP(b, 2*float64(id)+1, 0, jd)
		dgb = GradJacobiP(b, 2*float64(id)+1, 0, jd)
		nf  = math.Pow(2, float64(id)+0.5)
	)
	ddr, dds = make([]float64, len(gb)), make([]float64, len(gb))
	for i := range ddr {
		// d/dr = (2/(1-s)) d/da
		ddr[i] = dfa[i] * gb[i]
		if id > 0 {
			ddr[i] *= utils.POW(0.5*(1-b[i]), id-1)
		}
		// d/ds = ((1+a)/2)/((1-b)/2) d/da + d/db
		dds[i] = 0.5 * dfa[i] * gb[i] * (1 + a[i])
		if id > 0 {
			dds[i] *= utils.POW(0.5*(1-b[i]), id-1)
		}
		tmp := dgb[i] * utils.POW(0.5*(1-b[i]), id)
		if id > 0 {
			tmp -= 0.5 * float64(id) * gb[i] * utils.POW(0.5*(1-b[i]), id-1)
		}
		dds[i] += fa[i] * tmp
		ddr[i] *= nf
		dds[i] *= nf
	}
	return
}

func (db dubinerBasis) values(pts [][]float64) (V utils.Matrix) {
	a, b := RStoAB(coordinate(pts, 0), coordinate(pts, 1))
	V = utils.NewMatrix(db.size(), len(pts))
	for sk, ij := range db.orders() {
		V.SetRow(sk, Simplex2DP(a, b, ij[0], ij[1]))
	}
	return
}

func (db dubinerBasis) gradients(pts [][]float64) []utils.Matrix {
	a, b := RStoAB(coordinate(pts, 0), coordinate(pts, 1))
	Vr, Vs := utils.NewMatrix(db.size(), len(pts)), utils.NewMatrix(db.size(), len(pts))
	for sk, ij := range db.orders() {
		ddr, dds := GradSimplex2DP(a, b, ij[0], ij[1])
		Vr.SetRow(sk, ddr)
		Vs.SetRow(sk, dds)
	}
	return []utils.Matrix{Vr, Vs}
}

type pkdBasis struct {
	N int
}

func (pb pkdBasis) size() int { return PolynomialDimension(reference.Tetrahedron, pb.N) }

func (pb pkdBasis) orders() (ijk [][3]int) {
	for n := 0; n <= pb.N; n++ {
		for i := n; i >= 0; i-- {
			for j := n - i; j >= 0; j-- {
				ijk = append(ijk, [3]int{i, j, n - i - j})
			}
		}
	}
	return
}

// Simplex3DP evaluates the orthonormal tetrahedron polynomial of order (i,j,k)
func Simplex3DP(a, b, c []float64, i, j, k int) (P []float64) {
	h1 := JacobiP(a, 0, 0, i)
	h2 := JacobiP(b, float64(2*i+1), 0, j)
	h3 := JacobiP(c, float64(2*(i+j)+2), 0, k)
	P = make([]float64, len(a))
	normConst := 2. * math.Sqrt(2.)
	for n := range P {
		P[n] = normConst * h1[n] * h2[n] * utils.POW(1-b[n], i) *
			h3[n] * utils.POW(1-c[n], i+j)
	}
	return
}

// GradSimplex3DP is the (r,s,t) gradient of Simplex3DP
func GradSimplex3DP(a, b, c []float64, id, jd, kd int) (dmodedr, dmodeds, dmodedt []float64) {
	var (
		n          = len(a)
		fa         = JacobiP(a, 0, 0, id)
		gb         = JacobiP(b, float64(2*id+1), 0, jd)
		hc         = JacobiP(c, float64(2*(id+jd)+2), 0, kd)
		dfa        = GradJacobiP(a, 0, 0, id)
		dgb        = GradJacobiP(b, float64(2*id+1), 0, jd)
		dhc        = GradJacobiP(c, float64(2*(id+jd)+2), 0, kd)
		normFactor = math.Pow(2, float64(2*id+jd)+1.5)
	)
	dmodedr, dmodeds, dmodedt = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		ai, bi, ci := a[i], b[i], c[i]
		V3Dr := dfa[i] * gb[i] * hc[i]
		if id > 0 {
			V3Dr *= utils.POW(0.5*(1-bi), id-1)
		}
		if id+jd > 0 {
			V3Dr *= utils.POW(0.5*(1-ci), id+jd-1)
		}

		V3Ds := 0.5 * (1 + ai) * V3Dr
		tmp := dgb[i] * utils.POW(0.5*(1-bi), id)
		if id > 0 {
			tmp -= 0.5 * float64(id) * gb[i] * utils.POW(0.5*(1-bi), id-1)
		}
		if id+jd > 0 {
			tmp *= utils.POW(0.5*(1-ci), id+jd-1)
		}
		tmp = fa[i] * tmp * hc[i]
		V3Ds += tmp

		V3Dt := 0.5*(1+ai)*V3Dr + 0.5*(1+bi)*tmp
		tmp2 := dhc[i] * utils.POW(0.5*(1-ci), id+jd)
		if id+jd > 0 {
			tmp2 -= 0.5 * float64(id+jd) * hc[i] * utils.POW(0.5*(1-ci), id+jd-1)
		}
		tmp2 = fa[i] * gb[i] * tmp2 * utils.POW(0.5*(1-bi), id)
		V3Dt += tmp2

		dmodedr[i] = V3Dr * normFactor
		dmodeds[i] = V3Ds * normFactor
		dmodedt[i] = V3Dt * normFactor
	}
	return
}

func (pb pkdBasis) values(pts [][]float64) (V utils.Matrix) {
	a, b, c := RSTtoABC(coordinate(pts, 0), coordinate(pts, 1), coordinate(pts, 2))
	V = utils.NewMatrix(pb.size(), len(pts))
	for sk, ijk := range pb.orders() {
		V.SetRow(sk, Simplex3DP(a, b, c, ijk[0], ijk[1], ijk[2]))
	}
	return
}

func (pb pkdBasis) gradients(pts [][]float64) []utils.Matrix {
	a, b, c := RSTtoABC(coordinate(pts, 0), coordinate(pts, 1), coordinate(pts, 2))
	np := len(pts)
	Vr, Vs, Vt := utils.NewMatrix(pb.size(), np), utils.NewMatrix(pb.size(), np), utils.NewMatrix(pb.size(), np)
	for sk, ijk := range pb.orders() {
		dr, ds, dt := GradSimplex3DP(a, b, c, ijk[0], ijk[1], ijk[2])
		Vr.SetRow(sk, dr)
		Vs.SetRow(sk, ds)
		Vt.SetRow(sk, dt)
	}
	return []utils.Matrix{Vr, Vs, Vt}
}

// tensorBasis is P_i(r)P_j(s) with i varying slowest
type tensorBasis struct {
	N int
}

func (tb tensorBasis) size() int { return (tb.N + 1) * (tb.N + 1) }

func (tb tensorBasis) values(pts [][]float64) (V utils.Matrix) {
	r, s := coordinate(pts, 0), coordinate(pts, 1)
	V = utils.NewMatrix(tb.size(), len(pts))
	row := make([]float64, len(pts))
	for i := 0; i <= tb.N; i++ {
		pr := JacobiP(r, 0, 0, i)
		for j := 0; j <= tb.N; j++ {
			ps := JacobiP(s, 0, 0, j)
			for n := range row {
				row[n] = pr[n] * ps[n]
			}
			V.SetRow(i*(tb.N+1)+j, row)
		}
	}
	return
}

func (tb tensorBasis) gradients(pts [][]float64) []utils.Matrix {
	r, s := coordinate(pts, 0), coordinate(pts, 1)
	np := len(pts)
	Vr, Vs := utils.NewMatrix(tb.size(), np), utils.NewMatrix(tb.size(), np)
	rowR, rowS := make([]float64, np), make([]float64, np)
	for i := 0; i <= tb.N; i++ {
		pr, dpr := JacobiP(r, 0, 0, i), GradJacobiP(r, 0, 0, i)
		for j := 0; j <= tb.N; j++ {
			ps, dps := JacobiP(s, 0, 0, j), GradJacobiP(s, 0, 0, j)
			for n := 0; n < np; n++ {
				rowR[n] = dpr[n] * ps[n]
				rowS[n] = pr[n] * dps[n]
			}
			Vr.SetRow(i*(tb.N+1)+j, rowR)
			Vs.SetRow(i*(tb.N+1)+j, rowS)
		}
	}
	return []utils.Matrix{Vr, Vs}
}
