package polyset

import (
	"math"

	"github.com/notargets/gobasis/quadrature"
)

// JacobiP evaluates the Jacobi polynomial of type (alpha,beta) and order N
// at x, normalized to be orthonormal against the Jacobi weight on [-1,1].
func JacobiP(x []float64, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = len(x)
		ab = alpha + beta
		a1 = alpha + 1.
		b1 = beta + 1.
		g0 = quadrature.Gamma0(alpha, beta)
	)
	p = make([]float64, Nc)
	rg := 1. / math.Sqrt(g0)
	if N == 0 {
		for i := range p {
			p[i] = rg
		}
		return
	}
	// PL[i][j] = P_i(x_j)
	PL := make([][]float64, N+1)
	for i := range PL {
		PL[i] = make([]float64, Nc)
	}
	rg1 := 1. / math.Sqrt(a1*b1/(ab+3.)*g0)
	for j := 0; j < Nc; j++ {
		PL[0][j] = rg
		PL[1][j] = rg1 * ((ab+2.)*x[j]/2. + (alpha-beta)/2.)
	}
	aold := 2. / (2. + ab) * math.Sqrt(a1*b1/(ab+3.))
	for i := 1; i <= N-1; i++ {
		fi := float64(i)
		h1 := 2.*fi + ab
		anew := 2. / (h1 + 2.) * math.Sqrt((fi+1.)*(fi+ab+1.)*(fi+a1)*(fi+b1)/(h1+1.)/(h1+3.))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2.)
		for j := 0; j < Nc; j++ {
			PL[i+1][j] = (-aold*PL[i-1][j] + (x[j]-bnew)*PL[i][j]) / anew
		}
		aold = anew
	}
	copy(p, PL[N])
	return
}

// GradJacobiP is the derivative of JacobiP with respect to x
func GradJacobiP(x []float64, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		return make([]float64, len(x))
	}
	p = JacobiP(x, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i := range p {
		p[i] *= fac
	}
	return
}
