//go:build netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
*/
import "C"

import (
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Building with -tags netlib routes gonum BLAS calls (Vandermonde products,
// tabulation recombination) through the system OpenBLAS.
func init() {
	blas64.Use(netblas.Implementation{})
}
