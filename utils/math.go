package utils

import (
	"math"
)

// POW is an integer power with unrolled small exponents
func POW(x float64, p int) (y float64) {
	if p < 0 {
		return 1. / POW(x, -p)
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	default:
		y = math.Pow(x, float64(p))
	}
	return
}

// Binomial is n choose k, zero outside 0 <= k <= n
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}

// Factorial of a small non negative integer
func Factorial(n int) (f float64) {
	f = 1
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return
}
