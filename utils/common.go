package utils

const (
	// CONDTOL is the Vandermonde condition number above which a
	// construction is reported as poorly conditioned
	CONDTOL = 1.e12
)
