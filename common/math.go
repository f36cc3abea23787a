package common

// ErrNegativeSqrt is thrown by Sqrt on a negative argument.
const ErrNegativeSqrt = "square root of negative number"

// Sqrt returns the integer part of the square root of n, computed with
// Newton iteration over VM integers. The fee curve divides by this value,
// so it must be exact and monotone for any non-negative n.
func Sqrt(n int) int {
	if n < 0 {
		panic(ErrNegativeSqrt)
	}
	if n < 2 {
		return n
	}

	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}

	return x
}
