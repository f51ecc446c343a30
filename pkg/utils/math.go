package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CeilDiv returns the ceiling of a/b for positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
