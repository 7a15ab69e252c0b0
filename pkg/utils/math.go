package utils

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp clamps a value between min and max
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampFloat64 clamps a float64 value between min and max
func ClampFloat64(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampProbability clamps a value into the valid probability range [0, 1].
// Floating-point edge cases must never surface rates like 1.3 or -0.01.
func ClampProbability(p float64) float64 {
	return ClampFloat64(p, 0, 1)
}

// IsPowerOfTwo reports whether n is a positive integer power of two
func IsPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}
