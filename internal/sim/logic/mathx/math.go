package mathx

import "math"

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TruncDist is the euclidean distance between two cells, truncated toward zero.
func TruncDist(ax, ay, bx, by int) int {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return int(math.Sqrt(dx*dx + dy*dy))
}
