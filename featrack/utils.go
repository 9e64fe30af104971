package featrack

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
