package gps

// lineTrace returns n samples moving diagonally from (-83, 42) by step
// degrees on both axes
func lineTrace(n int, step float64) (lat, lon []float64) {
	lat = make([]float64, n)
	lon = make([]float64, n)
	for i := range lat {
		lat[i] = -83 + float64(i)*step
		lon[i] = 42 + float64(i)*step
	}
	return lat, lon
}

func allTrue(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}
