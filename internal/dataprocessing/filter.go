package dataprocessing

// DefaultSpan is the EMA span used when callers pass zero
const DefaultSpan = 3

// EMA applies an exponential moving average with alpha = 2/(span+1).
// The first output equals the first input.
func EMA(data []float64, span int) []float64 {
	if len(data) == 0 {
		return nil
	}
	if span <= 0 {
		span = DefaultSpan
	}

	alpha := 2 / float64(span+1)
	out := make([]float64, len(data))
	out[0] = data[0]
	for i := 1; i < len(data); i++ {
		out[i] = data[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// ApplyFilter smooths the signals whose index is listed in toFilter, or
// every signal when toFilter is empty. Other signals are returned as is.
func ApplyFilter(data [][]float64, toFilter []int, span int) [][]float64 {
	selected := make(map[int]bool, len(toFilter))
	for _, i := range toFilter {
		selected[i] = true
	}

	res := make([][]float64, len(data))
	for i, col := range data {
		if len(toFilter) == 0 || selected[i] {
			res[i] = EMA(col, span)
		} else {
			res[i] = col
		}
	}
	return res
}
