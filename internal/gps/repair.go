package gps

import "fmt"

// RepairSignal returns a copy of s with every patch replaced. Interior
// patches are interpolated between s[Start-1] and s[End] over Len()+1
// steps. A patch starting at 0 is filled flat with s[End]. Anchors are always read
// from s, never from already repaired output.
func RepairSignal(s []float64, patches []Patch) ([]float64, error) {
	n := len(s)
	for _, p := range patches {
		if p.Start < 0 || p.Start >= p.End || p.End >= n {
			return nil, fmt.Errorf("%w: patch %s on %d samples", ErrPatchOutOfRange, p, n)
		}
	}

	out := make([]float64, n)
	copy(out, s)

	for _, p := range patches {
		if p.Start == 0 {
			for i := 0; i < p.End; i++ {
				out[i] = s[p.End]
			}
			continue
		}

		before, after := s[p.Start-1], s[p.End]
		span := float64(p.End - p.Start + 1)
		for i := p.Start; i < p.End; i++ {
			out[i] = before + float64(i-p.Start+1)*(after-before)/span
		}
	}
	return out, nil
}
