package gps

import "fmt"

// Patch is a run of untrustworthy samples. Start is the first invalid
// index and End the first valid index after it.
type Patch struct {
	Start int
	End   int
}

// Len returns the number of samples the patch rewrites
func (p Patch) Len() int {
	return p.End - p.Start
}

func (p Patch) String() string {
	return fmt.Sprintf("(%d,%d)", p.Start, p.End)
}

// ExtractPatches pairs the falling and rising edges of keep into patches.
// A run that reaches the end of the mask has no trailing anchor: it is
// dropped unless strict is set, in which case ErrUnterminatedPatch is
// returned along with the terminated patches.
func ExtractPatches(keep []bool, strict bool) ([]Patch, error) {
	var starts, finishes []int
	for i := range keep {
		if i == 0 {
			if !keep[0] {
				starts = append(starts, 0)
			}
			continue
		}
		if keep[i] == keep[i-1] {
			continue
		}
		if len(starts) <= len(finishes) {
			starts = append(starts, i)
		} else {
			finishes = append(finishes, i)
		}
	}

	patches := make([]Patch, 0, len(finishes))
	for i := 0; i < len(starts) && i < len(finishes); i++ {
		patches = append(patches, Patch{Start: starts[i], End: finishes[i]})
	}

	if len(starts) > len(finishes) && strict {
		return patches, fmt.Errorf("%w: run starting at %d", ErrUnterminatedPatch, starts[len(starts)-1])
	}
	return patches, nil
}
