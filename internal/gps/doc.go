// Package gps repairs noisy GPS traces in vehicle telemetry logs.
//
// A repair runs in fixed stages:
//
//  1. Classify marks each sample as kept unless the step leaving it jumps
//     further than the threshold (1000 m by default) or the sample falls
//     outside the region box. The first and the last two samples are
//     always kept.
//  2. ExtractPatches turns runs of rejected samples into patches.
//  3. RepairSignal interpolates every patch between the samples bracketing
//     it, or fills it flat when it starts at the first sample. All signals
//     share the patch list derived from the position signals.
//  4. StepDistances and CumulativeDistance recompute the distance traveled
//     with the FCC planar approximation, rounding the running sum to the
//     nearest half meter.
//  5. The replaced flag marks every rejected sample.
//
// The region box keeps the historical constants (-170, -65) for the
// latitude column and (25, 70) for the longitude column. Logs store the
// axes the other way round, so the box effectively covers the continental
// US.
//
// Example usage:
//
//	df, res, err := gps.RepairFrame(ctx, df, cfg.GPS)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.ReplacedCount(), res.TotalDistance())
package gps
