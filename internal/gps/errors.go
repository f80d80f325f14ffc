package gps

import "errors"

var (
	// ErrTraceTooShort is returned for traces with fewer than MinSamples samples
	ErrTraceTooShort = errors.New("trace too short")
	// ErrSignalLength is returned when trace signals differ in length
	ErrSignalLength = errors.New("signal length mismatch")
	// ErrUnterminatedPatch is returned in strict mode when an invalid run
	// reaches the end of the mask
	ErrUnterminatedPatch = errors.New("invalid run has no trailing anchor")
	// ErrPatchOutOfRange is returned when a patch anchor falls outside the signal
	ErrPatchOutOfRange = errors.New("patch out of range")
	// ErrStageOrder is returned when pipeline stages run out of order
	ErrStageOrder = errors.New("pipeline stage out of order")
)
