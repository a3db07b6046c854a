package model

import "errors"

// Error taxonomy shared by the builder, behaviors and the compositor.
// All three are caller errors: wrap with context and match with errors.Is.
var (
	// ErrInvalidParameter reports bad construction or scheduling arguments
	// (non-positive counts, opacity outside [0,1], negative durations, ...).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedBehavior reports a behavior invoked on an entity that lacks
	// the part groups the behavior animates.
	ErrUnsupportedBehavior = errors.New("unsupported behavior")

	// ErrOverlappingMutation reports two clips writing the same target property
	// during overlapping intervals of one beat.
	ErrOverlappingMutation = errors.New("overlapping mutation")
)
