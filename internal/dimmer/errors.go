package dimmer

import "errors"

var (
	ErrLevelOutOfRange     = errors.New("load level out of range")
	ErrStepDeltaOutOfRange = errors.New("step delta out of range")
	ErrRampTimeNegative    = errors.New("ramp time must not be negative")
	ErrRampInProgress      = errors.New("ramp is already in progress")
	ErrNoRampInProgress    = errors.New("no ramp in progress to pause")
	ErrRampNotPaused       = errors.New("no ramp paused to resume")
	ErrBoundReached        = errors.New("load level bound reached")
	ErrUnknownEffect       = errors.New("unknown on effect")
	ErrPulsing             = errors.New("pulse effect is driving the ramp")
	ErrInvalidRange        = errors.New("invalid range")
	ErrNoPreviousEffect    = errors.New("no previous on effect to restore")
)
