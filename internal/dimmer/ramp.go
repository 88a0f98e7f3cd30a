package dimmer

import (
	"fmt"
	"time"
)

type rampDirection int

const (
	rampUp rampDirection = iota
	rampDown
)

func (d rampDirection) String() string {
	if d == rampUp {
		return "up"
	}
	return "down"
}

// ramp is an in-progress traversal of the target level toward one of the bounds.
// Steps are taken in Process, at most one per call.
type ramp struct {
	active     bool
	paused     bool
	direction  rampDirection
	bound      int
	nextStepAt time.Time
	// started by the pulse effect rather than by a caller
	pulse bool
}

// pulse tracks the alternation of the breathing effect between ramp traversals.
type pulse struct {
	rising    bool
	holdUntil time.Time
}

func (c *Controller) StartRampUp() error {
	return c.startRamp(rampUp, false)
}

func (c *Controller) StartRampDown() error {
	return c.startRamp(rampDown, false)
}

func (c *Controller) startRamp(direction rampDirection, byPulse bool) error {
	if c.ramp.active {
		return c.reject(fmt.Errorf("%w: ramping %s", ErrRampInProgress, c.ramp.direction))
	}
	if c.isPulsing && !byPulse {
		return c.reject(ErrPulsing)
	}

	bound := c.maxLevel
	if direction == rampDown {
		bound = c.minLevel
	}
	if c.targetLevel == bound {
		c.logf("Ramp %s complete, load level already at %d", direction, bound)
		return nil
	}

	c.ramp = ramp{
		active:     true,
		direction:  direction,
		bound:      bound,
		nextStepAt: c.now(),
		pulse:      byPulse,
	}
	c.logf("Starting ramp %s with a time of %s (%s per step)", direction, c.rampTime, c.stepInterval())
	return nil
}

// stepInterval spreads the ramp time over the number of steps a full min <-> max
// traversal takes, so the total ramp duration does not depend on the step delta.
func (c *Controller) stepInterval() time.Duration {
	steps := max((c.maxLevel-c.minLevel)/c.stepDelta, 1)
	return c.rampTime / time.Duration(steps)
}

// remainingSteps returns the number of steps the active ramp still has to take.
func (c *Controller) remainingSteps() int {
	if !c.ramp.active {
		return 0
	}
	distance := c.ramp.bound - c.targetLevel
	if distance < 0 {
		distance = -distance
	}
	return (distance + c.stepDelta - 1) / c.stepDelta
}

// advanceRamp takes at most one step of the active ramp. The final step lands exactly on
// the bound, the ramp ends one step interval later.
func (c *Controller) advanceRamp(now time.Time) {
	if !c.ramp.active || c.ramp.paused || now.Before(c.ramp.nextStepAt) {
		return
	}

	if c.targetLevel == c.ramp.bound {
		c.finishRamp(now)
		return
	}

	var next int
	if c.ramp.direction == rampUp {
		next = min(c.targetLevel+c.stepDelta, c.ramp.bound)
	} else {
		next = max(c.targetLevel-c.stepDelta, c.ramp.bound)
	}
	c.targetLevel = next
	c.scheduleNextStep(now)
	c.logf("Current load level: %d", c.targetLevel)
}

// scheduleNextStep keeps steps on a fixed grid starting at the ramp start, so late ticks
// do not stretch the ramp. A ramp that fell more than one interval behind restarts the
// grid at now instead of catching up in a burst.
func (c *Controller) scheduleNextStep(now time.Time) {
	interval := c.stepInterval()
	if now.Sub(c.ramp.nextStepAt) > interval {
		c.ramp.nextStepAt = now.Add(interval)
		return
	}
	c.ramp.nextStepAt = c.ramp.nextStepAt.Add(interval)
}

func (c *Controller) finishRamp(now time.Time) {
	finished := c.ramp
	c.ramp = ramp{}
	c.logf("Ramp %s complete.", finished.direction)

	if finished.pulse && finished.direction == rampDown {
		c.pulse.holdUntil = now.Add(c.rampTime)
	}
}

// advancePulse starts the next traversal of the breathing effect once the previous one
// has finished: up, down, a pause of one ramp time, and again.
func (c *Controller) advancePulse(now time.Time) {
	if !c.isPulsing || c.ramp.active || now.Before(c.pulse.holdUntil) {
		return
	}

	direction := rampDown
	if c.pulse.rising {
		direction = rampUp
	}
	c.pulse.rising = !c.pulse.rising
	_ = c.startRamp(direction, true)
}

func (c *Controller) PauseRamp() error {
	if !c.ramp.active {
		return c.reject(ErrNoRampInProgress)
	}
	if c.ramp.paused {
		c.logf("Ramp already paused.")
		return nil
	}
	c.ramp.paused = true
	c.logf("Ramp paused.")
	return nil
}

func (c *Controller) ResumeRamp() error {
	if !c.ramp.active || !c.ramp.paused {
		return c.reject(ErrRampNotPaused)
	}
	c.ramp.paused = false
	c.logf("Ramp resumed.")
	return nil
}

func (c *Controller) GetIsRamping() bool {
	return c.ramp.active
}

func (c *Controller) GetIsRampPaused() bool {
	return c.ramp.paused
}

func (c *Controller) GetIsPulsing() bool {
	return c.isPulsing
}
