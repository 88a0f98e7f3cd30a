package dimmer

import (
	"fmt"
	"math"
	"time"

	"github.com/markusressel/dim2go/internal/util"
)

const (
	MinSuggestedStepDelta = 1
	MaxSuggestedStepDelta = 10
)

type Controller struct {
	pin  int
	sink Sink

	diagnostics Diagnostics
	debugMode   bool
	now         func() time.Time

	minLevel  int
	maxLevel  int
	outputMin int
	outputMax int

	// last level written to the sink
	currentLevel int
	targetLevel  int
	isOn         bool

	stepDelta int
	rampTime  time.Duration
	ramp      ramp

	isPulsing bool
	pulse     pulse

	onEffect                  OnEffect
	onEffectLevel             int
	lastConfiguredEffect      OnEffect
	lastConfiguredEffectLevel int
}

// NewController creates a Controller driving the given pin of sink.
// The level starts at the minimum and nothing is written until the first Process call
// that finds a pending change.
func NewController(pin int, sink Sink, opts ...Option) (*Controller, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	onEffectLevel := s.maxLevel
	if s.onEffectLevel != nil {
		onEffectLevel = *s.onEffectLevel
	}

	return &Controller{
		pin:                       pin,
		sink:                      sink,
		diagnostics:               s.diagnostics,
		debugMode:                 s.debugMode,
		now:                       s.clock,
		minLevel:                  s.minLevel,
		maxLevel:                  s.maxLevel,
		outputMin:                 s.outputMin,
		outputMax:                 s.outputMax,
		currentLevel:              s.minLevel,
		targetLevel:               s.minLevel,
		stepDelta:                 s.stepDelta,
		rampTime:                  s.rampTime,
		onEffect:                  s.onEffect,
		onEffectLevel:             onEffectLevel,
		lastConfiguredEffect:      s.onEffect,
		lastConfiguredEffectLevel: onEffectLevel,
	}, nil
}

// Begin configures the pin of this controller as an output.
func (c *Controller) Begin() error {
	err := c.sink.ConfigureAsOutput(c.pin)
	if err != nil {
		return fmt.Errorf("configure pin %d as output: %w", c.pin, err)
	}
	c.logf("Pin %d configured as output", c.pin)
	return nil
}

// Process advances the pulse effect and any active ramp by at most one step and applies
// a pending level change to the sink.
func (c *Controller) Process() error {
	now := c.now()
	c.advancePulse(now)
	c.advanceRamp(now)
	return c.execute()
}

// execute writes the target level to the sink if it differs from the current one.
// On failure the current level stays untouched, so the write is retried next time.
func (c *Controller) execute() error {
	if c.currentLevel == c.targetLevel {
		return nil
	}

	value := c.toOutput(c.targetLevel)
	err := c.sink.WriteAnalog(c.pin, value)
	if err != nil {
		c.logf("Unable to write output value %d: %v", value, err)
		return fmt.Errorf("write output value %d to pin %d: %w", value, c.pin, err)
	}

	c.currentLevel = c.targetLevel
	c.isOn = c.currentLevel > c.minLevel
	c.logf("Load level applied: %d (output %d)", c.currentLevel, value)
	return nil
}

func (c *Controller) toOutput(level int) int {
	return util.MapRange(level, c.minLevel, c.maxLevel, c.outputMin, c.outputMax)
}

func (c *Controller) SetLoadLevelTarget(level int) error {
	err := c.setTarget(level)
	if err != nil {
		return c.reject(err)
	}
	c.logf("Load level target set to: %d", c.targetLevel)
	return nil
}

func (c *Controller) setTarget(level int) error {
	if !c.inRange(level) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrLevelOutOfRange, level, c.minLevel, c.maxLevel)
	}
	c.targetLevel = level
	return nil
}

func (c *Controller) inRange(level int) bool {
	return level >= c.minLevel && level <= c.maxLevel
}

func (c *Controller) GetLoadLevelTarget() int {
	return c.targetLevel
}

// GetLoadLevelStatus returns the level that was last written to the sink.
func (c *Controller) GetLoadLevelStatus() int {
	return c.currentLevel
}

// GetLoadLevelBound classifies the target level relative to the bounds.
func (c *Controller) GetLoadLevelBound() LoadLevelStatus {
	switch c.targetLevel {
	case c.minLevel:
		return Minimum
	case c.maxLevel:
		return Maximum
	default:
		return BetweenMinimumAndMaximum
	}
}

func (c *Controller) GetMinLevel() int {
	return c.minLevel
}

func (c *Controller) GetMaxLevel() int {
	return c.maxLevel
}

func (c *Controller) GetIsOn() bool {
	return c.isOn
}

// TurnOn runs the configured on effect.
func (c *Controller) TurnOn() error {
	err := c.SetOnEffect(c.onEffect)
	if err != nil {
		return err
	}
	c.logf("Light turned on.")
	return nil
}

// TurnOff cancels any ramp or pulse and sets the target to the minimum level.
func (c *Controller) TurnOff() error {
	c.ramp = ramp{}
	c.isPulsing = false
	err := c.setTarget(c.minLevel)
	if err != nil {
		return c.reject(err)
	}
	c.logf("Light turned off.")
	return nil
}

func (c *Controller) StepUp() error {
	next := c.targetLevel + c.stepDelta
	if next > c.maxLevel {
		return c.reject(fmt.Errorf("%w: maximum load level %d", ErrBoundReached, c.maxLevel))
	}
	c.targetLevel = next
	c.logf("Increased load level to: %d", c.targetLevel)
	return nil
}

func (c *Controller) StepDown() error {
	next := c.targetLevel - c.stepDelta
	if next < c.minLevel {
		return c.reject(fmt.Errorf("%w: minimum load level %d", ErrBoundReached, c.minLevel))
	}
	c.targetLevel = next
	c.logf("Decreased load level to: %d", c.targetLevel)
	return nil
}

// SetOnEffect records the effect and runs it. Leaving the pulse effect cancels the ramp
// it was driving, any other active ramp is paused.
func (c *Controller) SetOnEffect(effect OnEffect) error {
	if !effect.IsValid() {
		return c.reject(fmt.Errorf("%w: %d", ErrUnknownEffect, int(effect)))
	}

	c.onEffect = effect
	if c.isPulsing {
		c.ramp = ramp{}
		c.isPulsing = false
	} else if c.ramp.active {
		_ = c.PauseRamp()
	}

	var err error
	switch effect {
	case OnEffectPulse:
		c.ramp = ramp{}
		c.isPulsing = true
		c.pulse = pulse{rising: true}
		c.logf("Pulse effect activated.")
	case OnEffectLevel:
		err = c.setTarget(c.onEffectLevel)
		c.logf("Setting load level target to on effect level: %d", c.onEffectLevel)
	case OnEffectLastSetting:
		c.onEffect = c.lastConfiguredEffect
		c.onEffectLevel = c.lastConfiguredEffectLevel
		err = c.setTarget(c.onEffectLevel)
		c.logf("Restored last configured on effect %s with level %d", c.onEffect, c.onEffectLevel)
	default:
		err = c.setTarget(c.maxLevel)
	}
	if err != nil {
		return c.reject(err)
	}

	c.lastConfiguredEffect = c.onEffect
	c.lastConfiguredEffectLevel = c.onEffectLevel
	c.logf("On effect set to: %s", c.onEffect)
	return nil
}

func (c *Controller) SetOnEffectLevel(level int) error {
	if !c.inRange(level) {
		return c.reject(fmt.Errorf("%w: on effect level %d not in [%d, %d]", ErrLevelOutOfRange, level, c.minLevel, c.maxLevel))
	}
	c.onEffectLevel = level
	c.logf("On effect level set to: %d", c.onEffectLevel)
	return nil
}

func (c *Controller) GetOnEffectParameters() (OnEffect, int) {
	return c.onEffect, c.onEffectLevel
}

// SetStepDelta accepts deltas in [1, maxLevel-minLevel].
func (c *Controller) SetStepDelta(delta int) error {
	if delta <= 0 || delta > c.maxLevel-c.minLevel {
		return c.reject(fmt.Errorf("%w: %d not in [1, %d]", ErrStepDeltaOutOfRange, delta, c.maxLevel-c.minLevel))
	}
	c.stepDelta = delta
	c.logf("Step delta set to: %d", c.stepDelta)
	return nil
}

func (c *Controller) GetStepDelta() int {
	return c.stepDelta
}

func (c *Controller) SetRampTime(rampTime time.Duration) error {
	if rampTime < 0 {
		return c.reject(fmt.Errorf("%w: %s", ErrRampTimeNegative, rampTime))
	}
	c.rampTime = rampTime
	c.logf("Ramp time set to: %s", c.rampTime)
	return nil
}

func (c *Controller) GetRampTime() time.Duration {
	return c.rampTime
}

// CalculateStepDelta suggests a step delta for approaching the given level: large steps
// when the level is close to the current target, small ones when it is a full span away.
// The suggestion is not applied, use SetStepDelta for that.
func (c *Controller) CalculateStepDelta(level int) (int, error) {
	if !c.inRange(level) {
		return 0, c.reject(fmt.Errorf("%w: %d not in [%d, %d]", ErrLevelOutOfRange, level, c.minLevel, c.maxLevel))
	}

	span := c.maxLevel - c.minLevel
	delta := level - c.targetLevel
	if delta < 0 {
		delta = -delta
	}

	var result int
	switch {
	case delta <= 0:
		result = MaxSuggestedStepDelta
	case delta >= span:
		result = MinSuggestedStepDelta
	default:
		ratio := util.Ratio(float64(delta), 0, float64(span))
		result = int(math.Round((1-ratio)*MaxSuggestedStepDelta + ratio*MinSuggestedStepDelta))
	}

	result = util.Coerce(result, MinSuggestedStepDelta, min(MaxSuggestedStepDelta, span))
	c.logf("Calculated step delta: %d", result)
	return result, nil
}

func (c *Controller) SetDebugMode(debug bool) {
	c.debugMode = debug
}

func (c *Controller) GetDebugMode() bool {
	return c.debugMode
}

func (c *Controller) GetState() State {
	return State{
		Pin:            c.pin,
		CurrentLevel:   c.currentLevel,
		TargetLevel:    c.targetLevel,
		MinLevel:       c.minLevel,
		MaxLevel:       c.maxLevel,
		Output:         c.toOutput(c.currentLevel),
		OutputMin:      c.outputMin,
		OutputMax:      c.outputMax,
		StepDelta:      c.stepDelta,
		RampTime:       c.rampTime,
		IsRamping:      c.ramp.active,
		RampPaused:     c.ramp.paused,
		RemainingSteps: c.remainingSteps(),
		IsPulsing:      c.isPulsing,
		IsOn:           c.isOn,
		OnEffect:       c.onEffect,
		OnEffectLevel:  c.onEffectLevel,
		Bound:          c.GetLoadLevelBound(),
		DebugMode:      c.debugMode,
	}
}

func (c *Controller) logf(format string, a ...interface{}) {
	if !c.debugMode || c.diagnostics == nil {
		return
	}
	c.diagnostics.Log(fmt.Sprintf(format, a...))
}

func (c *Controller) reject(err error) error {
	c.logf("Rejected: %v", err)
	return err
}
