package dimmer

import (
	"fmt"
	"time"
)

const (
	DefaultMinLevel  = 0
	DefaultMaxLevel  = 100
	DefaultOutputMin = 0
	DefaultOutputMax = 255
	DefaultStepDelta = 1
	DefaultRampTime  = 1000 * time.Millisecond
)

type settings struct {
	minLevel      int
	maxLevel      int
	outputMin     int
	outputMax     int
	stepDelta     int
	rampTime      time.Duration
	onEffect      OnEffect
	onEffectLevel *int
	diagnostics   Diagnostics
	debugMode     bool
	clock         func() time.Time
}

// Option customizes a Controller at construction time.
type Option func(s *settings)

// WithLevelRange sets the normalized brightness scale.
func WithLevelRange(min int, max int) Option {
	return func(s *settings) {
		s.minLevel = min
		s.maxLevel = max
	}
}

// WithOutputRange sets the native range of the Sink. min may be greater than max for
// active-low outputs.
func WithOutputRange(min int, max int) Option {
	return func(s *settings) {
		s.outputMin = min
		s.outputMax = max
	}
}

func WithStepDelta(delta int) Option {
	return func(s *settings) {
		s.stepDelta = delta
	}
}

func WithRampTime(rampTime time.Duration) Option {
	return func(s *settings) {
		s.rampTime = rampTime
	}
}

func WithOnEffect(effect OnEffect, level int) Option {
	return func(s *settings) {
		s.onEffect = effect
		s.onEffectLevel = &level
	}
}

// WithDiagnostics routes operation outcomes to d, optionally enabling debug mode right away.
func WithDiagnostics(d Diagnostics, debugMode bool) Option {
	return func(s *settings) {
		s.diagnostics = d
		s.debugMode = debugMode
	}
}

// WithClock replaces time.Now, mostly useful for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		s.clock = clock
	}
}

func defaultSettings() settings {
	return settings{
		minLevel:  DefaultMinLevel,
		maxLevel:  DefaultMaxLevel,
		outputMin: DefaultOutputMin,
		outputMax: DefaultOutputMax,
		stepDelta: DefaultStepDelta,
		rampTime:  DefaultRampTime,
		onEffect:  OnEffectDefault,
		clock:     time.Now,
	}
}

func (s *settings) validate() error {
	if s.minLevel < 0 || s.minLevel >= s.maxLevel {
		return fmt.Errorf("%w: level range [%d, %d]", ErrInvalidRange, s.minLevel, s.maxLevel)
	}
	if s.outputMin == s.outputMax {
		return fmt.Errorf("%w: output range [%d, %d]", ErrInvalidRange, s.outputMin, s.outputMax)
	}
	if s.stepDelta <= 0 || s.stepDelta > s.maxLevel-s.minLevel {
		return fmt.Errorf("%w: %d", ErrStepDeltaOutOfRange, s.stepDelta)
	}
	if s.rampTime < 0 {
		return fmt.Errorf("%w: %s", ErrRampTimeNegative, s.rampTime)
	}
	if !s.onEffect.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownEffect, int(s.onEffect))
	}
	if s.onEffect == OnEffectLastSetting {
		return fmt.Errorf("%w: %s is not allowed as initial on effect", ErrNoPreviousEffect, s.onEffect)
	}
	if s.onEffectLevel != nil && (*s.onEffectLevel < s.minLevel || *s.onEffectLevel > s.maxLevel) {
		return fmt.Errorf("%w: on effect level %d", ErrLevelOutOfRange, *s.onEffectLevel)
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return nil
}
