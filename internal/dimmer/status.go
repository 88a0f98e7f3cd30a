package dimmer

import (
	"fmt"
	"time"
)

// LoadLevelStatus classifies the target level relative to the level bounds.
type LoadLevelStatus int

const (
	Minimum LoadLevelStatus = iota
	Maximum
	BetweenMinimumAndMaximum
)

func (s LoadLevelStatus) String() string {
	switch s {
	case Minimum:
		return "Minimum"
	case Maximum:
		return "Maximum"
	default:
		return "BetweenMinimumAndMaximum"
	}
}

func (s LoadLevelStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LoadLevelStatus) UnmarshalText(text []byte) error {
	for _, status := range []LoadLevelStatus{Minimum, Maximum, BetweenMinimumAndMaximum} {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown load level status: %s", text)
}

// State is a point-in-time copy of everything a Controller knows.
type State struct {
	Pin int `json:"pin"`

	CurrentLevel int `json:"currentLevel"`
	TargetLevel  int `json:"targetLevel"`
	MinLevel     int `json:"minLevel"`
	MaxLevel     int `json:"maxLevel"`

	// Output is the native value of CurrentLevel
	Output    int `json:"output"`
	OutputMin int `json:"outputMin"`
	OutputMax int `json:"outputMax"`

	StepDelta int           `json:"stepDelta"`
	RampTime  time.Duration `json:"rampTime"`

	IsRamping      bool `json:"isRamping"`
	RampPaused     bool `json:"rampPaused"`
	RemainingSteps int  `json:"remainingSteps"`
	IsPulsing      bool `json:"isPulsing"`
	IsOn           bool `json:"isOn"`

	OnEffect      OnEffect        `json:"onEffect"`
	OnEffectLevel int             `json:"onEffectLevel"`
	Bound         LoadLevelStatus `json:"bound"`

	DebugMode bool `json:"debugMode"`
}
