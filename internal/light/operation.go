package light

import (
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/dimmer"
	"time"
)

var ErrUnknownOperation = errors.New("unknown operation")

type OperationKind string

const (
	OpSetLevel       OperationKind = "level"
	OpTurnOn         OperationKind = "on"
	OpTurnOff        OperationKind = "off"
	OpStepUp         OperationKind = "stepUp"
	OpStepDown       OperationKind = "stepDown"
	OpRampUp         OperationKind = "rampUp"
	OpRampDown       OperationKind = "rampDown"
	OpPauseRamp      OperationKind = "pauseRamp"
	OpResumeRamp     OperationKind = "resumeRamp"
	OpSetEffect      OperationKind = "effect"
	OpSetEffectLevel OperationKind = "effectLevel"
	OpSetStepDelta   OperationKind = "stepDelta"
	OpSetRampTime    OperationKind = "rampTime"
	OpSetDebug       OperationKind = "debug"
)

// Operation is a single command for a light, shared by every surface that can control one
type Operation struct {
	Kind OperationKind `json:"kind"`
	// level, effect level or step delta, depending on Kind
	Value int `json:"value,omitempty"`
	// on effect of OpSetEffect
	Effect dimmer.OnEffect `json:"effect,omitempty"`
	// optional on effect level applied before the effect of OpSetEffect
	Level    *int          `json:"level,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Enabled  bool          `json:"enabled,omitempty"`
}

func (o Operation) String() string {
	switch o.Kind {
	case OpSetLevel, OpSetEffectLevel, OpSetStepDelta:
		return fmt.Sprintf("%s %d", o.Kind, o.Value)
	case OpSetEffect:
		if o.Level != nil {
			return fmt.Sprintf("%s %s (level %d)", o.Kind, o.Effect, *o.Level)
		}
		return fmt.Sprintf("%s %s", o.Kind, o.Effect)
	case OpSetRampTime:
		return fmt.Sprintf("%s %s", o.Kind, o.Duration)
	case OpSetDebug:
		return fmt.Sprintf("%s %t", o.Kind, o.Enabled)
	default:
		return string(o.Kind)
	}
}

func (o Operation) apply(c *dimmer.Controller) error {
	switch o.Kind {
	case OpSetLevel:
		return c.SetLoadLevelTarget(o.Value)
	case OpTurnOn:
		return c.TurnOn()
	case OpTurnOff:
		return c.TurnOff()
	case OpStepUp:
		return c.StepUp()
	case OpStepDown:
		return c.StepDown()
	case OpRampUp:
		return c.StartRampUp()
	case OpRampDown:
		return c.StartRampDown()
	case OpPauseRamp:
		return c.PauseRamp()
	case OpResumeRamp:
		return c.ResumeRamp()
	case OpSetEffect:
		if o.Level != nil {
			err := c.SetOnEffectLevel(*o.Level)
			if err != nil {
				return err
			}
		}
		return c.SetOnEffect(o.Effect)
	case OpSetEffectLevel:
		return c.SetOnEffectLevel(o.Value)
	case OpSetStepDelta:
		return c.SetStepDelta(o.Value)
	case OpSetRampTime:
		return c.SetRampTime(o.Duration)
	case OpSetDebug:
		c.SetDebugMode(o.Enabled)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, o.Kind)
	}
}
