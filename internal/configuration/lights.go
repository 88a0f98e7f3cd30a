package configuration

import (
	"github.com/markusressel/dim2go/internal/dimmer"
	"time"
)

type LightConfig struct {
	ID string `json:"id"`
	// Pin (or channel) number passed to the sink
	Pin int `json:"pin"`
	// Enables diagnostic output of the light controller
	Debug bool `json:"debug,omitempty"`

	// Logical load level range, defaults to 0..100
	Levels *RangeConfig `json:"levels,omitempty"`
	// Physical output range, defaults to 0..255, may be inverted
	Output *RangeConfig `json:"output,omitempty"`

	StepDelta     int             `json:"stepDelta,omitempty"`
	RampTime      *time.Duration  `json:"rampTime,omitempty"`
	OnEffect      dimmer.OnEffect `json:"onEffect"`
	OnEffectLevel *int            `json:"onEffectLevel,omitempty"`

	File    *FileSinkConfig    `json:"file,omitempty"`
	Cmd     *CmdSinkConfig     `json:"cmd,omitempty"`
	Virtual *VirtualSinkConfig `json:"virtual,omitempty"`
}

type RangeConfig struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type FileSinkConfig struct {
	// Path to the output file, may contain "%pin%"
	Path string `json:"path"`
	// Writes through a temporary file and rename
	Atomic bool `json:"atomic,omitempty"`
}

type CmdSinkConfig struct {
	// Optional command run once when the light is configured as an output
	Configure *ExecConfig `json:"configure,omitempty"`
	// Command run for every output change, "%pin%" and "%value%" are replaced in args
	SetValue ExecConfig `json:"setValue"`
}

type ExecConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args,omitempty"`
}

type VirtualSinkConfig struct {
}

// Options translates the light configuration into dimmer controller options.
func (c LightConfig) Options() []dimmer.Option {
	var options []dimmer.Option
	if c.Levels != nil {
		options = append(options, dimmer.WithLevelRange(c.Levels.Min, c.Levels.Max))
	}
	if c.Output != nil {
		options = append(options, dimmer.WithOutputRange(c.Output.Min, c.Output.Max))
	}
	if c.StepDelta != 0 {
		options = append(options, dimmer.WithStepDelta(c.StepDelta))
	}
	if c.RampTime != nil {
		options = append(options, dimmer.WithRampTime(*c.RampTime))
	}

	effectLevel := dimmer.DefaultMaxLevel
	if c.Levels != nil {
		effectLevel = c.Levels.Max
	}
	if c.OnEffectLevel != nil {
		effectLevel = *c.OnEffectLevel
	}
	options = append(options, dimmer.WithOnEffect(c.OnEffect, effectLevel))

	return options
}
