package configuration

import (
	"fmt"
	"testing"
	"time"

	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/stretchr/testify/assert"
)

func createConfig(lights ...LightConfig) Configuration {
	return Configuration{
		JournalSize: 10,
		TickRate:    10 * time.Millisecond,
		Lights:      lights,
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	rampTime := 2 * time.Second
	level := 40
	config := createConfig(
		LightConfig{ID: "desk", Pin: 3, Virtual: &VirtualSinkConfig{}},
		LightConfig{
			ID:            "hall",
			Pin:           5,
			Levels:        &RangeConfig{Min: 10, Max: 60},
			Output:        &RangeConfig{Min: 1023, Max: 0},
			StepDelta:     5,
			RampTime:      &rampTime,
			OnEffect:      dimmer.OnEffectLevel,
			OnEffectLevel: &level,
			File:          &FileSinkConfig{Path: "/sys/class/pwm/pwmchip0/pwm%pin%/duty_cycle"},
		},
	)

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateDuplicateLightId(t *testing.T) {
	// GIVEN
	lightId := "light"
	config := createConfig(
		LightConfig{ID: lightId, Virtual: &VirtualSinkConfig{}},
		LightConfig{ID: lightId, Virtual: &VirtualSinkConfig{}},
	)

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, fmt.Sprintf("duplicate light id detected: %s", lightId))
}

func TestValidateEmptyLightId(t *testing.T) {
	// GIVEN
	config := createConfig(LightConfig{Virtual: &VirtualSinkConfig{}})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "light id must not be empty")
}

func TestValidateLightSubConfigIsMissing(t *testing.T) {
	// GIVEN
	lightId := "light"
	config := createConfig(LightConfig{ID: lightId})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, fmt.Sprintf("Light %s: sub-configuration for light is missing, use one of: file | cmd | virtual", lightId))
}

func TestValidateLightUsesOnlyOneSubConfig(t *testing.T) {
	// GIVEN
	lightId := "light"
	config := createConfig(LightConfig{
		ID:      lightId,
		File:    &FileSinkConfig{Path: "abc"},
		Virtual: &VirtualSinkConfig{},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, fmt.Sprintf("Light %s: only one light type can be used per light definition block", lightId))
}

func TestValidateFileSinkWithoutPath(t *testing.T) {
	// GIVEN
	config := createConfig(LightConfig{ID: "light", File: &FileSinkConfig{}})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "Light light: file path must not be empty")
}

func TestValidateCmdSinkWithoutExecutable(t *testing.T) {
	// GIVEN
	config := createConfig(LightConfig{ID: "light", Cmd: &CmdSinkConfig{}})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "Light light: cmd executable must not be empty")
}

func TestValidateInvalidLevelRange(t *testing.T) {
	// GIVEN
	config := createConfig(LightConfig{
		ID:      "light",
		Levels:  &RangeConfig{Min: 50, Max: 50},
		Virtual: &VirtualSinkConfig{},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorContains(t, err, "Light light:")
	assert.ErrorContains(t, err, "level range [50, 50]")
}

func TestValidateStepDeltaOutOfRange(t *testing.T) {
	// GIVEN
	config := createConfig(LightConfig{
		ID:        "light",
		Levels:    &RangeConfig{Min: 0, Max: 10},
		StepDelta: 11,
		Virtual:   &VirtualSinkConfig{},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorContains(t, err, "step delta out of range")
}

func TestValidateOnEffectLevelOutOfRange(t *testing.T) {
	// GIVEN
	level := 120
	config := createConfig(LightConfig{
		ID:            "light",
		OnEffect:      dimmer.OnEffectLevel,
		OnEffectLevel: &level,
		Virtual:       &VirtualSinkConfig{},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorContains(t, err, "on effect level 120")
}

func TestValidateLastSettingAsInitialOnEffect(t *testing.T) {
	// GIVEN
	config := createConfig(LightConfig{
		ID:       "light",
		OnEffect: dimmer.OnEffectLastSetting,
		Virtual:  &VirtualSinkConfig{},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorIs(t, err, dimmer.ErrNoPreviousEffect)
}

func TestValidateTickRate(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.TickRate = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "invalid tickRate: 0s, must be > 0")
}

func TestValidateMqttWithoutBroker(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.Mqtt.Enabled = true

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "mqtt is enabled but no broker is configured")
}

func TestLightConfigOptions_EffectLevelDefaultsToMaximum(t *testing.T) {
	// GIVEN
	config := LightConfig{
		ID:       "light",
		Levels:   &RangeConfig{Min: 0, Max: 50},
		OnEffect: dimmer.OnEffectLevel,
	}

	// WHEN
	c, err := dimmer.NewController(0, discardSink{}, config.Options()...)

	// THEN
	assert.NoError(t, err)
	effect, level := c.GetOnEffectParameters()
	assert.Equal(t, dimmer.OnEffectLevel, effect)
	assert.Equal(t, 50, level)
	assert.Equal(t, 50, c.GetMaxLevel())
}
