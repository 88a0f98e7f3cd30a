package configuration

import (
	"testing"
	"time"

	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, input map[string]interface{}) (LightConfig, error) {
	var result LightConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decodeHook(),
		Result:     &result,
	})
	require.NoError(t, err)
	err = decoder.Decode(input)
	return result, err
}

func TestDecodeLightConfig(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"id":       "desk",
		"pin":      2,
		"rampTime": "2500ms",
		"onEffect": "pulse",
		"cmd": map[string]interface{}{
			"setValue": map[string]interface{}{
				"exec": "/usr/bin/pwm",
				"args": "%pin%,%value%",
			},
		},
	}

	// WHEN
	result, err := decode(t, input)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "desk", result.ID)
	assert.Equal(t, 2, result.Pin)
	require.NotNil(t, result.RampTime)
	assert.Equal(t, 2500*time.Millisecond, *result.RampTime)
	assert.Equal(t, dimmer.OnEffectPulse, result.OnEffect)
	require.NotNil(t, result.Cmd)
	assert.Equal(t, []string{"%pin%", "%value%"}, result.Cmd.SetValue.Args)
}

func TestDecodeLightConfig_UnknownEffect(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"id":       "desk",
		"onEffect": "strobe",
	}

	// WHEN
	_, err := decode(t, input)

	// THEN
	assert.Error(t, err)
}
