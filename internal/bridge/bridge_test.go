package bridge

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/sinks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(value int) *int {
	return &value
}

func createBridge(t *testing.T) (*Bridge, *light.Runner) {
	config := configuration.LightConfig{
		ID:      "desk",
		Levels:  &configuration.RangeConfig{Min: 0, Max: 50},
		Virtual: &configuration.VirtualSinkConfig{},
	}
	r, err := light.NewRunner(config, sinks.NewVirtualSink(config), nil, time.Millisecond, 10)
	require.NoError(t, err)

	b := New(configuration.MqttConfig{
		Broker:          "tcp://localhost:1883",
		TopicPrefix:     "dim2go",
		DiscoveryPrefix: "homeassistant",
	}, []*light.Runner{r})
	return b, r
}

func TestTopics(t *testing.T) {
	// GIVEN
	b, _ := createBridge(t)

	// THEN
	assert.Equal(t, "homeassistant/light/desk/config", b.configTopic("desk"))
	assert.Equal(t, "dim2go/light/desk/set", b.commandTopic("desk"))
	assert.Equal(t, "dim2go/light/desk/state", b.stateTopic("desk"))
}

func TestDiscoveryConfig(t *testing.T) {
	// GIVEN
	b, _ := createBridge(t)

	// WHEN
	data, err := json.Marshal(b.discoveryConfig("desk"))

	// THEN
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "desk",
		"unique_id": "dim2go_desk",
		"command_topic": "dim2go/light/desk/set",
		"state_topic": "dim2go/light/desk/state",
		"schema": "json",
		"brightness": true,
		"effect": true,
		"effect_list": ["Default", "Pulse", "EffectLevel", "LastSetting"]
	}`, string(data))
}

func TestCommandOperations(t *testing.T) {
	state := dimmer.State{MinLevel: 0, MaxLevel: 50}
	tests := []struct {
		name     string
		cmd      lightCommand
		expected []light.Operation
	}{
		{"off", lightCommand{State: "OFF", Brightness: intPtr(100)}, []light.Operation{{Kind: light.OpTurnOff}}},
		{"on", lightCommand{State: "ON"}, []light.Operation{{Kind: light.OpTurnOn}}},
		{"brightness", lightCommand{State: "ON", Brightness: intPtr(255)}, []light.Operation{{Kind: light.OpSetLevel, Value: 50}}},
		{"brightness half", lightCommand{State: "on", Brightness: intPtr(128)}, []light.Operation{{Kind: light.OpSetLevel, Value: 25}}},
		{"brightness coerced", lightCommand{State: "ON", Brightness: intPtr(300)}, []light.Operation{{Kind: light.OpSetLevel, Value: 50}}},
		{"lowest brightness stays on", lightCommand{State: "ON", Brightness: intPtr(1)}, []light.Operation{{Kind: light.OpSetLevel, Value: 1}}},
		{"effect", lightCommand{State: "ON", Effect: "Pulse"}, []light.Operation{{Kind: light.OpSetEffect, Effect: dimmer.OnEffectPulse}}},
		{"effect with brightness", lightCommand{State: "ON", Effect: "EffectLevel", Brightness: intPtr(51)}, []light.Operation{{Kind: light.OpSetEffect, Effect: dimmer.OnEffectLevel, Level: intPtr(10)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			result, err := commandOperations(tt.cmd, state)

			// THEN
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCommandOperations_Invalid(t *testing.T) {
	// WHEN
	_, errState := commandOperations(lightCommand{State: "TOGGLE"}, dimmer.State{MaxLevel: 100})
	_, errEffect := commandOperations(lightCommand{State: "ON", Effect: "strobe"}, dimmer.State{MaxLevel: 100})

	// THEN
	assert.EqualError(t, errState, "unknown state: TOGGLE")
	assert.ErrorIs(t, errEffect, dimmer.ErrUnknownEffect)
}

func TestHandleCommand(t *testing.T) {
	// GIVEN
	b, r := createBridge(t)

	// WHEN
	err := b.handleCommand(r, []byte(`{"state":"ON","brightness":255}`))

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 50, r.GetState().TargetLevel)
}

func TestHandleCommand_InvalidPayload(t *testing.T) {
	// GIVEN
	b, r := createBridge(t)

	// WHEN
	err := b.handleCommand(r, []byte(`{"state":`))

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0, r.GetState().TargetLevel)
}

func TestBrightnessToLevel(t *testing.T) {
	tests := []struct {
		brightness int
		min        int
		max        int
		expected   int
	}{
		{0, 0, 100, 0},
		{1, 0, 100, 1},
		{2, 0, 100, 1},
		{3, 0, 100, 1},
		{255, 0, 100, 100},
		{1, 10, 20, 11},
		{0, 10, 20, 10},
		{-5, 0, 100, 0},
	}

	for _, tt := range tests {
		// WHEN
		result := brightnessToLevel(tt.brightness, tt.min, tt.max)

		// THEN
		assert.Equal(t, tt.expected, result, "brightness %d on [%d, %d]", tt.brightness, tt.min, tt.max)
	}
}

func TestToLightState(t *testing.T) {
	// GIVEN
	state := dimmer.State{CurrentLevel: 25, MinLevel: 0, MaxLevel: 50, IsOn: true, OnEffect: dimmer.OnEffectPulse}

	// WHEN
	result := toLightState(state)

	// THEN
	assert.Equal(t, lightState{State: "ON", Brightness: 127, Effect: "Pulse"}, result)
	assert.Equal(t, "OFF", toLightState(dimmer.State{MaxLevel: 50}).State)
}

func TestOnStateChanged_RemembersPublishedState(t *testing.T) {
	// GIVEN
	b, r := createBridge(t)

	// WHEN
	b.onStateChanged("desk", r.GetState())

	// THEN
	assert.JSONEq(t, `{"state":"OFF","brightness":0,"effect":"Default"}`, b.published["desk"])
}
