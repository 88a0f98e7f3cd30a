package bridge

import (
	"github.com/markusressel/dim2go/internal/dimmer"
)

const (
	stateOn  = "ON"
	stateOff = "OFF"

	maxBrightness = 255
)

// lightConfiguration announces a light to Home Assistant via MQTT discovery
type lightConfiguration struct {
	Name         string   `json:"name"`
	UniqueId     string   `json:"unique_id"`
	CommandTopic string   `json:"command_topic"`
	StateTopic   string   `json:"state_topic"`
	Schema       string   `json:"schema"`
	Brightness   bool     `json:"brightness"`
	Effect       bool     `json:"effect"`
	EffectList   []string `json:"effect_list"`
}

// lightCommand represents a command coming in over MQTT
type lightCommand struct {
	State string `json:"state"`
	// brightness is omitted by Home Assistant when only the state changes
	Brightness *int   `json:"brightness,omitempty"`
	Effect     string `json:"effect,omitempty"`
}

// lightState represents the light state as published over MQTT
type lightState struct {
	State      string `json:"state"`
	Brightness int    `json:"brightness"`
	Effect     string `json:"effect"`
}

func effectNames() []string {
	var result []string
	for _, effect := range dimmer.OnEffects() {
		result = append(result, effect.String())
	}
	return result
}
