package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/markusressel/dim2go/internal/util"
	uuid "github.com/satori/go.uuid"
	"strings"
	"sync"
	"time"
)

// Bridge exposes lights to Home Assistant using the MQTT json schema
type Bridge struct {
	cfg     configuration.MqttConfig
	runners []*light.Runner
	client  mqtt.Client

	// last published state payload per light, used to publish only on changes
	mu        sync.Mutex
	published map[string]string
}

func New(cfg configuration.MqttConfig, runners []*light.Runner) *Bridge {
	b := &Bridge{
		cfg:       cfg,
		runners:   runners,
		published: map[string]string{},
	}
	b.client = mqtt.NewClient(b.clientOptions())
	return b
}

func (b *Bridge) clientOptions() *mqtt.ClientOptions {
	clientId := b.cfg.ClientId
	if len(clientId) <= 0 {
		clientId = "dim2go-" + uuid.NewV4().String()
	}

	return mqtt.NewClientOptions().
		AddBroker(b.cfg.Broker).
		SetClientID(clientId).
		SetUsername(b.cfg.Username).
		SetPassword(b.cfg.Password).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(client mqtt.Client, err error) {
			ui.Warning("MQTT connection lost: %v", err)
		}).
		SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
			ui.Info("MQTT reconnecting")
		}).
		SetOnConnectHandler(func(client mqtt.Client) {
			// subscriptions and retained messages are lost with a clean session
			if err := b.setupLights(); err != nil {
				ui.Error("Unable to set up lights on MQTT: %v", err)
			}
		})
}

// Run connects to the broker and publishes light states until ctx is done
func (b *Bridge) Run(ctx context.Context) error {
	if t := b.client.Connect(); t.Wait() && t.Error() != nil {
		return fmt.Errorf("MQTT connection error: %v", t.Error())
	}
	ui.Info("Connected to MQTT broker %s", b.cfg.Broker)

	for _, r := range b.runners {
		r.AddListener(b.onStateChanged)
	}

	<-ctx.Done()
	b.client.Disconnect(250)
	return nil
}

// setupLights publishes the discovery configuration and subscribes to the command topic of every light
func (b *Bridge) setupLights() error {
	for _, r := range b.runners {
		runner := r
		id := runner.GetId()

		if len(b.cfg.DiscoveryPrefix) > 0 {
			configJson, err := json.Marshal(b.discoveryConfig(id))
			if err != nil {
				return fmt.Errorf("error marshalling light configuration: %v", err)
			}
			if t := b.client.Publish(b.configTopic(id), 0, true, configJson); t.Wait() && t.Error() != nil {
				return fmt.Errorf("MQTT publish failed: %v", t.Error())
			}
			ui.Debug("Registered %s with Home Assistant", id)
		}

		if t := b.client.Subscribe(b.commandTopic(id), 0, func(client mqtt.Client, msg mqtt.Message) {
			err := b.handleCommand(runner, msg.Payload())
			if err != nil {
				ui.Warning("MQTT command for light %s rejected: %v", id, err)
			}
		}); t.Wait() && t.Error() != nil {
			return fmt.Errorf("MQTT subscribe error: %v", t.Error())
		}

		// republish the current state
		b.mu.Lock()
		delete(b.published, id)
		b.mu.Unlock()
		b.onStateChanged(id, runner.GetState())
	}
	return nil
}

func (b *Bridge) discoveryConfig(id string) lightConfiguration {
	return lightConfiguration{
		Name:         id,
		UniqueId:     "dim2go_" + id,
		CommandTopic: b.commandTopic(id),
		StateTopic:   b.stateTopic(id),
		Schema:       "json",
		Brightness:   true,
		Effect:       true,
		EffectList:   effectNames(),
	}
}

func (b *Bridge) handleCommand(runner *light.Runner, payload []byte) error {
	cmd := lightCommand{}
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("MQTT deserialization failed: %v", err)
	}

	ops, err := commandOperations(cmd, runner.GetState())
	if err != nil {
		return err
	}
	for _, op := range ops {
		if _, err := runner.Execute(op); err != nil {
			return err
		}
	}
	return nil
}

// commandOperations translates a Home Assistant command into light operations
func commandOperations(cmd lightCommand, state dimmer.State) ([]light.Operation, error) {
	switch strings.ToUpper(cmd.State) {
	case stateOff:
		return []light.Operation{{Kind: light.OpTurnOff}}, nil
	case stateOn, "":
	default:
		return nil, fmt.Errorf("unknown state: %s", cmd.State)
	}

	var level *int
	if cmd.Brightness != nil {
		value := brightnessToLevel(*cmd.Brightness, state.MinLevel, state.MaxLevel)
		level = &value
	}

	if len(cmd.Effect) > 0 {
		effect, err := dimmer.ParseOnEffect(cmd.Effect)
		if err != nil {
			return nil, err
		}
		return []light.Operation{{Kind: light.OpSetEffect, Effect: effect, Level: level}}, nil
	}

	if level != nil {
		return []light.Operation{{Kind: light.OpSetLevel, Value: *level}}, nil
	}
	return []light.Operation{{Kind: light.OpTurnOn}}, nil
}

func (b *Bridge) onStateChanged(id string, state dimmer.State) {
	payload, err := json.Marshal(toLightState(state))
	if err != nil {
		ui.Error("Error marshalling light state of %s: %v", id, err)
		return
	}

	b.mu.Lock()
	if b.published[id] == string(payload) {
		b.mu.Unlock()
		return
	}
	b.published[id] = string(payload)
	b.mu.Unlock()

	if !b.client.IsConnectionOpen() {
		return
	}
	t := b.client.Publish(b.stateTopic(id), 0, true, payload)
	go func() {
		if t.WaitTimeout(5*time.Second) && t.Error() != nil {
			ui.Warning("[%s] Publish error: %v", b.stateTopic(id), t.Error())
		}
	}()
}

func toLightState(state dimmer.State) lightState {
	result := lightState{
		State:      stateOff,
		Brightness: levelToBrightness(state.CurrentLevel, state.MinLevel, state.MaxLevel),
		Effect:     state.OnEffect.String(),
	}
	if state.IsOn {
		result.State = stateOn
	}
	return result
}

// brightnessToLevel scales a Home Assistant brightness onto the level range. Any
// non-zero brightness keeps the light on.
func brightnessToLevel(brightness int, minLevel int, maxLevel int) int {
	brightness = util.Coerce(brightness, 0, maxBrightness)
	level := util.MapRange(brightness, 0, maxBrightness, minLevel, maxLevel)
	if brightness > 0 {
		level = max(level, minLevel+1)
	}
	return level
}

func levelToBrightness(level int, minLevel int, maxLevel int) int {
	return util.MapRange(level, minLevel, maxLevel, 0, maxBrightness)
}
