package light

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/persistence"
	"github.com/markusressel/dim2go/internal/sinks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createLightConfig(id string) configuration.LightConfig {
	rampTime := time.Duration(0)
	return configuration.LightConfig{
		ID:        id,
		Pin:       1,
		StepDelta: 25,
		RampTime:  &rampTime,
		Virtual:   &configuration.VirtualSinkConfig{},
	}
}

func createRunner(t *testing.T, p persistence.Persistence) (*Runner, *sinks.VirtualSink) {
	config := createLightConfig("desk")
	sink := sinks.NewVirtualSink(config)
	r, err := NewRunner(config, sink, p, time.Millisecond, 10)
	require.NoError(t, err)
	return r, sink
}

func createPersistence(t *testing.T) persistence.Persistence {
	p := persistence.NewPersistence(filepath.Join(t.TempDir(), "dim2go.db"), 10)
	require.NoError(t, p.Init())
	return p
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	// GIVEN
	config := createLightConfig("desk")
	config.StepDelta = 500

	// WHEN
	_, err := NewRunner(config, sinks.NewVirtualSink(config), nil, time.Millisecond, 10)

	// THEN
	assert.ErrorIs(t, err, dimmer.ErrStepDeltaOutOfRange)
}

func TestRunner_ExecuteIsAppliedOnTick(t *testing.T) {
	// GIVEN
	r, sink := createRunner(t, nil)

	// WHEN
	state, err := r.Execute(Operation{Kind: OpSetLevel, Value: 42})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42, state.TargetLevel)
	assert.Equal(t, 0, state.CurrentLevel)
	assert.Empty(t, sink.GetHistory(1))

	// WHEN
	r.Tick()

	// THEN
	assert.Equal(t, 42, r.GetState().CurrentLevel)
	value, err := sink.GetValue(1)
	assert.NoError(t, err)
	assert.Equal(t, 107, value)
}

func TestRunner_ExecuteRejected(t *testing.T) {
	// GIVEN
	r, _ := createRunner(t, nil)

	// WHEN
	_, err := r.Execute(Operation{Kind: OpStepDown})

	// THEN
	assert.ErrorIs(t, err, dimmer.ErrBoundReached)
}

func TestRunner_ExecuteUnknownOperation(t *testing.T) {
	// GIVEN
	r, _ := createRunner(t, nil)

	// WHEN
	_, err := r.Execute(Operation{Kind: "dance"})

	// THEN
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestRunner_ExecuteEffectWithLevel(t *testing.T) {
	// GIVEN
	r, _ := createRunner(t, nil)
	level := 30

	// WHEN
	state, err := r.Execute(Operation{Kind: OpSetEffect, Effect: dimmer.OnEffectLevel, Level: &level})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, dimmer.OnEffectLevel, state.OnEffect)
	assert.Equal(t, 30, state.OnEffectLevel)
	assert.Equal(t, 30, state.TargetLevel)
}

func TestRunner_ExecuteSettings(t *testing.T) {
	// GIVEN
	r, _ := createRunner(t, nil)

	// WHEN
	_, errDelta := r.Execute(Operation{Kind: OpSetStepDelta, Value: 5})
	_, errRampTime := r.Execute(Operation{Kind: OpSetRampTime, Duration: 3 * time.Second})
	_, errDebug := r.Execute(Operation{Kind: OpSetDebug, Enabled: true})
	_, errEffectLevel := r.Execute(Operation{Kind: OpSetEffectLevel, Value: 70})

	// THEN
	assert.NoError(t, errDelta)
	assert.NoError(t, errRampTime)
	assert.NoError(t, errDebug)
	assert.NoError(t, errEffectLevel)
	state := r.GetState()
	assert.Equal(t, 5, state.StepDelta)
	assert.Equal(t, 3*time.Second, state.RampTime)
	assert.True(t, state.DebugMode)
	assert.Equal(t, 70, state.OnEffectLevel)
}

func TestRunner_RampAndPause(t *testing.T) {
	// GIVEN
	r, sink := createRunner(t, nil)

	// WHEN
	_, err := r.Execute(Operation{Kind: OpRampUp})
	require.NoError(t, err)
	r.Tick()
	_, err = r.Execute(Operation{Kind: OpPauseRamp})
	require.NoError(t, err)
	r.Tick()
	r.Tick()

	// THEN
	assert.Equal(t, []int{63}, sink.GetHistory(1))
	assert.True(t, r.GetState().RampPaused)

	// WHEN
	_, err = r.Execute(Operation{Kind: OpResumeRamp})
	require.NoError(t, err)
	r.Tick()

	// THEN
	assert.Equal(t, []int{63, 127}, sink.GetHistory(1))
}

func TestRunner_RecordsJournal(t *testing.T) {
	// GIVEN
	r, _ := createRunner(t, createPersistence(t))

	// WHEN
	_, _ = r.Execute(Operation{Kind: OpSetLevel, Value: 42})
	r.Tick()
	_, _ = r.Execute(Operation{Kind: OpSetLevel, Value: 420})

	// THEN
	events, err := r.History(0)
	assert.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "level 42", events[0].Operation)
	assert.True(t, events[0].Accepted)
	assert.Equal(t, 0, events[0].Level)
	assert.Equal(t, 42, events[0].Target)

	assert.Equal(t, "level 420", events[1].Operation)
	assert.False(t, events[1].Accepted)
	assert.Contains(t, events[1].Error, "load level out of range")
	assert.Equal(t, 42, events[1].Level)
}

func TestRunner_HistoryEmpty(t *testing.T) {
	// GIVEN
	withoutJournal, _ := createRunner(t, nil)
	withJournal, _ := createRunner(t, createPersistence(t))

	// WHEN
	a, errA := withoutJournal.History(10)
	b, errB := withJournal.History(10)

	// THEN
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestRunner_ListenerNotifiedOnChange(t *testing.T) {
	// GIVEN
	r, _ := createRunner(t, nil)
	var received []dimmer.State
	r.AddListener(func(id string, state dimmer.State) {
		assert.Equal(t, "desk", id)
		received = append(received, state)
	})

	// WHEN
	r.Tick()
	_, _ = r.Execute(Operation{Kind: OpSetLevel, Value: 50})
	r.Tick()
	r.Tick()

	// THEN
	require.Len(t, received, 1)
	assert.Equal(t, 50, received[0].CurrentLevel)
}

func TestRunner_SuggestStepDelta(t *testing.T) {
	// GIVEN
	r, _ := createRunner(t, nil)

	// WHEN
	suggestion, err := r.SuggestStepDelta(100)
	_, errOutOfRange := r.SuggestStepDelta(101)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, dimmer.MinSuggestedStepDelta, suggestion)
	assert.ErrorIs(t, errOutOfRange, dimmer.ErrLevelOutOfRange)
	assert.Equal(t, 25, r.GetState().StepDelta)
}

func TestRunner_Run(t *testing.T) {
	// GIVEN
	r, sink := createRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var notified int
	r.AddListener(func(id string, state dimmer.State) {
		mu.Lock()
		defer mu.Unlock()
		notified++
	})

	done := make(chan error)
	go func() {
		done <- r.Run(ctx)
	}()

	// WHEN
	_, err := r.Execute(Operation{Kind: OpTurnOn})
	require.NoError(t, err)

	// THEN
	assert.Eventually(t, func() bool {
		value, err := sink.GetValue(1)
		return err == nil && value == 255
	}, 2*time.Second, time.Millisecond)
	assert.True(t, sink.IsConfigured(1))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	// initial state + the change
	assert.GreaterOrEqual(t, notified, 2)
	assert.Greater(t, r.GetTickIntervalMax(), 0.0)
}

func TestOperation_String(t *testing.T) {
	level := 20
	tests := map[string]Operation{
		"level 42":                      {Kind: OpSetLevel, Value: 42},
		"on":                            {Kind: OpTurnOn},
		"effect Pulse":                  {Kind: OpSetEffect, Effect: dimmer.OnEffectPulse},
		"effect EffectLevel (level 20)": {Kind: OpSetEffect, Effect: dimmer.OnEffectLevel, Level: &level},
		"rampTime 1.5s":                 {Kind: OpSetRampTime, Duration: 1500 * time.Millisecond},
		"debug true":                    {Kind: OpSetDebug, Enabled: true},
	}

	for expected, op := range tests {
		assert.Equal(t, expected, op.String())
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		ops      []Operation
		expected []float64
	}{
		{"ramp up", []Operation{{Kind: OpRampUp}}, []float64{25, 50, 75, 100, 100}},
		{"ramp down", []Operation{{Kind: OpSetLevel, Value: 100}, {Kind: OpRampDown}}, []float64{75, 50, 25, 0, 0}},
		{"level", []Operation{{Kind: OpSetLevel, Value: 40}}, []float64{40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			levels, err := Preview(createLightConfig("preview"), 10*time.Millisecond, 100, tt.ops...)

			// THEN
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, levels)
		})
	}
}

func TestPreview_PulseRunsUntilMaxTicks(t *testing.T) {
	// WHEN
	levels, err := Preview(createLightConfig("preview"), 10*time.Millisecond, 20, Operation{Kind: OpSetEffect, Effect: dimmer.OnEffectPulse})

	// THEN
	assert.NoError(t, err)
	assert.Len(t, levels, 20)
	assert.Equal(t, 100.0, levels[3])
}
