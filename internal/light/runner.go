package light

import (
	"context"
	"errors"
	"github.com/asecurityteam/rolling"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/persistence"
	"github.com/markusressel/dim2go/internal/sinks"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/markusressel/dim2go/internal/util"
	"github.com/oklog/run"
	cmap "github.com/orcaman/concurrent-map/v2"
	"os"
	"sync"
	"time"
)

var (
	LightMap = cmap.New[*Runner]()
)

// StateListener is notified with the new state of a light after it changed
type StateListener func(id string, state dimmer.State)

// Runner owns the dimmer controller of a single light and drives it at a fixed tick rate.
// All access to the controller goes through the runner.
type Runner struct {
	config      configuration.LightConfig
	sink        sinks.Sink
	persistence persistence.Persistence
	tickRate    time.Duration

	mu         sync.Mutex
	controller *dimmer.Controller
	lastState  dimmer.State
	lastError  string
	lastTick   time.Time
	// time between two ticks in seconds
	cadence *rolling.PointPolicy

	listenerMu sync.Mutex
	listeners  []StateListener
}

// NewRunner creates the controller of the given light. persistence may be nil, in which
// case operations are not journaled.
func NewRunner(
	config configuration.LightConfig,
	sink sinks.Sink,
	p persistence.Persistence,
	tickRate time.Duration,
	windowSize int,
	opts ...dimmer.Option,
) (*Runner, error) {
	options := append(config.Options(), dimmer.WithDiagnostics(ui.LightLogger{Id: config.ID}, config.Debug))
	options = append(options, opts...)

	controller, err := dimmer.NewController(config.Pin, sink, options...)
	if err != nil {
		return nil, err
	}

	return &Runner{
		config:      config,
		sink:        sink,
		persistence: p,
		tickRate:    tickRate,
		controller:  controller,
		lastState:   controller.GetState(),
		cadence:     util.CreateRollingWindow(max(windowSize, 1)),
	}, nil
}

func (r *Runner) GetId() string {
	return r.config.ID
}

func (r *Runner) GetConfig() configuration.LightConfig {
	return r.config
}

func (r *Runner) GetSink() sinks.Sink {
	return r.sink
}

func (r *Runner) Run(ctx context.Context) error {
	err := r.Begin()
	if err != nil {
		return err
	}

	ui.Info("Starting light runner for '%s'", r.GetId())
	r.notify(r.GetState())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		// === process loop
		g.Add(func() error {
			tick := time.NewTicker(r.tickRate)
			defer tick.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick.C:
					r.Tick()
				}
			}
		}, func(err error) {
			cancel()
		})
	}
	{
		// === cadence monitoring
		g.Add(func() error {
			tick := time.NewTicker(10 * time.Second)
			defer tick.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick.C:
					r.checkCadence()
				}
			}
		}, func(err error) {
			cancel()
		})
	}

	err = g.Run()
	ui.Info("Stopped light runner for '%s'", r.GetId())
	return err
}

// Begin configures the output of this light
func (r *Runner) Begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controller.Begin()
}

// Tick lets the controller advance ramps and effects and apply pending changes
func (r *Runner) Tick() {
	r.mu.Lock()
	now := time.Now()
	if !r.lastTick.IsZero() {
		r.cadence.Append(now.Sub(r.lastTick).Seconds())
	}
	r.lastTick = now

	err := r.controller.Process()
	state := r.controller.GetState()
	changed := state != r.lastState
	r.lastState = state

	var message string
	if err != nil {
		message = err.Error()
	}
	errorChanged := message != r.lastError
	r.lastError = message
	r.mu.Unlock()

	if err != nil && errorChanged {
		ui.Warning("Error processing light %s: %v", r.GetId(), err)
	}
	if changed {
		r.notify(state)
	}
}

func (r *Runner) checkCadence() {
	maxInterval := r.GetTickIntervalMax()
	if maxInterval > 2*r.tickRate.Seconds() {
		ui.Warning("Light %s: tick interval of up to %.3fs (avg %.3fs) exceeds the tick rate of %s",
			r.GetId(), maxInterval, util.GetWindowAvg(r.cadence), r.tickRate)
	}
}

// Execute applies the given operation and records its outcome. The returned state
// already contains the new target, the output follows with the next tick.
func (r *Runner) Execute(op Operation) (dimmer.State, error) {
	r.mu.Lock()
	err := op.apply(r.controller)
	state := r.controller.GetState()
	r.mu.Unlock()

	r.record(op, state, err)
	return state, err
}

func (r *Runner) record(op Operation, state dimmer.State, err error) {
	if r.persistence == nil {
		return
	}

	event := persistence.Event{
		Time:      time.Now(),
		Operation: op.String(),
		Accepted:  err == nil,
		Level:     state.CurrentLevel,
		Target:    state.TargetLevel,
	}
	if err != nil {
		event.Error = err.Error()
	}

	if err := r.persistence.AppendEvent(r.GetId(), event); err != nil {
		ui.Warning("Unable to record operation for light %s: %v", r.GetId(), err)
	}
}

// SuggestStepDelta calculates a step delta for reaching the given level without applying it
func (r *Runner) SuggestStepDelta(level int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controller.CalculateStepDelta(level)
}

func (r *Runner) GetState() dimmer.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controller.GetState()
}

// History returns the most recent operation outcomes of this light
func (r *Runner) History(limit int) ([]persistence.Event, error) {
	if r.persistence == nil {
		return []persistence.Event{}, nil
	}
	events, err := r.persistence.LoadEvents(r.GetId(), limit)
	if errors.Is(err, os.ErrNotExist) {
		// nothing recorded yet
		return []persistence.Event{}, nil
	}
	return events, err
}

// GetTickIntervalMax returns the longest time between two ticks in the rolling window, in seconds
func (r *Runner) GetTickIntervalMax() float64 {
	return util.GetWindowMax(r.cadence)
}

func (r *Runner) AddListener(listener StateListener) {
	r.listenerMu.Lock()
	defer r.listenerMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notify(state dimmer.State) {
	r.listenerMu.Lock()
	listeners := append([]StateListener{}, r.listeners...)
	r.listenerMu.Unlock()

	for _, listener := range listeners {
		listener(r.GetId(), state)
	}
}
