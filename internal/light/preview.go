package light

import (
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/sinks"
	"time"
)

// Preview simulates the given operations on an in-memory copy of a light, advancing a
// simulated clock by tickRate per tick. It returns the applied load level after every tick
// and stops early once the light has settled, unless a pulse is running.
func Preview(config configuration.LightConfig, tickRate time.Duration, maxTicks int, ops ...Operation) ([]float64, error) {
	config.Debug = false
	config.File = nil
	config.Cmd = nil
	config.Virtual = &configuration.VirtualSinkConfig{}
	sink := sinks.NewVirtualSink(config)

	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	r, err := NewRunner(config, sink, nil, tickRate, 1, dimmer.WithClock(clock))
	if err != nil {
		return nil, err
	}

	for _, op := range ops {
		_, err = r.Execute(op)
		if err != nil {
			return nil, err
		}
		if op.Kind != OpSetEffect && op.Kind != OpRampUp && op.Kind != OpRampDown {
			// settle setup operations before the next one
			r.Tick()
		}
	}

	var levels []float64
	for i := 0; i < maxTicks; i++ {
		r.Tick()
		now = now.Add(tickRate)

		state := r.GetState()
		levels = append(levels, float64(state.CurrentLevel))
		if !state.IsPulsing && !state.IsRamping && state.CurrentLevel == state.TargetLevel {
			break
		}
	}
	return levels, nil
}
