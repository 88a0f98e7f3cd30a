package sinks

import (
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/configuration"
	"sync"
)

// VirtualSink keeps written values in memory, useful for testing setups and previews
type VirtualSink struct {
	Config configuration.LightConfig `json:"config"`

	mu         sync.Mutex
	configured map[int]bool
	history    map[int][]int
}

func NewVirtualSink(config configuration.LightConfig) *VirtualSink {
	return &VirtualSink{
		Config:     config,
		configured: map[int]bool{},
		history:    map[int][]int{},
	}
}

func (sink *VirtualSink) GetId() string {
	return sink.Config.ID
}

func (sink *VirtualSink) GetConfig() configuration.LightConfig {
	return sink.Config
}

func (sink *VirtualSink) ConfigureAsOutput(pin int) error {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.configured[pin] = true
	return nil
}

func (sink *VirtualSink) IsConfigured(pin int) bool {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return sink.configured[pin]
}

func (sink *VirtualSink) WriteAnalog(pin int, value int) error {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.history[pin] = append(sink.history[pin], value)
	return nil
}

func (sink *VirtualSink) GetValue(pin int) (int, error) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	values := sink.history[pin]
	if len(values) <= 0 {
		return 0, errors.New(fmt.Sprintf("no value written to pin %d yet", pin))
	}
	return values[len(values)-1], nil
}

// GetHistory returns a copy of all values written to the given pin, oldest first
func (sink *VirtualSink) GetHistory(pin int) []int {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return append([]int{}, sink.history[pin]...)
}
