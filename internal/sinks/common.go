package sinks

import (
	"fmt"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	cmap "github.com/orcaman/concurrent-map/v2"
	"strconv"
)

var (
	SinkMap = cmap.New[Sink]()
)

// Sink is a physical output a light is driven through
type Sink interface {
	dimmer.Sink

	GetId() string
	GetConfig() configuration.LightConfig

	// GetValue returns the output value that was last written to the given pin
	GetValue(pin int) (int, error)
}

func NewSink(config configuration.LightConfig) (Sink, error) {
	if config.File != nil {
		return &FileSink{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSink{
			Config: config,
			Values: map[int]int{},
		}, nil
	}

	if config.Virtual != nil {
		return NewVirtualSink(config), nil
	}

	return nil, fmt.Errorf("no matching sink type for light: %s", config.ID)
}

func placeholders(pin int) map[string]string {
	return map[string]string{
		"pin": strconv.Itoa(pin),
	}
}
