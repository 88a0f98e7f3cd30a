package sinks

import (
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/util"
	"strconv"
	"sync"
	"time"
)

const cmdTimeout = 2 * time.Second

// CmdSink runs an external command for every output change
type CmdSink struct {
	Config configuration.LightConfig `json:"config"`
	Values map[int]int               `json:"values"`

	mu sync.Mutex
}

func (sink *CmdSink) GetId() string {
	return sink.Config.ID
}

func (sink *CmdSink) GetConfig() configuration.LightConfig {
	return sink.Config
}

func (sink *CmdSink) ConfigureAsOutput(pin int) error {
	conf := sink.Config.Cmd.Configure
	if conf == nil {
		return nil
	}

	args := util.ReplacePlaceholders(conf.Args, placeholders(pin))
	_, err := util.SafeCmdExecution(conf.Exec, args, cmdTimeout)
	return err
}

func (sink *CmdSink) WriteAnalog(pin int, value int) error {
	conf := sink.Config.Cmd.SetValue

	values := placeholders(pin)
	values["value"] = strconv.Itoa(value)
	args := util.ReplacePlaceholders(conf.Args, values)

	_, err := util.SafeCmdExecution(conf.Exec, args, cmdTimeout)
	if err != nil {
		return err
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.Values[pin] = value
	return nil
}

func (sink *CmdSink) GetValue(pin int) (int, error) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	value, ok := sink.Values[pin]
	if !ok {
		return 0, errors.New(fmt.Sprintf("no value written to pin %d yet", pin))
	}
	return value, nil
}
