package sinks

import (
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/markusressel/dim2go/internal/util"
)

// FileSink writes the output value as plain text into a file, f.ex. a sysfs pwm duty cycle
type FileSink struct {
	Config configuration.LightConfig `json:"config"`
}

func (sink *FileSink) GetId() string {
	return sink.Config.ID
}

func (sink *FileSink) GetConfig() configuration.LightConfig {
	return sink.Config
}

func (sink *FileSink) ConfigureAsOutput(pin int) error {
	// nothing to configure, the file is expected to exist
	_, err := sink.path(pin)
	return err
}

func (sink *FileSink) WriteAnalog(pin int, value int) (err error) {
	filePath, err := sink.path(pin)
	if err != nil {
		return err
	}

	if sink.Config.File.Atomic {
		err = util.WriteIntToFileAtomic(value, filePath)
	} else {
		err = util.WriteIntToFile(value, filePath)
	}
	if err != nil {
		ui.Error("Unable to write to file: %v", filePath)
	}
	return err
}

func (sink *FileSink) GetValue(pin int) (int, error) {
	filePath, err := sink.path(pin)
	if err != nil {
		return 0, err
	}
	return util.ReadIntFromFile(filePath)
}

func (sink *FileSink) path(pin int) (string, error) {
	filePath := util.ReplacePlaceholders([]string{sink.Config.File.Path}, placeholders(pin))[0]
	// resolve home dir path
	return util.ExpandPath(filePath)
}
