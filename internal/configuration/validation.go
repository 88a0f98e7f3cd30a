package configuration

import (
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/util"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if config.TickRate <= 0 {
		return errors.New(fmt.Sprintf("invalid tickRate: %s, must be > 0", config.TickRate))
	}
	if config.JournalSize < 0 {
		return errors.New(fmt.Sprintf("invalid journalSize: %d, must be >= 0", config.JournalSize))
	}

	err := validateLights(config)
	if err != nil {
		return err
	}

	if config.Mqtt.Enabled && len(config.Mqtt.Broker) <= 0 {
		return errors.New("mqtt is enabled but no broker is configured")
	}

	if containsCmdSinks(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return errors.New(fmt.Sprintf("Config file '%s' has invalid permissions: %s", path, err))
		}
	}

	return nil
}

func containsCmdSinks(config *Configuration) bool {
	for _, lightConfig := range config.Lights {
		if lightConfig.Cmd != nil {
			return true
		}
	}

	return false
}

func validateLights(config *Configuration) error {
	var lightIds []string

	for _, lightConfig := range config.Lights {
		if len(lightConfig.ID) <= 0 {
			return errors.New("light id must not be empty")
		}
		if util.ContainsString(lightIds, lightConfig.ID) {
			return errors.New(fmt.Sprintf("duplicate light id detected: %s", lightConfig.ID))
		}
		lightIds = append(lightIds, lightConfig.ID)

		subConfigs := 0
		if lightConfig.File != nil {
			subConfigs++
		}
		if lightConfig.Cmd != nil {
			subConfigs++
		}
		if lightConfig.Virtual != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return errors.New(fmt.Sprintf("Light %s: only one light type can be used per light definition block", lightConfig.ID))
		}
		if subConfigs <= 0 {
			return errors.New(fmt.Sprintf("Light %s: sub-configuration for light is missing, use one of: file | cmd | virtual", lightConfig.ID))
		}

		if lightConfig.Pin < 0 {
			return errors.New(fmt.Sprintf("Light %s: invalid pin %d, must be >= 0", lightConfig.ID, lightConfig.Pin))
		}

		if lightConfig.File != nil && len(lightConfig.File.Path) <= 0 {
			return errors.New(fmt.Sprintf("Light %s: file path must not be empty", lightConfig.ID))
		}

		if lightConfig.Cmd != nil {
			err := validateCmdSink(lightConfig)
			if err != nil {
				return err
			}
		}

		// the dimmer validates its own parameters, so we let it have a look
		_, err := dimmer.NewController(lightConfig.Pin, discardSink{}, lightConfig.Options()...)
		if err != nil {
			return fmt.Errorf("Light %s: %w", lightConfig.ID, err)
		}
	}

	return nil
}

func validateCmdSink(lightConfig LightConfig) error {
	execs := []ExecConfig{lightConfig.Cmd.SetValue}
	if lightConfig.Cmd.Configure != nil {
		execs = append(execs, *lightConfig.Cmd.Configure)
	}
	for _, exec := range execs {
		if len(exec.Exec) <= 0 {
			return errors.New(fmt.Sprintf("Light %s: cmd executable must not be empty", lightConfig.ID))
		}
	}
	return nil
}

type discardSink struct{}

func (discardSink) ConfigureAsOutput(int) error { return nil }
func (discardSink) WriteAnalog(int, int) error  { return nil }
