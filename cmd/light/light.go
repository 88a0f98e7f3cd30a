package light

import (
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/api"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/spf13/cobra"
)

var lightId string

var Command = &cobra.Command{
	Use:              "light",
	Short:            "Light related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&lightId,
		"id", "i",
		"",
		"Light ID as specified in the config",
	)
}

func loadConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Debug("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.Fatal("%v", err)
	}
}

func getLightConfig() (configuration.LightConfig, error) {
	if len(lightId) <= 0 {
		return configuration.LightConfig{}, errors.New("no light id given, use --id")
	}
	config, ok := configuration.FindLight(lightId)
	if !ok {
		return configuration.LightConfig{}, errors.New(fmt.Sprintf("No light with id found: %s", lightId))
	}
	return config, nil
}

// getClient returns a client for the REST api of the running daemon
func getClient() (*api.Client, error) {
	apiConfig := configuration.CurrentConfig.Api
	if !apiConfig.Enabled {
		return nil, errors.New("the REST api is disabled, enable it using 'api.enabled' to control a running daemon")
	}
	return api.NewClient(apiConfig.Host, apiConfig.Port), nil
}

// execute sends an operation for the selected light to the daemon and prints the result
func execute(op light.Operation) error {
	loadConfig()
	if _, err := getLightConfig(); err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Execute(lightId, op)
	if err != nil {
		return err
	}
	return printStatus([]api.Light{result})
}
