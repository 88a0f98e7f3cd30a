package light

import (
	"github.com/markusressel/dim2go/internal/api"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of a light, or of all lights if no id is given",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		client, err := getClient()
		if err != nil {
			return err
		}

		if len(lightId) <= 0 {
			lights, err := client.GetLights()
			if err != nil {
				return err
			}
			return printStatus(lights)
		}

		result, err := client.GetLight(lightId)
		if err != nil {
			return err
		}
		return printStatus([]api.Light{result})
	},
}

func init() {
	Command.AddCommand(statusCmd)
}
