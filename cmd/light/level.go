package light

import (
	"fmt"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/spf13/cobra"
	"strconv"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Get/Set the load level target of a light",
	Long:  ``,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) <= 0 {
			loadConfig()
			client, err := getClient()
			if err != nil {
				return err
			}
			result, err := client.GetLight(lightId)
			if err != nil {
				return err
			}
			fmt.Printf("%d\n", result.State.CurrentLevel)
			return nil
		}

		level, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return execute(light.Operation{Kind: light.OpSetLevel, Value: level})
	},
}

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn a light on using its on effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(light.Operation{Kind: light.OpTurnOn})
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn a light off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(light.Operation{Kind: light.OpTurnOff})
	},
}

func init() {
	Command.AddCommand(levelCmd)
	Command.AddCommand(onCmd)
	Command.AddCommand(offCmd)
}
