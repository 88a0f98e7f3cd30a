package light

import (
	"fmt"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured lights",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()

		var rows [][]string
		for _, config := range configuration.CurrentConfig.Lights {
			rows = append(rows, []string{
				config.ID,
				fmt.Sprintf("%d", config.Pin),
				sinkType(config),
				config.OnEffect.String(),
			})
		}
		return printTable([]string{"ID", "Pin", "Sink", "On Effect"}, rows)
	},
}

func sinkType(config configuration.LightConfig) string {
	switch {
	case config.File != nil:
		return "file"
	case config.Cmd != nil:
		return "cmd"
	case config.Virtual != nil:
		return "virtual"
	default:
		return "unknown"
	}
}

func init() {
	Command.AddCommand(listCmd)
}
