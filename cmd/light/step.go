package light

import (
	"github.com/markusressel/dim2go/internal/light"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:       "step [up|down]",
	Short:     "Change the load level target by one step delta",
	Long:      ``,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := light.OpStepUp
		if args[0] == "down" {
			kind = light.OpStepDown
		}
		return execute(light.Operation{Kind: kind})
	},
}

func init() {
	Command.AddCommand(stepCmd)
}
