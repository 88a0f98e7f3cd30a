package light

import (
	"github.com/markusressel/dim2go/internal/light"
	"github.com/spf13/cobra"
)

var rampOperations = map[string]light.OperationKind{
	"up":     light.OpRampUp,
	"down":   light.OpRampDown,
	"pause":  light.OpPauseRamp,
	"resume": light.OpResumeRamp,
}

var rampCmd = &cobra.Command{
	Use:       "ramp [up|down|pause|resume]",
	Short:     "Start, pause or resume a ramp towards one of the level bounds",
	Long:      ``,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "pause", "resume"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(light.Operation{Kind: rampOperations[args[0]]})
	},
}

func init() {
	Command.AddCommand(rampCmd)
}
