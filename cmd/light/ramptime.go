package light

import (
	"github.com/markusressel/dim2go/internal/light"
	"github.com/spf13/cobra"
	"time"
)

var rampTimeCmd = &cobra.Command{
	Use:   "ramptime [duration]",
	Short: "Set the time a ramp from one bound to the other takes, f.ex. 1500ms",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rampTime, err := time.ParseDuration(args[0])
		if err != nil {
			return err
		}
		return execute(light.Operation{Kind: light.OpSetRampTime, Duration: rampTime})
	},
}

var debugCmd = &cobra.Command{
	Use:       "debug [on|off]",
	Short:     "Enable or disable diagnostic output of a light",
	Long:      ``,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(light.Operation{Kind: light.OpSetDebug, Enabled: args[0] == "on"})
	},
}

func init() {
	Command.AddCommand(rampTimeCmd)
	Command.AddCommand(debugCmd)
}
