package light

import (
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/spf13/cobra"
)

var effectLevel int

var effectCmd = &cobra.Command{
	Use:   "effect [Default|Pulse|EffectLevel|LastSetting]",
	Short: "Set and run the on effect of a light",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		effect, err := dimmer.ParseOnEffect(args[0])
		if err != nil {
			return err
		}

		op := light.Operation{Kind: light.OpSetEffect, Effect: effect}
		if cmd.Flags().Changed("level") {
			op.Level = &effectLevel
		}
		return execute(op)
	},
}

func init() {
	effectCmd.Flags().IntVarP(&effectLevel, "level", "l", 0, "On effect level applied before the effect")
	Command.AddCommand(effectCmd)
}
