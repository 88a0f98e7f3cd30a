package light

import (
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
)

var suggestTarget int

var deltaCmd = &cobra.Command{
	Use:   "delta [value]",
	Short: "Set the step delta of a light, or suggest one for a target level",
	Long:  ``,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("suggest") {
			loadConfig()
			client, err := getClient()
			if err != nil {
				return err
			}
			suggestion, err := client.SuggestStepDelta(lightId, suggestTarget)
			if err != nil {
				return err
			}
			ui.Printfln("Suggested step delta for target %d: %d", suggestion.Target, suggestion.StepDelta)
			return nil
		}

		if len(args) <= 0 {
			return cmd.Usage()
		}
		delta, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return execute(light.Operation{Kind: light.OpSetStepDelta, Value: delta})
	},
}

func init() {
	deltaCmd.Flags().IntVarP(&suggestTarget, "suggest", "s", 0, "Target level to suggest a step delta for")
	Command.AddCommand(deltaCmd)
}
