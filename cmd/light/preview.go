package light

import (
	"errors"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/markusressel/dim2go/internal/light"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/spf13/cobra"
	"time"
)

var previewTicks int

var previewCmd = &cobra.Command{
	Use:       "preview [up|down|pulse]",
	Short:     "Simulate a ramp or the pulse effect of a light and plot its load level",
	Long:      `Runs the configured light against an in-memory output, the hardware is not touched.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "pulse"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewTicks <= 0 {
			return errors.New("ticks must be > 0")
		}

		loadConfig()
		config, err := getLightConfig()
		if err != nil {
			return err
		}

		ops := previewOperations(config, args[0])
		tickRate := configuration.CurrentConfig.TickRate
		levels, err := light.Preview(config, tickRate, previewTicks, ops...)
		if err != nil {
			return err
		}

		caption := fmt.Sprintf("Load level / tick (%s)", tickRate)
		graph := asciigraph.Plot(levels, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
		ui.Printfln("%s", "")
		ui.Printfln("%d ticks, %s", len(levels), tickRate*time.Duration(len(levels)))
		return nil
	},
}

func previewOperations(config configuration.LightConfig, mode string) []light.Operation {
	switch mode {
	case "down":
		maxLevel := dimmer.DefaultMaxLevel
		if config.Levels != nil {
			maxLevel = config.Levels.Max
		}
		return []light.Operation{
			{Kind: light.OpSetLevel, Value: maxLevel},
			{Kind: light.OpRampDown},
		}
	case "pulse":
		return []light.Operation{{Kind: light.OpSetEffect, Effect: dimmer.OnEffectPulse}}
	default:
		return []light.Operation{{Kind: light.OpRampUp}}
	}
}

func init() {
	previewCmd.Flags().IntVarP(&previewTicks, "ticks", "t", 500, "Maximum number of simulated ticks")
	Command.AddCommand(previewCmd)
}
