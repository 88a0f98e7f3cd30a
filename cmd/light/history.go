package light

import (
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/configuration"
	"github.com/markusressel/dim2go/internal/persistence"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/spf13/cobra"
	"os"
	"time"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent operations of a light from the journal",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		if _, err := getLightConfig(); err != nil {
			return err
		}

		p := persistence.NewPersistence(configuration.CurrentConfig.DbPath, configuration.CurrentConfig.JournalSize)
		events, err := p.LoadEvents(lightId, historyLimit)
		if errors.Is(err, os.ErrNotExist) {
			ui.Info("No operations recorded for light %s", lightId)
			return nil
		}
		if err != nil {
			return err
		}

		var rows [][]string
		for _, event := range events {
			result := "ok"
			if !event.Accepted {
				result = event.Error
			}
			rows = append(rows, []string{
				event.Time.Format(time.DateTime),
				event.Operation,
				result,
				fmt.Sprintf("%d", event.Level),
				fmt.Sprintf("%d", event.Target),
			})
		}
		return printTable([]string{"Time", "Operation", "Result", "Level", "Target"}, rows)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries, 0 for all")
	Command.AddCommand(historyCmd)
}
