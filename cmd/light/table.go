package light

import (
	"bytes"
	"fmt"
	"github.com/markusressel/dim2go/cmd/global"
	"github.com/markusressel/dim2go/internal/api"
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

func printTable(headers []string, rows [][]string) error {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return err
	}
	ui.Printfln("%s", buf.String())
	return nil
}

func printStatus(lights []api.Light) error {
	var rows [][]string
	for _, l := range lights {
		state := l.State
		rows = append(rows, []string{
			l.Id,
			fmt.Sprintf("%d", state.CurrentLevel),
			fmt.Sprintf("%d", state.TargetLevel),
			fmt.Sprintf("%d", state.Output),
			fmt.Sprintf("%t", state.IsOn),
			rampStatus(state.IsRamping, state.RampPaused),
			fmt.Sprintf("%t", state.IsPulsing),
			fmt.Sprintf("%s (%d)", state.OnEffect, state.OnEffectLevel),
			fmt.Sprintf("%d", state.StepDelta),
			state.RampTime.String(),
		})
	}
	return printTable(
		[]string{"ID", "Level", "Target", "Output", "On", "Ramp", "Pulse", "On Effect", "Step Delta", "Ramp Time"},
		rows,
	)
}

func rampStatus(ramping bool, paused bool) string {
	switch {
	case paused:
		return "paused"
	case ramping:
		return "active"
	default:
		return "-"
	}
}
