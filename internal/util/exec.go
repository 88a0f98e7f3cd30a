package util

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/ui"
	"os/exec"
	"strings"
	"time"
)

func SafeCmdExecution(executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", errors.New(fmt.Sprintf("Cannot execute %s: %s", executable, err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if ctx.Err() == context.DeadlineExceeded {
		ui.Warning("Command timed out: %s", executable)
		return "", ctx.Err()
	}

	if err != nil {
		ui.Warning("Command failed to execute: %s", executable)
		return "", err
	}

	strout := string(out)
	strout = strings.Trim(strout, "\n")

	return strout, nil
}

// ReplacePlaceholders substitutes every "%name%" in args with the matching value
func ReplacePlaceholders(args []string, values map[string]string) []string {
	result := make([]string, 0, len(args))
	for _, arg := range args {
		for _, key := range SortedKeys(values) {
			arg = strings.ReplaceAll(arg, "%"+key+"%", values[key])
		}
		result = append(result, arg)
	}
	return result
}
