package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// NotifyError shows a critical desktop notification to the user owning the current
// X display. The daemon usually runs as root, so notify-send is run through sudo.
func NotifyError(title, text string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Warning("Cannot send notification, missing env variable 'DISPLAY'!")
		return
	}

	output, err := exec.Command("who").Output()
	if err != nil {
		Warning("Cannot send notification, unable to find user of display session: %v", err)
		return
	}
	user := findDisplayUser(string(output), display)
	if len(user) <= 0 {
		Warning("Cannot send notification, unable to detect user of display session %s", display)
		return
	}

	userId, err := lookupUserId(user)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userId+"/bus",
		"notify-send",
		"-a", "dim2go",
		"-u", "critical",
		"-i", "dialog-error",
		title, text,
	)
	if err := cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

// findDisplayUser returns the login name of the first "who" entry attached to display.
func findDisplayUser(whoOutput string, display string) string {
	for _, line := range strings.Split(whoOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0]
		}
	}
	return ""
}

func lookupUserId(user string) (string, error) {
	output, err := exec.Command("id", "-u", user).Output()
	if err != nil {
		return "", fmt.Errorf("unable to detect user id of %s: %w", user, err)
	}
	userId := strings.TrimSpace(string(output))
	if len(userId) <= 0 {
		return "", fmt.Errorf("unable to detect user id of %s: empty output", user)
	}
	return userId, nil
}
