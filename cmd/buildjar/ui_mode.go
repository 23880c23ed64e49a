package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects how compile progress is rendered: the live per-unit
// progress view, plain prints, or terminal autodetection.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	}
	return "", fmt.Errorf("--ui: %q is not one of auto, on, off", value)
}

// An explicit on/off always wins; auto asks the terminal.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(os.Stdout)
}
