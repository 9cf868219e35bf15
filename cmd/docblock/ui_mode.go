package main

import (
	"fmt"
	"os"
	"strings"
)

// resolveUIMode decides whether a render batch runs behind the progress
// display. "on" and "off" are explicit; "auto" (or empty) enables the
// display only when stdout is a terminal, so piped output stays plain.
func resolveUIMode(value string, stdout *os.File) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}
