package main

import (
	"fmt"
	"os"
	"strings"
)

// toggle is the auto|on|off switch behind --ui and --color.
type toggle uint8

const (
	toggleAuto toggle = iota
	toggleOn
	toggleOff
)

var toggleNames = map[string]toggle{"": toggleAuto, "auto": toggleAuto, "on": toggleOn, "off": toggleOff}

func parseToggle(flag, value string) (toggle, error) {
	t, ok := toggleNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return toggleAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
	return t, nil
}

// enabled resolves auto by asking detect.
func (t toggle) enabled(detect func() bool) bool {
	switch t {
	case toggleOn:
		return true
	case toggleOff:
		return false
	default:
		return detect()
	}
}

// useTUI: the progress view draws on stderr and never mixes with JSON output.
func useTUI(t toggle) bool {
	return t.enabled(func() bool {
		return settings.Format != "json" && isTerminal(os.Stderr)
	})
}
