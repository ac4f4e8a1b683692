package driver

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the last pipeline step a compilation runs.
type Phase uint8

const (
	PhaseLex Phase = iota + 1
	PhaseParse
	PhaseLower // lowering + IR validation
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseLower:
		return "lower"
	default:
		return "unknown"
	}
}

// ParsePhase converts a --phase value.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(s) {
	case "lex", "tokenize":
		return PhaseLex, nil
	case "parse", "syntax":
		return PhaseParse, nil
	case "", "lower", "all":
		return PhaseLower, nil
	default:
		return 0, fmt.Errorf("invalid phase %q (expected: lex|parse|lower)", s)
	}
}

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Err     error // только для PhaseEnd
}

// PhaseObserver receives phase events emitted during a compilation.
type PhaseObserver func(PhaseEvent)
