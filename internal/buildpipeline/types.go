package buildpipeline

import (
	"slices"
	"time"
)

// Stage is a pipeline phase. The string value goes into --timings and
// progress events as is.
type Stage string

const (
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageLower Stage = "lower" // lowering + IR validation
	StageEmit  Stage = "emit"
	StageRun   Stage = "run"
	StageCheck Stage = "check" // one file of `lev check DIR`
)

type stageInfo struct {
	label  string  // progress column while the stage is running
	weight float64 // share of a file done once the stage starts
}

var stages = map[Stage]stageInfo{
	StageLex:   {"lexing", 0.1},
	StageParse: {"parsing", 0.3},
	StageLower: {"lowering", 0.6},
	StageEmit:  {"emitting", 0.8},
	StageCheck: {"checking", 0.8},
	StageRun:   {"running", 0.9},
}

// Label is the verb shown while s runs; "" for unknown stages.
func (s Stage) Label() string { return stages[s].label }

// Weight estimates how far a file has come once s started.
func (s Stage) Weight() float64 { return stages[s].weight }

// Status is the state of a file (or of the whole run) inside a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached" // served from the check cache
)

// Final reports whether no more events follow for the file.
func (s Status) Final() bool {
	return s == StatusDone || s == StatusError || s == StatusCached
}

// Event reports progress for File, or for the whole pipeline when File is "".
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

func (e Event) Finished() bool { return e.Status.Final() }

// Label is what a progress view prints for the event: the stage verb while
// working, the status otherwise.
func (e Event) Label() string {
	if e.Status == StatusWorking {
		return e.Stage.Label()
	}
	return string(e.Status)
}

type ProgressSink interface {
	OnEvent(Event)
}

// Backend selects what Build does with a lowered module.
type Backend string

const (
	BackendNone Backend = ""     // stop after compilation
	BackendVM   Backend = "vm"   // run main
	BackendIR   Backend = "ir"   // dump textual IR
	BackendLLVM Backend = "llvm" // LLVM IR text
)

var backendAliases = map[string]Backend{
	"": BackendNone, "vm": BackendVM, "ir": BackendIR, "llvm": BackendLLVM, "ll": BackendLLVM,
}

// ParseBackend converts a --emit / --backend value.
func ParseBackend(s string) (Backend, bool) {
	b, ok := backendAliases[s]
	return b, ok
}

// Timings accumulates wall time per stage. Lowering and validation both
// land in StageLower.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration, len(stages))
	}
	t.stages[stage] += dur
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration { return t.stages[stage] }

// Sum adds up the listed stages; duplicates count once.
func (t Timings) Sum(list ...Stage) time.Duration {
	var total time.Duration
	for i, s := range list {
		if slices.Index(list, s) == i {
			total += t.stages[s]
		}
	}
	return total
}
