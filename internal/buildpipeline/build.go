// Package buildpipeline drives the compile, emit and run stages behind the
// CLI and reports their progress as events.
package buildpipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"lev/internal/driver"
	"lev/internal/vm"
)

// BuildRequest configures one single-file build.
type BuildRequest struct {
	Path string
	// Source, если не nil, компилируется вместо чтения Path.
	Source []byte

	Phase          driver.Phase
	Backend        Backend
	Output         io.Writer // для BackendIR и BackendLLVM
	MaxDiagnostics int
	EnableTimings  bool
	BaseDir        string

	RunTrace io.Writer
	MaxDepth int

	Progress ProgressSink
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	Compile *driver.Result
	Value   vm.Value
	Ran     bool
	Timings Timings
}

// Build compiles req.Path and hands the module to the selected backend.
// A phase error is returned unchanged; its diagnostic is in Compile.Bag.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.Path == "" {
		return result, fmt.Errorf("missing target path")
	}
	file := filepath.ToSlash(req.Path)
	emit(req.Progress, Event{File: file, Stage: StageLex, Status: StatusQueued})

	obs := &phaseObserver{sink: req.Progress, file: file, timings: &result.Timings}
	opts := driver.Options{
		Phase:          req.Phase,
		MaxDiagnostics: req.MaxDiagnostics,
		EnableTimings:  req.EnableTimings,
		Observer:       obs.OnPhase,
		BaseDir:        req.BaseDir,
	}

	var res *driver.Result
	if req.Source != nil {
		res = driver.CompileSource(ctx, req.Path, req.Source, opts)
	} else {
		var err error
		res, err = driver.CompileFile(ctx, req.Path, opts)
		if err != nil {
			emit(req.Progress, Event{File: file, Stage: StageLex, Status: StatusError, Err: err})
			return result, err
		}
	}
	result.Compile = res
	if res.Failed() {
		return result, res.Err
	}
	if res.Module == nil || req.Backend == BackendNone {
		emit(req.Progress, Event{File: file, Stage: obs.last, Status: StatusDone})
		return result, nil
	}

	switch req.Backend {
	case BackendVM:
		if err := ValidateEntrypoint(res.Module); err != nil {
			emit(req.Progress, Event{File: file, Stage: StageRun, Status: StatusError, Err: err})
			return result, err
		}
		err := result.stage(req.Progress, file, StageRun, func() error {
			v, err := driver.Run(ctx, res, driver.RunOptions{Trace: req.RunTrace, MaxDepth: req.MaxDepth})
			result.Value, result.Ran = v, err == nil
			return err
		})
		return result, err
	case BackendIR, BackendLLVM:
		if req.Output == nil {
			return result, fmt.Errorf("backend %s needs an output writer", req.Backend)
		}
		format := driver.EmitIR
		if req.Backend == BackendLLVM {
			format = driver.EmitLLVM
		}
		err := result.stage(req.Progress, file, StageEmit, func() error {
			return driver.Emit(ctx, req.Output, res, format)
		})
		return result, err
	default:
		return result, fmt.Errorf("unsupported backend: %s (supported: vm, ir, llvm)", req.Backend)
	}
}

func (r *BuildResult) stage(sink ProgressSink, file string, stage Stage, fn func() error) error {
	emit(sink, Event{File: file, Stage: stage, Status: StatusWorking})
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	r.Timings.Add(stage, elapsed)
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(sink, Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	return err
}

// phaseObserver переводит события фаз драйвера в события стадий.
type phaseObserver struct {
	sink    ProgressSink
	file    string
	timings *Timings
	last    Stage
}

func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage := stageOf(ev.Name)
	if stage == "" {
		return
	}
	if ev.Status == driver.PhaseStart {
		if stage != p.last {
			p.last = stage
			emit(p.sink, Event{File: p.file, Stage: stage, Status: StatusWorking})
		}
		return
	}
	p.timings.Add(stage, ev.Elapsed)
	if ev.Err != nil {
		emit(p.sink, Event{File: p.file, Stage: stage, Status: StatusError, Err: ev.Err, Elapsed: ev.Elapsed})
	}
}

func stageOf(phase string) Stage {
	switch phase {
	case "lex":
		return StageLex
	case "parse":
		return StageParse
	case "lower", "validate":
		return StageLower
	default:
		return ""
	}
}
