package buildpipeline

import (
	"context"
	"time"

	"lev/internal/driver"
)

// CheckRequest configures a directory check.
type CheckRequest struct {
	Dir      string
	Options  driver.CheckOptions
	Progress ProgressSink
}

// Check runs driver.CheckDir and reports per-file progress as StageCheck
// events. A final event with an empty File closes the run.
func Check(ctx context.Context, req *CheckRequest) (*driver.CheckReport, error) {
	opts := req.Options
	opts.Progress = func(ev driver.ProgressEvent) {
		emit(req.Progress, Event{File: ev.Path, Stage: StageCheck, Status: statusOf(ev.Status)})
	}
	emit(req.Progress, Event{Stage: StageCheck, Status: StatusWorking})
	start := time.Now()
	report, err := driver.CheckDir(ctx, req.Dir, opts)
	final := Event{Stage: StageCheck, Status: StatusDone, Err: err, Elapsed: time.Since(start)}
	if err != nil || report.FailedFiles() > 0 {
		final.Status = StatusError
	}
	emit(req.Progress, final)
	return report, err
}

func statusOf(st driver.FileStatus) Status {
	switch st {
	case driver.FileQueued:
		return StatusQueued
	case driver.FileWorking:
		return StatusWorking
	case driver.FileOK:
		return StatusDone
	case driver.FileCached:
		return StatusCached
	default:
		return StatusError
	}
}
