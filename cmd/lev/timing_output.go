package main

import (
	"fmt"
	"io"
	"time"

	"lev/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings, includeRun bool) {
	if out == nil {
		return
	}
	if timings.Has(buildpipeline.StageLex) {
		fmt.Fprintf(out, "lexed %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageLex)))
	}
	if timings.Has(buildpipeline.StageParse) {
		fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageParse)))
	}
	if timings.Has(buildpipeline.StageLower) || timings.Has(buildpipeline.StageEmit) {
		built := timings.Sum(buildpipeline.StageLower, buildpipeline.StageEmit)
		fmt.Fprintf(out, "built %.1f ms\n", toMillis(built))
	}
	if includeRun && timings.Has(buildpipeline.StageRun) {
		fmt.Fprintf(out, "ran %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageRun)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
