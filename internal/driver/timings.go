package driver

import (
	"encoding/json"
	"fmt"

	"lev/internal/diag"
	"lev/internal/observ"
	"lev/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic adds an OBS6001 info diagnostic whose single note is
// the JSON form of report. The bag grows past its limit if needed.
func AppendTimingDiagnostic(bag *diag.Bag, kind, path string, report *observ.Report) {
	if bag == nil || report == nil {
		return
	}
	if kind == "" {
		kind = "pipeline"
	}
	payload := timingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", kind, report.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s for %s", msg, path)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Build(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		Note(source.Span{}, string(data))
	if entry.Emit(diag.BagReporter{Bag: bag}) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry.Diagnostic())
	bag.Merge(overflow)
}
