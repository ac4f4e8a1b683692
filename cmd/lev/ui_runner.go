package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lev/internal/buildpipeline"
	"lev/internal/driver"
	"lev/internal/ui"
)

type checkOutcome struct {
	report *driver.CheckReport
	err    error
}

// runCheckWithUI гоняет проверку в горутине, а прогресс рисует bubbletea.
func runCheckWithUI(ctx context.Context, title string, req *buildpipeline.CheckRequest) (*driver.CheckReport, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		report, err := buildpipeline.Check(ctx, &reqCopy)
		outcomeCh <- checkOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c): досливаем, чтобы Check не встал на канале
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
