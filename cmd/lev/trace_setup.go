package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lev/internal/trace"
)

var activeTracer trace.Tracer = trace.Nop

// setupTracing создаёт трассировщик по настройкам и кладёт его в контекст.
func setupTracing(cmd *cobra.Command) error {
	level, err := trace.ParseLevel(settings.TraceLevel)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		return nil
	}
	formatStr, err := cmd.Flags().GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: settings.TraceOutput,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	return nil
}

// closeTracing сбрасывает буферы. Кольцевой трассировщик (уровень error)
// выгружается в stderr, только если команда упала.
func closeTracing(cmd *cobra.Command, failed bool) {
	tracer := activeTracer
	activeTracer = trace.Nop
	if ring, ok := tracer.(*trace.RingTracer); ok && failed {
		if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
		}
	}
	if err := tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}
