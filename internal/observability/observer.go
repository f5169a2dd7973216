// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"context"
	"log/slog"
	"time"
)

// Observer times pipeline operations.
type Observer interface {
	StartTiming(ctx context.Context, component, operation string) func(success bool, metadata map[string]any)
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// StandardObserver writes one structured record per completed operation.
type StandardObserver struct {
	level  ObservabilityLevel
	logger *slog.Logger
}

// NewStandardObserver creates an observer logging through logger.
func NewStandardObserver(level ObservabilityLevel, logger *slog.Logger) *StandardObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandardObserver{
		level:  level,
		logger: logger,
	}
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(ctx context.Context, component, operation string) func(success bool, metadata map[string]any) {
	start := time.Now()

	return func(success bool, metadata map[string]any) {
		o.LogOperation(ctx, StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation logs operation data. Successful operations are logged at debug
// level, failures at warn level.
func (o *StandardObserver) LogOperation(ctx context.Context, data StandardObservabilityData) {
	if o.level == ObservabilityOff {
		return
	}

	if data.RequestID == "" {
		data.RequestID = RequestID(ctx)
	}

	attrs := []slog.Attr{
		slog.String("component", data.Component),
		slog.String("operation", data.Operation),
		slog.Int64("duration_ms", data.DurationMs),
		slog.Bool("success", data.Success),
	}
	if data.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", data.RequestID))
	}
	if data.Error != "" {
		attrs = append(attrs, slog.String("error", data.Error))
	}
	if o.level == ObservabilityDebug && len(data.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", data.Metadata))
	}

	level := slog.LevelDebug
	if !data.Success {
		level = slog.LevelWarn
	}
	o.logger.LogAttrs(ctx, level, "operation completed", attrs...)
}

// StandardObservabilityData describes one completed operation.
type StandardObservabilityData struct {
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	RequestID  string         `json:"request_id"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NopObserver discards all timings.
type NopObserver struct{}

func (NopObserver) StartTiming(context.Context, string, string) func(bool, map[string]any) {
	return func(bool, map[string]any) {}
}
