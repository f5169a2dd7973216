// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// DebugObserver prints a human readable line per pipeline step, used by the
// CLI in verbose mode. Operations nested in time are indented.
type DebugObserver struct {
	*StandardObserver
	mu     sync.Mutex
	writer io.Writer
	indent int
}

// NewDebugObserver creates a debug observer with step-by-step output
func NewDebugObserver(writer io.Writer, logger *slog.Logger) *DebugObserver {
	return &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, logger),
		writer:           writer,
	}
}

// StartTiming prints the step start and returns its completion function.
func (d *DebugObserver) StartTiming(ctx context.Context, component, operation string) func(success bool, metadata map[string]any) {
	start := time.Now()

	d.mu.Lock()
	fmt.Fprintf(d.writer, "%s> %s: %s\n", strings.Repeat("  ", d.indent), component, operation)
	d.indent++
	d.mu.Unlock()

	finish := d.StandardObserver.StartTiming(ctx, component, operation)

	return func(success bool, metadata map[string]any) {
		d.mu.Lock()
		d.indent--
		status := "done"
		if !success {
			status = "failed"
		}
		fmt.Fprintf(d.writer, "%s< %s: %s %s (%dms)%s\n",
			strings.Repeat("  ", d.indent), component, operation, status,
			time.Since(start).Milliseconds(), formatMetadata(metadata))
		d.mu.Unlock()

		finish(success, metadata)
	}
}

func formatMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	return b.String()
}
