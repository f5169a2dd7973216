// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "json")

	logger.Debug("hello", slog.String("k", "v"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "v", record["k"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "text")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx := WithRequestID(context.Background(), id)
	assert.Equal(t, id, RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestStandardObserver_LogsOperation(t *testing.T) {
	var buf bytes.Buffer
	observer := NewStandardObserver(ObservabilityDebug, NewLogger(&buf, "debug", "json"))

	ctx := WithRequestID(context.Background(), "req-1")
	finish := observer.StartTiming(ctx, "segmenter", "segment")
	finish(true, map[string]any{"tokens": 3})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "segmenter", record["component"])
	assert.Equal(t, "segment", record["operation"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, true, record["success"])
	assert.Equal(t, "DEBUG", record["level"])
}

func TestStandardObserver_Off(t *testing.T) {
	var buf bytes.Buffer
	observer := NewStandardObserver(ObservabilityOff, NewLogger(&buf, "debug", "text"))

	observer.StartTiming(context.Background(), "segmenter", "segment")(false, nil)
	assert.Empty(t, buf.String())
}

func TestDebugObserver_PrintsSteps(t *testing.T) {
	var out bytes.Buffer
	observer := NewDebugObserver(&out, DiscardLogger())

	outer := observer.StartTiming(context.Background(), "pipeline", "process")
	inner := observer.StartTiming(context.Background(), "segmenter", "segment")
	inner(true, map[string]any{"tokens": 2})
	outer(false, nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "> pipeline: process", lines[0])
	assert.Equal(t, "  > segmenter: segment", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  < segmenter: segment done"))
	assert.True(t, strings.HasSuffix(lines[2], " tokens=2"))
	assert.True(t, strings.HasPrefix(lines[3], "< pipeline: process failed"))
}
