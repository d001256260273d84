package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, false)

	logger.Debug("hidden %d", 1)
	logger.Info("render %d done", 2)
	logger.Warn("slow render")
	logger.Error("render %d failed: %v", 3, "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `level=INFO msg="render 2 done"`)
	assert.Contains(t, out, `level=WARN msg="slow render"`)
	assert.Contains(t, out, `level=ERROR msg="render 3 failed: boom"`)
}

func TestConsoleLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, true).Debug("starting render %d", 1)
	assert.Contains(t, buf.String(), `level=DEBUG msg="starting render 1"`)
}
