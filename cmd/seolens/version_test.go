package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewVersionCmd tests version command output.
func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "seolens version") {
		t.Errorf("output missing version line: %q", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("output missing commit line: %q", out)
	}
}

// TestGetVersion tests version resolution fallback.
func TestGetVersion(t *testing.T) {
	if v := getVersion(); v == "" {
		t.Error("getVersion() should never be empty")
	}
}
