package main

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"rows": 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"rows": 2`) {
		t.Errorf("expected indented output, got %q", buf.String())
	}
}

func TestPrintJSON_ReturnsEncodeError(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]float64{"value": math.NaN()}); err == nil {
		t.Fatal("expected an error for an unencodable value")
	}
}
