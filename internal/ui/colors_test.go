package ui

import (
	"strings"
	"testing"
)

func TestPalette(t *testing.T) {
	p := NewPalette("#000000", "#00FF00", "#FF0000", "#FFA500", "#626262")

	t.Run("OK and Err mark the text", func(t *testing.T) {
		if got := p.OK("done"); !strings.Contains(got, "✓ done") {
			t.Errorf("expected check mark, got %q", got)
		}
		if got := p.Err("failed"); !strings.Contains(got, "✗ failed") {
			t.Errorf("expected cross mark, got %q", got)
		}
	})

	t.Run("Status keeps label and value", func(t *testing.T) {
		for _, ok := range []bool{true, false} {
			got := p.Status("Token:", "valid", ok)
			if !strings.Contains(got, "Token:") || !strings.Contains(got, "valid") {
				t.Errorf("expected label and value, got %q", got)
			}
		}
	})
}
