package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	available := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		want       int
	}{
		{"CPUBound", 1.0, 0, available},
		{"Limited", 2.0, 1, 1},
		{"MinimumOne", 0.0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.multiplier, tt.limit); got != tt.want {
				t.Errorf("Expected %d workers, got %d", tt.want, got)
			}
		})
	}
}

func TestCountOverride(t *testing.T) {
	t.Setenv("INDEX_WORKERS", "3")

	if got := Count(1.0, 0); got != 3 {
		t.Errorf("Expected override of 3, got %d", got)
	}
	if got := Count(1.0, 2); got != 2 {
		t.Errorf("Expected override capped at 2, got %d", got)
	}
}

func TestCountBadOverrideIgnored(t *testing.T) {
	t.Setenv("INDEX_WORKERS", "not-a-number")

	if got := Count(1.0, 0); got != runtime.GOMAXPROCS(0) {
		t.Errorf("Expected fallback to CPU count, got %d", got)
	}
}

func TestForIO(t *testing.T) {
	if got := ForIO(1); got != 1 {
		t.Errorf("Expected limit respected, got %d", got)
	}
}
