package logging

import (
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(42), "unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLevelOrdering(t *testing.T) {
	if !(LevelDebug < LevelInfo && LevelInfo < LevelWarn && LevelWarn < LevelError) {
		t.Error("Expected levels ordered by severity")
	}
}

func TestGetLevelStable(t *testing.T) {
	// The level is resolved once; repeated reads must agree.
	first := GetLevel()
	second := GetLevel()
	if first != second {
		t.Errorf("Expected stable level, got %s then %s", first, second)
	}

	if IsDebugEnabled() != (first <= LevelDebug) {
		t.Error("IsDebugEnabled disagrees with GetLevel")
	}
}
