package indexer

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			"NotFound",
			&NotFoundError{Path: "dgindex"},
			[]string{"dgindex", "not found"},
		},
		{
			"Exec",
			&ExecError{Bin: "/usr/bin/dgindex", Stdout: "out", Stderr: "err", Err: errors.New("exit status 2")},
			[]string{"/usr/bin/dgindex", "exit status 2", "out", "err"},
		},
		{
			"Corrupted",
			&CorruptedIndexError{Path: "/cache/x.d2v"},
			[]string{"/cache/x.d2v", "delete it and retry"},
		},
		{
			"Deletion",
			&DeletionError{Path: "/cache/x.d2v", Err: errors.New("permission denied")},
			[]string{"/cache/x.d2v", "failed", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("Expected message to contain %q, got %q", want, msg)
				}
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name string
		err  error
	}{
		{"NotFound", &NotFoundError{Path: "x", Err: cause}},
		{"Exec", &ExecError{Bin: "x", Err: cause}},
		{"Corrupted", &CorruptedIndexError{Path: "x", Err: cause}},
		{"Deletion", &DeletionError{Path: "x", Err: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("Expected %T to unwrap to its cause", tt.err)
			}
		})
	}
}

func TestErrCorruptedSignal(t *testing.T) {
	wrapped := fmt.Errorf("d2v: short header: %w", ErrCorrupted)
	if !errors.Is(wrapped, ErrCorrupted) {
		t.Error("Expected wrapped corruption signal to match ErrCorrupted")
	}
}
