package errors

import (
	"fmt"
	"testing"

	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/validation"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("expected empty string for nil error, got %q", got)
	}

	err := fmt.Errorf("water goal must be positive")
	if got := Format(err); got != "Error: water goal must be positive" {
		t.Errorf("unexpected format: %q", got)
	}

	err = fmt.Errorf("%w: %q", tracker.ErrHabitNotFound, "Read")
	want := "Error: habit not found: \"Read\"\nHint: 'streaklit habit list' shows habit ids and titles"
	if got := Format(err); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		err      error
		wantHint bool
	}{
		{storage.ErrNotLoaded, true},
		{fmt.Errorf("open: %w", storage.ErrNotLoaded), true},
		{tracker.ErrTaskNotFound, true},
		{tracker.ErrRoutineNotFound, true},
		{tracker.ErrSessionEnded, false},
		{fmt.Errorf("disk full"), false},
	}
	for _, tt := range tests {
		if got := Hint(tt.err) != ""; got != tt.wantHint {
			t.Errorf("Hint(%v) present = %v, want %v", tt.err, got, tt.wantHint)
		}
	}
}

func TestExitCode(t *testing.T) {
	invalid := fmt.Errorf("%w: title must not be empty", validation.ErrInvalid)
	if got := ExitCode(invalid); got != ExitUsage {
		t.Errorf("ExitCode(invalid input) = %d, want %d", got, ExitUsage)
	}
	if got := ExitCode(tracker.ErrHabitNotFound); got != ExitFailure {
		t.Errorf("ExitCode(not found) = %d, want %d", got, ExitFailure)
	}
}
