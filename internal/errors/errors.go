// Package errors turns command failures into what the user sees and the
// process exit status.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/validation"
)

const (
	ExitFailure = 1
	// ExitUsage is returned when the input was rejected before anything was written
	ExitUsage = 2
)

// Format renders err as "Error: ...", followed by a hint line when one applies
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Hint suggests the next command for errors a user can fix themselves
func Hint(err error) string {
	switch {
	case stderrors.Is(err, storage.ErrNotLoaded):
		return "run 'streaklit init' to create the store"
	case stderrors.Is(err, tracker.ErrHabitNotFound):
		return "'streaklit habit list' shows habit ids and titles"
	case stderrors.Is(err, tracker.ErrTaskNotFound):
		return "'streaklit task list --date YYYY-MM-DD' shows the ids for a day"
	case stderrors.Is(err, tracker.ErrRoutineNotFound):
		return "'streaklit routine list' shows the available routines"
	default:
		return ""
	}
}

// ExitCode maps err onto the process exit status
func ExitCode(err error) int {
	if stderrors.Is(err, validation.ErrInvalid) {
		return ExitUsage
	}
	return ExitFailure
}

// Fatal logs err, prints it to stderr and exits. A nil err does nothing.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	_ = logger.Close()
	os.Exit(ExitCode(err))
}
