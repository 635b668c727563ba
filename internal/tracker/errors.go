package tracker

import "errors"

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrDuplicateHabitID = errors.New("a habit with this id already exists")
	ErrTaskNotFound     = errors.New("task not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionEnded     = errors.New("session already ended")
	ErrRoutineNotFound  = errors.New("routine not found")
)
