// Package tracker implements habits, completions, tasks and wellness records on
// top of the key-value adapter. Every mutation reads the whole collection stored
// under its key, changes it in memory and writes the whole collection back.
package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/utils"
)

type Service struct {
	store    *storage.Adapter
	now      func() time.Time
	newID    func() string
	routines []Routine
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRoutines replaces the built-in routine templates
func WithRoutines(routines []Routine) Option {
	return func(s *Service) {
		s.routines = routines
	}
}

func New(store *storage.Adapter, opts ...Option) *Service {
	s := &Service{
		store:    store,
		now:      time.Now,
		newID:    uuid.NewString,
		routines: DefaultRoutines(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current local calendar date
func (s *Service) Today() string {
	return utils.LocalDate(s.now())
}

func (s *Service) resolveDate(date string) (string, error) {
	return utils.ResolveDate(date, s.now())
}
