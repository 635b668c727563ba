package tracker

import (
	"fmt"
	"slices"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
)

func sessionKey(kind models.SessionKind) string {
	if kind == models.SessionFasting {
		return constants.KeyFastingSessions
	}
	return constants.KeySleepSessions
}

// Sessions returns every session of kind in start order
func (s *Service) Sessions(kind models.SessionKind) []models.Session {
	return storage.Load(s.store, sessionKey(kind), []models.Session{})
}

// ActiveSession returns the most recently started open session of kind
func (s *Service) ActiveSession(kind models.SessionKind) (models.Session, bool) {
	sessions := s.Sessions(kind)
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].Active() {
			return sessions[i], true
		}
	}
	return models.Session{}, false
}

// StartSession appends an open session starting now. Fasting sessions carry
// the default 16 hour target. Nothing stops a second open session here.
func (s *Service) StartSession(kind models.SessionKind) (models.Session, error) {
	session := models.Session{
		ID:        s.newID(),
		StartTime: s.now(),
	}
	if kind == models.SessionFasting {
		target := constants.DefaultFastingTargetMin
		session.TargetDuration = &target
	}

	_, err := storage.Mutate(s.store, sessionKey(kind), []models.Session{}, func(sessions []models.Session) ([]models.Session, bool) {
		return append(sessions, session), true
	})
	if err != nil {
		return models.Session{}, err
	}
	logger.Debug("session started", "kind", kind, "id", session.ID)
	return session, nil
}

// EndSession stamps the end time and the duration in minutes on an open session
func (s *Service) EndSession(kind models.SessionKind, id string) (models.Session, error) {
	var ended models.Session
	var opErr error
	_, err := storage.Mutate(s.store, sessionKey(kind), []models.Session{}, func(sessions []models.Session) ([]models.Session, bool) {
		idx := slices.IndexFunc(sessions, func(ss models.Session) bool { return ss.ID == id })
		if idx < 0 {
			opErr = fmt.Errorf("%w: %s", ErrSessionNotFound, id)
			return sessions, false
		}
		if !sessions[idx].Active() {
			opErr = fmt.Errorf("%w: %s", ErrSessionEnded, id)
			return sessions, false
		}
		end := s.now()
		minutes := end.Sub(sessions[idx].StartTime).Minutes()
		sessions[idx].EndTime = &end
		sessions[idx].Duration = &minutes
		ended = sessions[idx]
		return sessions, true
	})
	if opErr != nil {
		return models.Session{}, opErr
	}
	if err != nil {
		return models.Session{}, err
	}
	logger.Debug("session ended", "kind", kind, "id", id)
	return ended, nil
}

func (s *Service) StartSleep() (models.Session, error) {
	return s.StartSession(models.SessionSleep)
}

func (s *Service) EndSleep(id string) (models.Session, error) {
	return s.EndSession(models.SessionSleep, id)
}

func (s *Service) StartFasting() (models.Session, error) {
	return s.StartSession(models.SessionFasting)
}

func (s *Service) EndFasting(id string) (models.Session, error) {
	return s.EndSession(models.SessionFasting, id)
}
