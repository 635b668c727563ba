package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/validation"
)

func (s *Service) Theme() models.Theme {
	theme := storage.Load(s.store, constants.KeyTheme, models.Theme(constants.DefaultTheme))
	switch theme {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
		return theme
	default:
		return models.Theme(constants.DefaultTheme)
	}
}

func (s *Service) SetTheme(theme models.Theme) error {
	switch theme {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
	default:
		return fmt.Errorf("%w: theme must be one of light, dark, system", validation.ErrInvalid)
	}
	return s.store.Set(constants.KeyTheme, theme)
}

func (s *Service) UserName() string {
	return storage.Load(s.store, constants.KeyUserName, "")
}

func (s *Service) SetUserName(name string) error {
	return s.store.Set(constants.KeyUserName, strings.TrimSpace(name))
}

// ClearAllData wipes every key in the namespace
func (s *Service) ClearAllData() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	logger.Info("all data cleared")
	return nil
}
