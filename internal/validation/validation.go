package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/streaklit/internal/constants"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid input")

// Time-of-day layouts accepted for habits and tasks
var timeLayouts = []string{constants.TimeFormat, "3:04 PM", "3:04PM"}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			_, err := ParseTimeOfDay(fl.Field().String())
			return err == nil
		})
		validate.RegisterValidation("isodate", layoutRule(constants.DateFormat))
		validate.RegisterValidation("isomonth", layoutRule(constants.MonthFormat))
	})
	return validate
}

// Struct validates a model against its `validate` tags and returns a single
// readable error wrapping ErrInvalid
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "nonblank":
		return fmt.Sprintf("%s must not be empty", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "timeofday":
		return fmt.Sprintf("%s must be HH:MM or h:mm AM/PM, got %q", field, fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}

// layoutRule accepts strings that parse with the given time layout
func layoutRule(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}

// ValidateDate checks a YYYY-MM-DD calendar date
func ValidateDate(date string) error {
	if err := instance().Var(date, "isodate"); err != nil {
		return fmt.Errorf("%w: invalid date %q (expected YYYY-MM-DD)", ErrInvalid, date)
	}
	return nil
}

// ValidateMonth checks a YYYY-MM month
func ValidateMonth(month string) error {
	if err := instance().Var(month, "isomonth"); err != nil {
		return fmt.Errorf("%w: invalid month %q (expected YYYY-MM)", ErrInvalid, month)
	}
	return nil
}

// ParseTimeOfDay accepts "HH:MM" (24h) and "h:mm AM/PM" and returns minutes after midnight
func ParseTimeOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: invalid time %q", ErrInvalid, s)
}
