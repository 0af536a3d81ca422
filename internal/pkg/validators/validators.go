package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Layouts used for dates and times of day across the gateway
const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

// ErrValidation is wrapped by every error reported by Struct and Var
var ErrValidation = errors.New("validation failed")

// Custom validation tags
const (
	DateTag      = "dateonly"
	TimeOfDayTag = "timeofday"
	PhoneTag     = "phone"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// DateValidation accepts YYYY-MM-DD calendar dates.
func DateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// TimeOfDayValidation accepts HH:MM on a 24 hour clock.
func TimeOfDayValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(TimeOfDayLayout, fl.Field().String())
	return err == nil
}

// PhoneValidation accepts 7 to 15 digits with an optional leading plus.
// Spaces, dashes, dots and parentheses are ignored.
func PhoneValidation(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

// IsPhone reports whether value looks like a phone number
func IsPhone(value string) bool {
	return phonePattern.MatchString(NormalizePhone(value))
}

// NormalizePhone strips formatting characters from a phone number
func NormalizePhone(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(value))
}

// New returns a validator with the gateway validations registered
func New() (*validator.Validate, error) {
	validate := validator.New()

	custom := map[string]validator.Func{
		DateTag:      DateValidation,
		TimeOfDayTag: TimeOfDayValidation,
		PhoneTag:     PhoneValidation,
	}
	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register custom validator %s: %w", tag, err)
		}
	}

	return validate, nil
}

// Struct validates s and flattens validation errors into "Field: X, Tag: Y" messages.
func Struct(s interface{}) error {
	validate, err := New()
	if err != nil {
		return err
	}

	err = validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %v", ErrValidation, messages)
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// Var validates a single value against tag
func Var(field interface{}, tag string) error {
	validate, err := New()
	if err != nil {
		return err
	}
	if err := validate.Var(field, tag); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
