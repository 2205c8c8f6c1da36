package models

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Message validation errors
var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is too long")
)

// LengthError reports a message over the configured limit
type LengthError struct {
	Limit int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: limit is %d characters", ErrMessageTooLong, e.Limit)
}

// Is matches ErrMessageTooLong
func (e *LengthError) Is(target error) bool {
	return target == ErrMessageTooLong
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateMessage checks a trimmed message against the length limit.
// Length is counted in runes.
func ValidateMessage(message string, maxLength int) error {
	v := getValidator()

	if err := v.Var(message, "required"); err != nil {
		return ErrEmptyMessage
	}

	if maxLength > 0 {
		if err := v.Var(message, fmt.Sprintf("max=%d", maxLength)); err != nil {
			return &LengthError{Limit: maxLength}
		}
	}

	return nil
}
