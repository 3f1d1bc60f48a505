package services

import (
	"errors"
	"fmt"
)

// Service error types
var (
	ErrUnknownGroup        = errors.New("unknown settings group")
	ErrUnknownField        = errors.New("unknown settings field")
	ErrInvalidValue        = errors.New("invalid settings value")
	ErrInvalidFileFormat   = errors.New("invalid file format")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrEmptyProfileName    = errors.New("profile name is empty")
	ErrPresetReadOnly      = errors.New("preset profiles cannot be deleted")
	ErrInvalidLanguage     = errors.New("invalid language tag")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnknownQuickAction  = errors.New("unknown quick action")
	ErrInvalidPosition     = errors.New("invalid toolbar position")
	ErrEmptyFeature        = errors.New("feature name is empty")
)

// PreferencesError represents a failure to read or write the preference store
type PreferencesError struct {
	Operation string
	Err       error
}

func (e *PreferencesError) Error() string {
	return fmt.Sprintf("preferences %s failed: %v", e.Operation, e.Err)
}

func (e *PreferencesError) Unwrap() error {
	return e.Err
}

// NewPreferencesError creates a new preferences error
func NewPreferencesError(operation string, err error) *PreferencesError {
	return &PreferencesError{
		Operation: operation,
		Err:       err,
	}
}

// ImportError reports an imported document that could not be used. It
// matches ErrInvalidFileFormat with errors.Is.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidFileFormat, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func (e *ImportError) Is(target error) bool {
	return target == ErrInvalidFileFormat
}
