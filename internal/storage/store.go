// Package storage persists string preferences by key. Callers own the
// encoding of values; GetJSON and SetJSON cover the common JSON case.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Well-known keys.
const (
	KeySettings    = "accessibility-settings"
	KeyFontSize    = "accessibility-font-size"
	KeyContrast    = "accessibility-contrast"
	KeyVoice       = "accessibility-voice"
	KeyLanguage    = "accessibility-language"
	KeyProfiles    = "accessibility-profiles"

	KeyToolbarPosition = "toolbar-position"
	KeyToolbarVisible  = "toolbar-visible"

	usageKeyPrefix = "usage:"
)

var (
	ErrNotFound = errors.New("preference not found")
	ErrEmptyKey = errors.New("preference key is empty")
)

// Store is a string key/value preference store.
type Store interface {
	// Get returns ErrNotFound when key has never been set or was removed.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// UsageKey is the key recording the last use of a feature.
func UsageKey(feature string) string {
	return usageKeyPrefix + feature
}

// DecodeError reports a stored value that could not be decoded.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode preference %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
