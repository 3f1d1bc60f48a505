package storage

import (
	"context"
	"encoding/json"
)

// GetJSON decodes the value stored under key into v. It returns
// ErrNotFound when the key is absent and *DecodeError when the stored text
// is not valid JSON for v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}

// SetJSON stores v under key as indented JSON.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(data))
}
