package session

import (
	"context"
	"encoding/json"
	"fmt"
)

// SaveUser stores the raw JSON user record under KeyUser. The record is
// opaque: no schema is checked beyond it being valid JSON.
func SaveUser(ctx context.Context, s Store, raw []byte) error {
	if !json.Valid(raw) {
		return fmt.Errorf("save user: invalid json")
	}
	return s.Set(ctx, KeyUser, string(raw))
}

// LoadUser decodes the stored user record. A missing record yields (nil, nil).
func LoadUser(ctx context.Context, s Store) (map[string]any, error) {
	raw, err := s.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var user map[string]any
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}
