package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Profile holds per-user settings stored beside the user's resumes.
type Profile struct {
	DisplayName     string `json:"displayName"`
	DefaultTemplate string `json:"defaultTemplate"`
}

// GetProfile retrieves a user's profile. Returns nil if none has been saved.
func (s *Store) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT display_name, default_template FROM user_profiles WHERE user_id = $1`

	var p Profile
	err := s.pool.QueryRow(ctx, query, userID).Scan(&p.DisplayName, &p.DefaultTemplate)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// SaveProfile creates or replaces a user's profile.
func (s *Store) SaveProfile(ctx context.Context, userID string, p Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, display_name, default_template, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    default_template = EXCLUDED.default_template,
		    updated_at = NOW()`

	_, err := s.pool.Exec(ctx, query, userID, p.DisplayName, p.DefaultTemplate)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}
