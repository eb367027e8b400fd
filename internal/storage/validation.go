package storage

import (
	"context"
	"fmt"
)

func (s *Storage) PlanExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM plans WHERE id = ?)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check plan existence: %w", err)
	}

	return exists, nil
}

func (s *Storage) WorkoutExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM workouts WHERE id = ?)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check workout existence: %w", err)
	}

	return exists, nil
}
