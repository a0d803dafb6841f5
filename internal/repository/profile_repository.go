package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ProfileRepository reads public profile fields from the profiles table
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetPublicProfiles fetches profiles for userIDs in one round trip
func (r *ProfileRepository) GetPublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error) {
	profiles := make(map[string]models.PublicProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	start := time.Now()
	rows, err := r.pool.Query(ctx, `
		SELECT `+publicProfileColumns+`
		FROM profiles
		WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		err = fmt.Errorf("failed to query profiles: %w", err)
		observe(ctx, "getPublicProfiles", start, err)
		return nil, err
	}

	items, err := collect(rows, models.ScanPublicProfile)
	observe(ctx, "getPublicProfiles", start, err, zap.Int("requested", len(userIDs)))
	if err != nil {
		return nil, err
	}

	for _, p := range items {
		profiles[p.UserID] = *p
	}
	return profiles, nil
}
