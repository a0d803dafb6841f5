package cache

import (
	"context"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/internal/repository"
	"github.com/alumnihub/alumnihub-api/pkg/logger"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	profileKeyPrefix = "profile:user:"
	profileCacheName = "public_profile"
	cacheCheckPeriod = 10 * time.Minute
	defaultTTL       = 5 * time.Minute
)

// cachedProfile also remembers users the source does not know, so repeated
// list calls for a counterpart without a profile do not hit the database
type cachedProfile struct {
	profile models.PublicProfile
	found   bool
}

// ProfileCache is a read-through cache in front of a ProfileSource
type ProfileCache struct {
	cache  *gocache.Cache
	source repository.ProfileSource
	ttl    time.Duration
}

// NewProfileCache creates a profile cache; ttlSeconds <= 0 means 5 minutes
func NewProfileCache(source repository.ProfileSource, ttlSeconds int) *ProfileCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &ProfileCache{
		cache:  gocache.New(ttl, cacheCheckPeriod),
		source: source,
		ttl:    ttl,
	}
}

// GetPublicProfiles serves cached entries and fetches the rest in one call
func (pc *ProfileCache) GetPublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error) {
	profiles := make(map[string]models.PublicProfile, len(userIDs))
	missing := make([]string, 0, len(userIDs))
	seen := make(map[string]bool, len(userIDs))

	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		data, found := pc.cache.Get(profileKeyPrefix + id)
		if !found {
			missing = append(missing, id)
			continue
		}
		entry, ok := data.(cachedProfile)
		if !ok {
			missing = append(missing, id)
			continue
		}
		if entry.found {
			profiles[id] = entry.profile
		}
	}

	metrics.CacheHits.WithLabelValues(profileCacheName).Add(float64(len(seen) - len(missing)))
	if len(missing) == 0 {
		return profiles, nil
	}
	metrics.CacheMisses.WithLabelValues(profileCacheName).Add(float64(len(missing)))

	fetched, err := pc.source.GetPublicProfiles(ctx, missing)
	if err != nil {
		return nil, err
	}

	for _, id := range missing {
		p, ok := fetched[id]
		pc.cache.Set(profileKeyPrefix+id, cachedProfile{profile: p, found: ok}, pc.ttl)
		if ok {
			profiles[id] = p
		}
	}
	metrics.CacheSize.WithLabelValues(profileCacheName).Set(float64(pc.cache.ItemCount()))

	logger.Debug("Profile cache filled",
		zap.Int("requested", len(seen)),
		zap.Int("fetched", len(missing)))

	return profiles, nil
}

// Invalidate drops a user's cached profile
func (pc *ProfileCache) Invalidate(userID string) {
	pc.cache.Delete(profileKeyPrefix + userID)
}
