package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached daily free-slot lists
	availabilityKeyPrefix = "availability:"

	defaultAvailabilityTTL = 5 * time.Minute
)

// AvailabilityCache keeps computed free-slot lists per (doctor, date)
// in Redis so repeated availability queries skip the calendar and
// conflict scan. Every booking mutation for a doctor-day invalidates
// its entry; a cache fault is never fatal, the caller just recomputes.
type AvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewAvailabilityCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = defaultAvailabilityTTL
	}
	return &AvailabilityCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Get returns the cached slot list and whether it was present.
func (c *AvailabilityCache) Get(ctx context.Context, doctorID uuid.UUID, dateKey string) ([]string, bool) {
	raw, err := c.redisClient.Get(ctx, availabilityKey(doctorID, dateKey)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Availability cache read failed for %s/%s: %+v", doctorID, dateKey, err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warnf("Corrupt availability cache entry for %s/%s: %+v", doctorID, dateKey, err)
		return nil, false
	}
	return slots, true
}

// Set stores the slot list with the configured TTL.
func (c *AvailabilityCache) Set(ctx context.Context, doctorID uuid.UUID, dateKey string, slots []string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warnf("Failed to encode availability for %s/%s: %+v", doctorID, dateKey, err)
		return
	}
	if err := c.redisClient.Set(ctx, availabilityKey(doctorID, dateKey), raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Availability cache write failed for %s/%s: %+v", doctorID, dateKey, err)
	}
}

// Invalidate drops the cached entry after a booking mutation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, doctorID uuid.UUID, dateKey string) {
	if err := c.redisClient.Del(ctx, availabilityKey(doctorID, dateKey)).Err(); err != nil {
		c.log.Warnf("Availability cache invalidation failed for %s/%s: %+v", doctorID, dateKey, err)
	}
}

func availabilityKey(doctorID uuid.UUID, dateKey string) string {
	return fmt.Sprintf("%s%s:%s", availabilityKeyPrefix, doctorID, dateKey)
}
