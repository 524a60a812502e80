package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
)

const (
	availabilityPrefix = "availability:"
	versionPrefix      = "availability-version:"

	versionTTL = 48 * time.Hour
)

var errStaleVersion = errors.New("availability version changed")

type multiGetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

// AvailabilityRedisCache keeps computed slot lists for a short TTL. Every
// failure is logged and treated as a miss.
type AvailabilityRedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewAvailabilityRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *AvailabilityRedisCache {
	return &AvailabilityRedisCache{client: client, ttl: ttl, log: log}
}

func availabilityKey(barberID uint, date string, serviceID uint) string {
	return fmt.Sprintf("%s%d:%s:%d", availabilityPrefix, barberID, date, serviceID)
}

func dayPattern(barberID uint, date string) string {
	return fmt.Sprintf("%s%d:%s:*", availabilityPrefix, barberID, date)
}

func barberPattern(barberID uint) string {
	return fmt.Sprintf("%s%d:*", availabilityPrefix, barberID)
}

// versionKeys holds the barber-wide and the per-day counters. Both move the
// token returned by Version.
func versionKeys(barberID uint, date string) []string {
	return []string{
		fmt.Sprintf("%s%d", versionPrefix, barberID),
		fmt.Sprintf("%s%d:%s", versionPrefix, barberID, date),
	}
}

func readVersion(ctx context.Context, r multiGetter, keys []string) (string, error) {
	vals, err := r.MGet(ctx, keys...).Result()
	if err != nil {
		return "", err
	}

	parts := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			parts[i] = s
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, "."), nil
}

func (c *AvailabilityRedisCache) Get(ctx context.Context, barberID uint, date string, serviceID uint) ([]string, bool) {
	key := availabilityKey(barberID, date, serviceID)

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("availability cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(val), &slots); err != nil {
		c.log.Warn("availability cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityRedisCache) Version(ctx context.Context, barberID uint, date string) string {
	v, err := readVersion(ctx, c.client, versionKeys(barberID, date))
	if err != nil {
		c.log.Warn("availability version read failed", zap.Uint("barber_id", barberID), zap.Error(err))
		return ""
	}
	return v
}

// Set writes under WATCH on the version counters: an invalidation landing
// between Version and Set aborts the write.
func (c *AvailabilityRedisCache) Set(ctx context.Context, barberID uint, date string, serviceID uint, version string, slots []string) {
	if version == "" {
		return
	}

	key := availabilityKey(barberID, date, serviceID)
	keys := versionKeys(barberID, date)

	data, err := json.Marshal(slots)
	if err != nil {
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, keys)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleVersion
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, keys...)

	switch {
	case err == nil:
	case errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("availability cache set skipped, day invalidated", zap.String("key", key))
	default:
		c.log.Warn("availability cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *AvailabilityRedisCache) InvalidateDay(ctx context.Context, barberID uint, date string) {
	c.bump(ctx, versionKeys(barberID, date)[1])
	c.deleteMatching(ctx, dayPattern(barberID, date))
}

func (c *AvailabilityRedisCache) InvalidateBarber(ctx context.Context, barberID uint) {
	c.bump(ctx, versionKeys(barberID, "")[0])
	c.deleteMatching(ctx, barberPattern(barberID))
}

func (c *AvailabilityRedisCache) bump(ctx context.Context, versionKey string) {
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		return nil
	})
	if err != nil {
		c.log.Warn("availability version bump failed", zap.String("key", versionKey), zap.Error(err))
	}
}

func (c *AvailabilityRedisCache) deleteMatching(ctx context.Context, pattern string) {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("availability cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("availability cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

var _ domain.AvailabilityCache = (*AvailabilityRedisCache)(nil)
