// README: Redis read-through cache in front of the paid geocoding API.
package maps

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carpools/internal/types"
)

const geocodeKeyPrefix = "geocode:"

// CachedGeocoder caches successful lookups in Redis. Cache failures degrade
// to a miss; they never fail the request.
type CachedGeocoder struct {
	inner Geocoder
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedGeocoder(inner Geocoder, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, redis: rdb, ttl: ttl, log: log}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	key := geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(address))

	val, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		if p, ok := decodePoint(val); ok {
			return p, nil
		}
	} else if err != redis.Nil {
		c.log.Warn("geocode cache read failed", zap.Error(err))
	}

	p, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return types.Point{}, err
	}
	if err := c.redis.Set(ctx, key, encodePoint(p), c.ttl).Err(); err != nil {
		c.log.Warn("geocode cache write failed", zap.Error(err))
	}
	return p, nil
}

func encodePoint(p types.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

func decodePoint(s string) (types.Point, bool) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return types.Point{}, false
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	if err1 != nil || err2 != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}
