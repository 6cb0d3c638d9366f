package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/D-z-V/oppia/pkg/cache"
	"github.com/D-z-V/oppia/pkg/logging"
)

const (
	redisTTL = 24 * time.Hour
	localTTL = 10 * time.Minute

	// Negative results are cached briefly so untranslatable content does
	// not hit the backend on every page load.
	localNegativeTTL = time.Minute
)

// Cache is a two-tier machine translation cache: Redis when configured,
// always backed by an in-process TTL cache. A nil Redis client degrades to
// the in-process tier only.
type Cache struct {
	translator Translator
	redis      *redis.Client
	local      *cache.Cache
	logger     logging.Logger
}

func NewCache(translator Translator, rdb *redis.Client, logger logging.Logger) *Cache {
	return &Cache{
		translator: translator,
		redis:      rdb,
		local: cache.New(cache.Options{
			TTL:         localTTL,
			NegativeTTL: localNegativeTTL,
			MaxEntries:  4096,
		}),
		logger: logger,
	}
}

// cacheKey hashes the source text so arbitrarily long content stays within
// key size limits.
func cacheKey(text, targetLanguageCode string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("mt:%s:%s", targetLanguageCode, hex.EncodeToString(sum[:16]))
}

// Get returns the machine translation for text in the target language, or
// nil when the text cannot be translated. Redis failures are logged and
// degrade to the in-process tier.
func (c *Cache) Get(ctx context.Context, text, targetLanguageCode string) (*string, error) {
	key := cacheKey(text, targetLanguageCode)

	if c.redis != nil {
		val, err := c.redis.Get(ctx, key).Result()
		if err == nil {
			return &val, nil
		}
		if err != redis.Nil {
			c.logger.WithError(err).Warn("Redis translation cache read failed")
		}
	}

	val, ok, err := c.local.Get(ctx, key, func(ctx context.Context, _ string) (interface{}, bool, error) {
		out, err := c.translator.Translate(ctx, text, targetLanguageCode)
		if errors.Is(err, ErrNotTranslatable) {
			return nil, false, ErrNotTranslatable
		}
		if err != nil {
			return nil, false, fmt.Errorf("machine translation failed: %w", err)
		}
		return out, true, nil
	})
	if errors.Is(err, ErrNotTranslatable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	translated := val.(string)
	if c.redis != nil {
		if err := c.redis.Set(ctx, key, translated, redisTTL).Err(); err != nil {
			c.logger.WithError(err).Warn("Redis translation cache write failed")
		}
	}
	return &translated, nil
}
