package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"

	"github.com/mvgboard/mvgboard/pkg/departures"
	"github.com/mvgboard/mvgboard/pkg/redis_client"
)

const resultCacheExpiration = 90 * time.Second

// resultStore keeps the most recently delivered result per identifier in
// redis, replaced wholesale on every fetch cycle like the results
// themselves.
type resultStore struct {
	cache *cache.Cache[string]
}

// SetupResultStore wires the latest-result cache when redis is configured.
// Without redis the dispatcher simply skips caching.
func (d *Dispatcher) SetupResultStore() {
	if redis_client.Client == nil {
		log.Info().Msg("Redis not configured, skipping result cache")
		return
	}

	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(resultCacheExpiration))

	d.resultStore = &resultStore{
		cache: cache.New[string](redisStore),
	}
}

// CachedResult returns the last delivered result for an identifier, if one
// is still in the cache.
func (d *Dispatcher) CachedResult(ctx context.Context, identifier string) (*departures.Result, bool) {
	if d.resultStore == nil {
		return nil, false
	}

	resultJSON, err := d.resultStore.cache.Get(ctx, resultCacheKey(identifier))
	if err != nil {
		return nil, false
	}

	var result departures.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		log.Error().Err(err).Str("identifier", identifier).Msg("Failed to decode cached result")
		return nil, false
	}

	return &result, true
}

func (s *resultStore) Put(result departures.Result) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Str("identifier", result.Identifier).Msg("Failed to encode result for cache")
		return
	}

	err = s.cache.Set(context.Background(), resultCacheKey(result.Identifier), string(resultJSON))
	if err != nil {
		log.Error().Err(err).Str("identifier", result.Identifier).Msg("Failed to cache result")
	}
}

func resultCacheKey(identifier string) string {
	return fmt.Sprintf("board_result:%s", identifier)
}
