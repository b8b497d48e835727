package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// landingCacheTTL/classifyCacheTTL are the same shape as
// weather/service.go's cacheDuration: a single fixed TTL per cached
// shape, not per-entry configurable.
const (
	landingCacheTTL  = 30 * time.Minute
	classifyCacheTTL = 30 * time.Minute
)

// responseCache caches the two pure diagnostics (calc_ball_landing,
// classify_batted_ball_type) behind Redis, keyed by a hash of the
// request body. Grounded on weather/service.go's forecastCache — same
// get-before-compute/set-after-compute shape — but backed by Redis
// instead of an in-process map since this cache serves a shared HTTP
// surface rather than a single in-process weather client.
type responseCache struct {
	client *redis.Client
}

func newResponseCache(addr string) (*responseCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &responseCache{client: client}, nil
}

// disabledCache returns a cache whose client is nil; every get is a miss
// and every set is a no-op, so the diagnostic handlers need no separate
// "is caching enabled" branch.
func disabledCache() *responseCache {
	return &responseCache{}
}

func (c *responseCache) close() {
	if c.client != nil {
		c.client.Close()
	}
}

func cacheKey(prefix string, req interface{}) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(hash[:])
}

func (c *responseCache) getLanding(ctx context.Context, req ballLandingRequest) (ballLandingResponse, bool) {
	var resp ballLandingResponse
	if !c.get(ctx, cacheKey("landing", req), &resp) {
		return ballLandingResponse{}, false
	}
	return resp, true
}

func (c *responseCache) setLanding(ctx context.Context, req ballLandingRequest, resp ballLandingResponse) {
	c.set(ctx, cacheKey("landing", req), resp, landingCacheTTL)
}

func (c *responseCache) getClassify(ctx context.Context, req classifyRequest) (classifyResponse, bool) {
	var resp classifyResponse
	if !c.get(ctx, cacheKey("classify", req), &resp) {
		return classifyResponse{}, false
	}
	return resp, true
}

func (c *responseCache) setClassify(ctx context.Context, req classifyRequest, resp classifyResponse) {
	c.set(ctx, cacheKey("classify", req), resp, classifyCacheTTL)
}

func (c *responseCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *responseCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		// Cache writes are best-effort; a miss on the next lookup just
		// recomputes the diagnostic, exactly as a failed weather API
		// call fell back to defaults rather than failing the request.
		return
	}
}
