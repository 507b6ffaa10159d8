package forecastcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

// ValkeyCache stores serialized forecasts in a Valkey-compatible database.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "solunar"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// Get implements solunar.Cache.
func (c *ValkeyCache) Get(ctx context.Context, key string) (solunar.Result, bool, error) {
	cmd := c.client.B().Get().Key(c.entryKey(key)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return solunar.Result{}, false, nil
		}
		return solunar.Result{}, false, err
	}
	var result solunar.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return solunar.Result{}, false, err
	}
	return result, true, nil
}

// Set caches the result with optional TTL.
func (c *ValkeyCache) Set(ctx context.Context, key string, result solunar.Result, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) entryKey(key string) string {
	return fmt.Sprintf("%s:forecast:%s", c.prefix, key)
}

var _ solunar.Cache = (*ValkeyCache)(nil)
