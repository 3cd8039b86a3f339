package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/niyati34/college-meme-page/internal/observability"
)

// GetJSON reads the value at key and unmarshals it into dest.
// Returns false when the cache is unavailable, the key is absent,
// or the stored value cannot be decoded.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Poisoned entry, drop it so the next fill rewrites it.
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals value and stores it at key with the given TTL.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// Aside implements the cache-aside pattern: read dest from the cache, or run
// fill to populate it and write the result back. fill must populate dest.
// Cache unavailability degrades to calling fill directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	group := keyGroup(key)
	if GetJSON(ctx, key, dest) {
		observability.RecordCacheLookup(group, true)
		return nil
	}
	observability.RecordCacheLookup(group, false)
	if err := fill(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}

func keyGroup(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
