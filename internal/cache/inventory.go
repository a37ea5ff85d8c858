package cache

import (
	"context"
	"fmt"
	"time"
)

// Key prefixes and TTLs for cached entities. Caching is limited to
// anonymous read paths; any mutation invalidates the affected keys.
const (
	PinKeyPrefix     = "pin:%d"
	ProfileKeyPrefix = "profile:%s"
	PinsListKey      = "pins:list"

	PinTTL     = 2 * time.Minute
	ProfileTTL = 5 * time.Minute
)

// PinKey returns the cache key for a pin detail.
func PinKey(pinID uint) string {
	return fmt.Sprintf(PinKeyPrefix, pinID)
}

// ProfileKey returns the cache key for a profile by slug.
func ProfileKey(slug string) string {
	return fmt.Sprintf(ProfileKeyPrefix, slug)
}

// Invalidate deletes a key, ignoring errors; a stale miss is acceptable.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}

// InvalidatePin drops the cached detail for one pin and the pins listing.
func InvalidatePin(ctx context.Context, pinID uint) {
	Invalidate(ctx, PinKey(pinID))
	Invalidate(ctx, PinsListKey)
}

// InvalidateProfile drops the cached profile for a slug.
func InvalidateProfile(ctx context.Context, slug string) {
	Invalidate(ctx, ProfileKey(slug))
}
