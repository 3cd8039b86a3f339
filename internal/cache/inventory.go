package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	MemeKeyPrefix       = "meme:%d"
	CollectionKeyPrefix = "collection:%d"
	memeListVersionKey  = "memes:list:version"
	memeListKeyPrefix   = "memes:list:v%d:%s:p%d:l%d"
)

const (
	UserTTL       = 5 * time.Minute
	MemeTTL       = 30 * time.Minute
	CollectionTTL = 10 * time.Minute
	ListTTL       = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func MemeKey(memeID uint) string {
	return fmt.Sprintf(MemeKeyPrefix, memeID)
}

func CollectionKey(collectionID uint) string {
	return fmt.Sprintf(CollectionKeyPrefix, collectionID)
}

// MemeListKey builds a versioned key for a cached meme list page. The version
// counter lets writers invalidate every cached page with a single INCR instead
// of scanning for keys; stale pages expire via ListTTL.
func MemeListKey(ctx context.Context, filterSig string, page, limit int) string {
	var version int64
	if client != nil {
		if v, err := client.Get(ctx, memeListVersionKey).Int64(); err == nil {
			version = v
		}
	}
	return fmt.Sprintf(memeListKeyPrefix, version, filterSig, page, limit)
}

// BumpMemeListVersion invalidates all cached meme list pages.
func BumpMemeListVersion(ctx context.Context) {
	if client != nil {
		client.Incr(ctx, memeListVersionKey)
	}
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateMeme(ctx context.Context, memeID uint) {
	Invalidate(ctx, MemeKey(memeID))
	BumpMemeListVersion(ctx)
}

func InvalidateCollection(ctx context.Context, collectionID uint) {
	Invalidate(ctx, CollectionKey(collectionID))
}
