package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix       = "profile:%d"
	CommunityKeyPrefix     = "community:%d"
	CommunityListKeyPrefix = "communities:anon:%d:%d"
	PublicProfilesKey      = "profiles:public"
)

const (
	ProfileTTL        = 5 * time.Minute
	CommunityTTL      = 10 * time.Minute
	CommunityListTTL  = 1 * time.Minute
	PublicProfilesTTL = 5 * time.Minute
)

func ProfileKey(profileID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, profileID)
}

func CommunityKey(communityID uint) string {
	return fmt.Sprintf(CommunityKeyPrefix, communityID)
}

// CommunityListLimits are the only page sizes cached for the anonymous
// listing. Keeping the set enumerable lets invalidation delete exact keys.
var CommunityListLimits = []int{10, 20, 50}

// CommunityListKey caches the anonymous community listing for one limit/offset page.
// Authenticated listings are personalized and never cached.
func CommunityListKey(limit, offset int) string {
	return fmt.Sprintf(CommunityListKeyPrefix, limit, offset)
}

// CommunityListCacheable reports whether a page size participates in the
// listing cache at all.
func CommunityListCacheable(limit int) bool {
	for _, l := range CommunityListLimits {
		if l == limit {
			return true
		}
	}
	return false
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, profileID uint) {
	Invalidate(ctx, ProfileKey(profileID))
	Invalidate(ctx, PublicProfilesKey)
}

func InvalidateCommunity(ctx context.Context, communityID uint) {
	Invalidate(ctx, CommunityKey(communityID))
	InvalidateCommunityList(ctx)
}

// InvalidateCommunityList drops the cached anonymous listing pages.
// Only the first page per allowed limit is cached, so the key set is enumerable.
func InvalidateCommunityList(ctx context.Context) {
	if client == nil {
		return
	}
	for _, limit := range CommunityListLimits {
		client.Del(ctx, CommunityListKey(limit, 0))
	}
}
