// Package cache holds the derived-cache contract and the refresher that
// recomputes the cached summaries from current inventory state.
package cache

import "context"

// Fixed keys for the two derived values.
const (
	AnnouncementKey    = "RECENT_ANNOUNCEMENTS"
	FeaturedSpeakerKey = "FEATURED_SPEAKER"
)

// Cache is the key-value collaborator the refresher writes through.
type Cache interface {
	Set(ctx context.Context, key string, value string) error
	// Get's second return is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
