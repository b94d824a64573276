package cache

import (
	"context"
	"log/slog"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/google/uuid"
)

const conferencePageSize = 100

// Refresher recomputes the two cached summary strings from storage. It is
// invoked after writes that can change them (seat-count changes for the
// announcement, session creation for the featured speaker), never on the
// read path.
type Refresher struct {
	conferenceRepo   conferences.Repository
	sessionRepo      sessions.Repository
	cache            Cache
	logger           *slog.Logger
	lowSeatThreshold int
}

func NewRefresher(
	conferenceRepo conferences.Repository,
	sessionRepo sessions.Repository,
	cache Cache,
	logger *slog.Logger,
	lowSeatThreshold int,
) *Refresher {
	if lowSeatThreshold <= 0 {
		lowSeatThreshold = conferences.DefaultLowSeatThreshold
	}
	return &Refresher{
		conferenceRepo:   conferenceRepo,
		sessionRepo:      sessionRepo,
		cache:            cache,
		logger:           logger,
		lowSeatThreshold: lowSeatThreshold,
	}
}

// RefreshAnnouncement recomputes the nearly-sold-out announcement. An
// empty result clears the cache entry; it is never stored as "".
func (r *Refresher) RefreshAnnouncement(ctx context.Context) (string, error) {
	var all []conferences.Conference
	var cursor *string
	for {
		resp, err := r.conferenceRepo.GetConferences(ctx, conferencePageSize, cursor)
		if err != nil {
			return "", err
		}
		all = append(all, resp.Data...)
		if !resp.HasNextPage || resp.Cursor == nil {
			break
		}
		cursor = resp.Cursor
	}

	announcement := conferences.AnnouncementText(all, r.lowSeatThreshold)
	if announcement == "" {
		if err := r.cache.Delete(ctx, AnnouncementKey); err != nil {
			return "", err
		}
		return "", nil
	}

	if err := r.cache.Set(ctx, AnnouncementKey, announcement); err != nil {
		return "", err
	}
	return announcement, nil
}

// RefreshFeaturedSpeaker recomputes the featured-speaker summary for one
// conference and speaker. A speaker with fewer than two sessions is not
// featured and the previously cached value is left in place.
func (r *Refresher) RefreshFeaturedSpeaker(ctx context.Context, conferenceID uuid.UUID, speaker string) (string, error) {
	speakerSessions, err := r.sessionRepo.GetSessionsForConferenceBySpeaker(ctx, conferenceID, speaker)
	if err != nil {
		return "", err
	}

	featured := sessions.FeaturedSpeakerText(speaker, speakerSessions)
	if featured == "" {
		return "", nil
	}

	if err := r.cache.Set(ctx, FeaturedSpeakerKey, featured); err != nil {
		return "", err
	}
	return featured, nil
}

// LogRefreshFailure is a helper for fire-and-forget refreshes triggered
// from request handlers.
func (r *Refresher) LogRefreshFailure(ctx context.Context, what string, err error) {
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to refresh derived cache", "what", what, "error", err)
	}
}
