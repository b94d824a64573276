package profiles

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// Profile is a user's stored profile. The ID is the opaque principal
// identifier supplied by the identity layer; profiles are created lazily
// the first time one is needed and are never deleted.
//
// ConferencesToAttend and SessionWishlist are membership sets: unordered,
// duplicate-free. The registration engine is their only writer.
type Profile struct {
	ID                  string
	Version             int
	DisplayName         string
	Email               string
	TeeShirtSize        TeeShirtSize
	ConferencesToAttend []uuid.UUID
	SessionWishlist     []uuid.UUID
}

// NewDefault is the profile a first-time user gets before they have
// saved anything. Version 0 marks it as never persisted.
func NewDefault(id string) Profile {
	return Profile{
		ID:           id,
		TeeShirtSize: NOT_SPECIFIED,
	}
}

func (p Profile) IsAttending(conferenceID uuid.UUID) bool {
	return slices.Contains(p.ConferencesToAttend, conferenceID)
}

func (p *Profile) AddConference(conferenceID uuid.UUID) {
	if p.IsAttending(conferenceID) {
		return
	}
	p.ConferencesToAttend = append(p.ConferencesToAttend, conferenceID)
}

func (p *Profile) RemoveConference(conferenceID uuid.UUID) {
	p.ConferencesToAttend = slices.DeleteFunc(p.ConferencesToAttend, func(id uuid.UUID) bool {
		return id == conferenceID
	})
}

func (p Profile) HasWishlisted(sessionID uuid.UUID) bool {
	return slices.Contains(p.SessionWishlist, sessionID)
}

func (p *Profile) AddToWishlist(sessionID uuid.UUID) {
	if p.HasWishlisted(sessionID) {
		return
	}
	p.SessionWishlist = append(p.SessionWishlist, sessionID)
}

func (p *Profile) RemoveFromWishlist(sessionID uuid.UUID) {
	p.SessionWishlist = slices.DeleteFunc(p.SessionWishlist, func(id uuid.UUID) bool {
		return id == sessionID
	})
}

type Repository interface {
	GetProfile(ctx context.Context, id string) (Profile, error)
	// SaveProfile writes the profile conditionally on its version: the
	// write only commits if the stored version is exactly one behind, so
	// concurrent writers cannot clobber each other. A version mismatch
	// surfaces as a WRITE_CONFLICT error.
	SaveProfile(ctx context.Context, profile Profile) error
}
