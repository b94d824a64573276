package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Defaults applied at creation when the organizer leaves these fields empty.
var (
	DefaultHighlights  = []string{"Default", "Highlight"}
	DefaultSpeaker     = "Default Speaker"
	DefaultSessionType = "Default Type"
)

// Session belongs to exactly one conference and is read-only once created
// as far as the registration engine is concerned: wishlists reference it
// by ID only.
type Session struct {
	ID           uuid.UUID
	ConferenceID uuid.UUID
	Version      int
	Name         string
	Highlights   []string
	Speaker      string
	DurationMins int
	SessionType  string
	Date         *time.Time
	StartTime    *time.Time
}

// ApplyCreationDefaults fills the optional fields. Only valid on a session
// that has never been persisted.
func (s *Session) ApplyCreationDefaults() {
	if len(s.Highlights) == 0 {
		s.Highlights = append([]string(nil), DefaultHighlights...)
	}
	if s.Speaker == "" {
		s.Speaker = DefaultSpeaker
	}
	if s.SessionType == "" {
		s.SessionType = DefaultSessionType
	}
}

type Repository interface {
	GetSession(ctx context.Context, id uuid.UUID) (Session, error)
	GetSessionsByIDs(ctx context.Context, ids []uuid.UUID) ([]Session, error)
	// Conference-scoped listings are sorted by session name.
	GetSessionsForConference(ctx context.Context, conferenceID uuid.UUID) ([]Session, error)
	GetSessionsForConferenceByType(ctx context.Context, conferenceID uuid.UUID, sessionType string) ([]Session, error)
	GetSessionsForConferenceBySpeaker(ctx context.Context, conferenceID uuid.UUID, speaker string) ([]Session, error)
	// GetSessionsBySpeaker spans all conferences, sorted by session name.
	GetSessionsBySpeaker(ctx context.Context, speaker string) ([]Session, error)
	CreateSession(ctx context.Context, session Session) error
}
