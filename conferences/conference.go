package conferences

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Defaults applied at creation when the organizer leaves these fields empty.
var (
	DefaultCity   = "Default City"
	DefaultTopics = []string{"Default", "Topic"}
)

type Conference struct {
	ID             uuid.UUID
	Version        int
	OrganizerID    string
	Name           string
	Description    string
	Topics         []string
	City           string
	StartDate      *time.Time
	EndDate        *time.Time
	Month          int
	MaxAttendees   int
	SeatsAvailable int
}

// ApplyCreationDefaults fills the optional fields, derives the month from
// the start date, and seeds the seat counter from the max attendee count.
// Only valid on a conference that has never been persisted.
func (c *Conference) ApplyCreationDefaults() {
	if c.City == "" {
		c.City = DefaultCity
	}
	if len(c.Topics) == 0 {
		c.Topics = append([]string(nil), DefaultTopics...)
	}
	if c.MaxAttendees > 0 {
		c.SeatsAvailable = c.MaxAttendees
	}
	c.Month = MonthOf(c.StartDate)
}

// MonthOf returns the calendar month of a start date, or 0 when unset.
// The month is always derived, never set directly.
func MonthOf(startDate *time.Time) int {
	if startDate == nil {
		return 0
	}
	return int(startDate.Month())
}

type GetConferencesResponse struct {
	Data        []Conference
	Cursor      *string
	HasNextPage bool
}

type Repository interface {
	GetConference(ctx context.Context, id uuid.UUID) (Conference, error)
	GetConferences(ctx context.Context, limit int32, cursor *string) (GetConferencesResponse, error)
	GetConferencesByIDs(ctx context.Context, ids []uuid.UUID) ([]Conference, error)
	GetConferencesByOrganizer(ctx context.Context, organizerID string) ([]Conference, error)
	QueryConferences(ctx context.Context, query QueryDescriptor) ([]Conference, error)
	CreateConference(ctx context.Context, conference Conference) error
	UpdateConference(ctx context.Context, conference Conference) error
}
