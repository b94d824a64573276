package api

import (
	"time"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/ptr"
	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Conference struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	OrganizerID    string     `json:"organizerId,omitempty"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	Topics         []string   `json:"topics,omitempty"`
	City           *string    `json:"city,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Month          int        `json:"month"`
	MaxAttendees   *int       `json:"maxAttendees,omitempty"`
	SeatsAvailable int        `json:"seatsAvailable"`
}

type GetConferencesResponse struct {
	Data        []Conference `json:"data"`
	Cursor      *string      `json:"cursor,omitempty"`
	HasNextPage bool         `json:"hasNextPage"`
}

type Session struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	ConferenceID uuid.UUID  `json:"conferenceId"`
	Name         string     `json:"name"`
	Highlights   []string   `json:"highlights,omitempty"`
	Speaker      *string    `json:"speaker,omitempty"`
	DurationMins *int       `json:"durationMins,omitempty"`
	SessionType  *string    `json:"sessionType,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	StartTime    *time.Time `json:"startTime,omitempty"`
}

type Profile struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Email        string `json:"email,omitempty"`
	TeeShirtSize string `json:"teeShirtSize"`
}

type SaveProfileRequest struct {
	DisplayName  *string `json:"displayName,omitempty"`
	TeeShirtSize *string `json:"teeShirtSize,omitempty"`
}

type QueryFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type QueryConferencesRequest struct {
	Filters []QueryFilter `json:"filters"`
}

// BooleanResult is the reply for operations whose outcome is a yes/no,
// like unregistering from a conference you never joined.
type BooleanResult struct {
	Success bool `json:"success"`
}

type AnnouncementResponse struct {
	Announcement string `json:"announcement"`
}

type FeaturedSpeakerResponse struct {
	FeaturedSpeaker string `json:"featuredSpeaker"`
}

func conferenceToApiConference(conf conferences.Conference) Conference {
	id := conf.ID
	return Conference{
		ID:             &id,
		OrganizerID:    conf.OrganizerID,
		Name:           conf.Name,
		Description:    ptr.String(conf.Description),
		Topics:         conf.Topics,
		City:           ptr.String(conf.City),
		StartDate:      conf.StartDate,
		EndDate:        conf.EndDate,
		Month:          conf.Month,
		MaxAttendees:   ptr.Int(conf.MaxAttendees),
		SeatsAvailable: conf.SeatsAvailable,
	}
}

func apiConferenceToConference(conf Conference) conferences.Conference {
	out := conferences.Conference{
		Name:      conf.Name,
		Topics:    conf.Topics,
		StartDate: conf.StartDate,
		EndDate:   conf.EndDate,
	}
	if conf.Description != nil {
		out.Description = *conf.Description
	}
	if conf.City != nil {
		out.City = *conf.City
	}
	if conf.MaxAttendees != nil {
		out.MaxAttendees = *conf.MaxAttendees
	}
	return out
}

func conferencesToApiConferences(confs []conferences.Conference) []Conference {
	return lo.Map(confs, func(c conferences.Conference, _ int) Conference {
		return conferenceToApiConference(c)
	})
}

func sessionToApiSession(session sessions.Session) Session {
	id := session.ID
	return Session{
		ID:           &id,
		ConferenceID: session.ConferenceID,
		Name:         session.Name,
		Highlights:   session.Highlights,
		Speaker:      ptr.String(session.Speaker),
		DurationMins: ptr.Int(session.DurationMins),
		SessionType:  ptr.String(session.SessionType),
		Date:         session.Date,
		StartTime:    session.StartTime,
	}
}

func apiSessionToSession(session Session) sessions.Session {
	out := sessions.Session{
		Name:       session.Name,
		Highlights: session.Highlights,
		Date:       session.Date,
		StartTime:  session.StartTime,
	}
	if session.Speaker != nil {
		out.Speaker = *session.Speaker
	}
	if session.DurationMins != nil {
		out.DurationMins = *session.DurationMins
	}
	if session.SessionType != nil {
		out.SessionType = *session.SessionType
	}
	return out
}

func sessionsToApiSessions(sess []sessions.Session) []Session {
	return lo.Map(sess, func(s sessions.Session, _ int) Session {
		return sessionToApiSession(s)
	})
}

func profileToApiProfile(profile profiles.Profile) Profile {
	return Profile{
		ID:           profile.ID,
		DisplayName:  profile.DisplayName,
		Email:        profile.Email,
		TeeShirtSize: profile.TeeShirtSize.String(),
	}
}

func apiFiltersToRawFilters(filters []QueryFilter) []conferences.RawFilter {
	return lo.Map(filters, func(f QueryFilter, _ int) conferences.RawFilter {
		return conferences.RawFilter{Field: f.Field, Operator: f.Operator, Value: f.Value}
	})
}
