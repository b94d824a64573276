package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/amharF/udacity-ND-P4/cache"
	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/google/uuid"
)

var _ DB = &mockDB{}

// mockDB fakes every repository the API depends on. Funcs left nil fall
// back to harmless empty results so handlers under test only need the
// calls they exercise.
type mockDB struct {
	GetConferenceFunc             func(ctx context.Context, id uuid.UUID) (conferences.Conference, error)
	GetConferencesFunc            func(ctx context.Context, limit int32, cursor *string) (conferences.GetConferencesResponse, error)
	GetConferencesByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]conferences.Conference, error)
	GetConferencesByOrganizerFunc func(ctx context.Context, organizerID string) ([]conferences.Conference, error)
	QueryConferencesFunc          func(ctx context.Context, query conferences.QueryDescriptor) ([]conferences.Conference, error)
	CreateConferenceFunc          func(ctx context.Context, conference conferences.Conference) error
	UpdateConferenceFunc          func(ctx context.Context, conference conferences.Conference) error

	GetProfileFunc  func(ctx context.Context, id string) (profiles.Profile, error)
	SaveProfileFunc func(ctx context.Context, profile profiles.Profile) error

	GetSessionFunc                        func(ctx context.Context, id uuid.UUID) (sessions.Session, error)
	GetSessionsByIDsFunc                  func(ctx context.Context, ids []uuid.UUID) ([]sessions.Session, error)
	GetSessionsForConferenceFunc          func(ctx context.Context, conferenceID uuid.UUID) ([]sessions.Session, error)
	GetSessionsForConferenceByTypeFunc    func(ctx context.Context, conferenceID uuid.UUID, sessionType string) ([]sessions.Session, error)
	GetSessionsForConferenceBySpeakerFunc func(ctx context.Context, conferenceID uuid.UUID, speaker string) ([]sessions.Session, error)
	GetSessionsBySpeakerFunc              func(ctx context.Context, speaker string) ([]sessions.Session, error)
	CreateSessionFunc                     func(ctx context.Context, session sessions.Session) error

	SaveAttendanceFunc func(ctx context.Context, profile profiles.Profile, conference conferences.Conference) error

	SetFunc    func(ctx context.Context, key string, value string) error
	GetFunc    func(ctx context.Context, key string) (string, bool, error)
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *mockDB) GetConference(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
	if m.GetConferenceFunc != nil {
		return m.GetConferenceFunc(ctx, id)
	}
	return conferences.Conference{}, nil
}

func (m *mockDB) GetConferences(ctx context.Context, limit int32, cursor *string) (conferences.GetConferencesResponse, error) {
	if m.GetConferencesFunc != nil {
		return m.GetConferencesFunc(ctx, limit, cursor)
	}
	return conferences.GetConferencesResponse{}, nil
}

func (m *mockDB) GetConferencesByIDs(ctx context.Context, ids []uuid.UUID) ([]conferences.Conference, error) {
	if m.GetConferencesByIDsFunc != nil {
		return m.GetConferencesByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockDB) GetConferencesByOrganizer(ctx context.Context, organizerID string) ([]conferences.Conference, error) {
	if m.GetConferencesByOrganizerFunc != nil {
		return m.GetConferencesByOrganizerFunc(ctx, organizerID)
	}
	return nil, nil
}

func (m *mockDB) QueryConferences(ctx context.Context, query conferences.QueryDescriptor) ([]conferences.Conference, error) {
	if m.QueryConferencesFunc != nil {
		return m.QueryConferencesFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockDB) CreateConference(ctx context.Context, conference conferences.Conference) error {
	if m.CreateConferenceFunc != nil {
		return m.CreateConferenceFunc(ctx, conference)
	}
	return nil
}

func (m *mockDB) UpdateConference(ctx context.Context, conference conferences.Conference) error {
	if m.UpdateConferenceFunc != nil {
		return m.UpdateConferenceFunc(ctx, conference)
	}
	return nil
}

func (m *mockDB) GetProfile(ctx context.Context, id string) (profiles.Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, id)
	}
	return profiles.Profile{}, nil
}

func (m *mockDB) SaveProfile(ctx context.Context, profile profiles.Profile) error {
	if m.SaveProfileFunc != nil {
		return m.SaveProfileFunc(ctx, profile)
	}
	return nil
}

func (m *mockDB) GetSession(ctx context.Context, id uuid.UUID) (sessions.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return sessions.Session{}, nil
}

func (m *mockDB) GetSessionsByIDs(ctx context.Context, ids []uuid.UUID) ([]sessions.Session, error) {
	if m.GetSessionsByIDsFunc != nil {
		return m.GetSessionsByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockDB) GetSessionsForConference(ctx context.Context, conferenceID uuid.UUID) ([]sessions.Session, error) {
	if m.GetSessionsForConferenceFunc != nil {
		return m.GetSessionsForConferenceFunc(ctx, conferenceID)
	}
	return nil, nil
}

func (m *mockDB) GetSessionsForConferenceByType(ctx context.Context, conferenceID uuid.UUID, sessionType string) ([]sessions.Session, error) {
	if m.GetSessionsForConferenceByTypeFunc != nil {
		return m.GetSessionsForConferenceByTypeFunc(ctx, conferenceID, sessionType)
	}
	return nil, nil
}

func (m *mockDB) GetSessionsForConferenceBySpeaker(ctx context.Context, conferenceID uuid.UUID, speaker string) ([]sessions.Session, error) {
	if m.GetSessionsForConferenceBySpeakerFunc != nil {
		return m.GetSessionsForConferenceBySpeakerFunc(ctx, conferenceID, speaker)
	}
	return nil, nil
}

func (m *mockDB) GetSessionsBySpeaker(ctx context.Context, speaker string) ([]sessions.Session, error) {
	if m.GetSessionsBySpeakerFunc != nil {
		return m.GetSessionsBySpeakerFunc(ctx, speaker)
	}
	return nil, nil
}

func (m *mockDB) CreateSession(ctx context.Context, session sessions.Session) error {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, session)
	}
	return nil
}

func (m *mockDB) SaveAttendance(ctx context.Context, profile profiles.Profile, conference conferences.Conference) error {
	if m.SaveAttendanceFunc != nil {
		return m.SaveAttendanceFunc(ctx, profile, conference)
	}
	return nil
}

func (m *mockDB) Set(ctx context.Context, key string, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	return nil
}

func (m *mockDB) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", false, nil
}

func (m *mockDB) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

var _ email.Sender = &mockEmailSender{}

type mockEmailSender struct {
	SendEmailFunc func(ctx context.Context, e email.Email) error
}

func (m *mockEmailSender) SendEmail(ctx context.Context, e email.Email) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, e)
	}
	return nil
}

func newTestAPI(db *mockDB) *API {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAPI(db, logger, LOCAL, &mockEmailSender{}, cache.NewRefresher(db, db, db, logger, 0), "noreply@example.com")
}

func doRequest(a *API, req *http.Request, authed bool) *httptest.ResponseRecorder {
	if authed {
		req.Header.Set(userIDHeader, "user-1")
		req.Header.Set(userEmailHeader, "user-1@example.com")
	}
	rec := httptest.NewRecorder()
	a.Routes().ServeHTTP(rec, req)
	return rec
}
