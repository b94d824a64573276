package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notFoundProfileDB() *mockDB {
	return &mockDB{
		GetProfileFunc: func(ctx context.Context, id string) (profiles.Profile, error) {
			return profiles.Profile{}, &profiles.Error{Reason: profiles.REASON_PROFILE_DOES_NOT_EXIST}
		},
	}
}

func TestRegisterForConference(t *testing.T) {
	conferenceID := uuid.New()

	t.Run("requires auth", func(t *testing.T) {
		a := newTestAPI(&mockDB{})

		req := httptest.NewRequest(http.MethodPost, "/conferences/"+conferenceID.String()+"/registration", nil)
		rec := doRequest(a, req, false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("conference not found", func(t *testing.T) {
		db := notFoundProfileDB()
		db.GetConferenceFunc = func(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
			return conferences.Conference{}, conferences.NewConferenceDoesNotExistError("nope", nil)
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPost, "/conferences/"+conferenceID.String()+"/registration", nil)
		rec := doRequest(a, req, true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no seats is a conflict", func(t *testing.T) {
		db := notFoundProfileDB()
		db.GetConferenceFunc = func(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
			return conferences.Conference{ID: conferenceID, Version: 1, SeatsAvailable: 0}, nil
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPost, "/conferences/"+conferenceID.String()+"/registration", nil)
		rec := doRequest(a, req, true)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("already registered is a conflict", func(t *testing.T) {
		profile := profiles.NewDefault("user-1")
		profile.Version = 1
		profile.AddConference(conferenceID)

		db := &mockDB{
			GetProfileFunc: func(ctx context.Context, id string) (profiles.Profile, error) {
				return profile, nil
			},
			GetConferenceFunc: func(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
				return conferences.Conference{ID: conferenceID, Version: 1, SeatsAvailable: 5}, nil
			},
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPost, "/conferences/"+conferenceID.String()+"/registration", nil)
		rec := doRequest(a, req, true)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		saved := false
		db := notFoundProfileDB()
		db.GetConferenceFunc = func(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
			return conferences.Conference{ID: conferenceID, Version: 1, SeatsAvailable: 5}, nil
		}
		db.SaveAttendanceFunc = func(ctx context.Context, profile profiles.Profile, conference conferences.Conference) error {
			saved = true
			assert.Equal(t, 4, conference.SeatsAvailable)
			return nil
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPost, "/conferences/"+conferenceID.String()+"/registration", nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, saved)

		var body BooleanResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
	})
}

func TestUnregisterFromConference(t *testing.T) {
	conferenceID := uuid.New()

	t.Run("not registered returns success false", func(t *testing.T) {
		db := notFoundProfileDB()
		db.GetConferenceFunc = func(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
			return conferences.Conference{ID: conferenceID, Version: 1, SeatsAvailable: 5}, nil
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodDelete, "/conferences/"+conferenceID.String()+"/registration", nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var body BooleanResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
	})

	t.Run("registered releases the seat", func(t *testing.T) {
		profile := profiles.NewDefault("user-1")
		profile.Version = 1
		profile.AddConference(conferenceID)

		db := &mockDB{
			GetProfileFunc: func(ctx context.Context, id string) (profiles.Profile, error) {
				return profile, nil
			},
			GetConferenceFunc: func(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
				return conferences.Conference{ID: conferenceID, Version: 2, SeatsAvailable: 4}, nil
			},
			SaveAttendanceFunc: func(ctx context.Context, profile profiles.Profile, conference conferences.Conference) error {
				assert.Equal(t, 5, conference.SeatsAvailable)
				return nil
			},
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodDelete, "/conferences/"+conferenceID.String()+"/registration", nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var body BooleanResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
	})
}

func TestWishlist(t *testing.T) {
	sessionID := uuid.New()

	t.Run("add missing session is a 404", func(t *testing.T) {
		db := notFoundProfileDB()
		db.GetSessionFunc = func(ctx context.Context, id uuid.UUID) (sessions.Session, error) {
			return sessions.Session{}, sessions.NewSessionDoesNotExistError("nope", nil)
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPost, "/profile/wishlist/"+sessionID.String(), nil)
		rec := doRequest(a, req, true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate add is a conflict", func(t *testing.T) {
		profile := profiles.NewDefault("user-1")
		profile.Version = 1
		profile.AddToWishlist(sessionID)

		db := &mockDB{
			GetProfileFunc: func(ctx context.Context, id string) (profiles.Profile, error) {
				return profile, nil
			},
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPost, "/profile/wishlist/"+sessionID.String(), nil)
		rec := doRequest(a, req, true)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("add success", func(t *testing.T) {
		saved := false
		db := notFoundProfileDB()
		db.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			saved = true
			assert.True(t, profile.HasWishlisted(sessionID))
			return nil
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPost, "/profile/wishlist/"+sessionID.String(), nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, saved)
	})

	t.Run("listing with no profile is an empty list", func(t *testing.T) {
		a := newTestAPI(notFoundProfileDB())

		req := httptest.NewRequest(http.MethodGet, "/profile/wishlist", nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("listing returns the wishlisted sessions", func(t *testing.T) {
		profile := profiles.NewDefault("user-1")
		profile.Version = 1
		profile.AddToWishlist(sessionID)

		db := &mockDB{
			GetProfileFunc: func(ctx context.Context, id string) (profiles.Profile, error) {
				return profile, nil
			},
			GetSessionsByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]sessions.Session, error) {
				assert.Equal(t, []uuid.UUID{sessionID}, ids)
				return []sessions.Session{{ID: sessionID, Name: "Intro to Go"}}, nil
			},
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodGet, "/profile/wishlist", nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var body []Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "Intro to Go", body[0].Name)
	})

	t.Run("remove absent session is success false", func(t *testing.T) {
		db := notFoundProfileDB()
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodDelete, "/profile/wishlist/"+sessionID.String(), nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var body BooleanResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
	})
}
