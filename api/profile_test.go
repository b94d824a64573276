package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	t.Run("requires auth", func(t *testing.T) {
		a := newTestAPI(&mockDB{})

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		rec := doRequest(a, req, false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("first touch returns a default without persisting", func(t *testing.T) {
		db := notFoundProfileDB()
		db.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			t.Fatal("a default profile must not be persisted")
			return nil
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var body Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body.ID)
		assert.Equal(t, "user-1@example.com", body.Email)
		assert.Equal(t, "NOT_SPECIFIED", body.TeeShirtSize)
	})

	t.Run("returns the stored profile", func(t *testing.T) {
		stored := profiles.NewDefault("user-1")
		stored.Version = 2
		stored.DisplayName = "Gopher"
		db := &mockDB{
			GetProfileFunc: func(ctx context.Context, id string) (profiles.Profile, error) {
				return stored, nil
			},
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var body Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Gopher", body.DisplayName)
	})
}

func TestSaveProfile(t *testing.T) {
	t.Run("rejects an unknown tee shirt size", func(t *testing.T) {
		a := newTestAPI(&mockDB{})

		req := httptest.NewRequest(http.MethodPut, "/profile",
			strings.NewReader(`{"teeShirtSize":"XXS"}`))
		rec := doRequest(a, req, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Unknown tee shirt size", body.Message)
	})

	t.Run("first save creates the profile", func(t *testing.T) {
		var saved profiles.Profile
		db := notFoundProfileDB()
		db.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			saved = profile
			return nil
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPut, "/profile",
			strings.NewReader(`{"displayName":"Gopher","teeShirtSize":"XL"}`))
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", saved.ID)
		assert.Equal(t, "Gopher", saved.DisplayName)
		assert.Equal(t, "user-1@example.com", saved.Email)
		assert.Equal(t, "XL", saved.TeeShirtSize.String())
		assert.Equal(t, 1, saved.Version)
	})

	t.Run("updates only the provided fields", func(t *testing.T) {
		stored := profiles.NewDefault("user-1")
		stored.Version = 1
		stored.DisplayName = "Gopher"
		size, _ := profiles.ParseTeeShirtSize("M")
		stored.TeeShirtSize = size

		var saved profiles.Profile
		db := &mockDB{
			GetProfileFunc: func(ctx context.Context, id string) (profiles.Profile, error) {
				return stored, nil
			},
			SaveProfileFunc: func(ctx context.Context, profile profiles.Profile) error {
				saved = profile
				return nil
			},
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPut, "/profile",
			strings.NewReader(`{"displayName":"New Name"}`))
		rec := doRequest(a, req, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "New Name", saved.DisplayName)
		assert.Equal(t, "M", saved.TeeShirtSize.String())
		assert.Equal(t, 2, saved.Version)
	})

	t.Run("write conflict is a 409", func(t *testing.T) {
		db := notFoundProfileDB()
		db.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			return &profiles.Error{Reason: profiles.REASON_WRITE_CONFLICT}
		}
		a := newTestAPI(db)

		req := httptest.NewRequest(http.MethodPut, "/profile",
			strings.NewReader(`{"displayName":"Gopher"}`))
		rec := doRequest(a, req, true)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
