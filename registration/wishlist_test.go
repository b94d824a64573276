package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockSessionRepository struct {
	sessions.Repository
	GetSessionFunc func(ctx context.Context, id uuid.UUID) (sessions.Session, error)
}

func (m *mockSessionRepository) GetSession(ctx context.Context, id uuid.UUID) (sessions.Session, error) {
	return m.GetSessionFunc(ctx, id)
}

func existingSessionRepo(session sessions.Session) *mockSessionRepository {
	return &mockSessionRepository{
		GetSessionFunc: func(ctx context.Context, id uuid.UUID) (sessions.Session, error) {
			return session, nil
		},
	}
}

func TestAddSessionToWishlist(t *testing.T) {
	t.Run("session does not exist", func(t *testing.T) {
		sessionRepo := &mockSessionRepository{
			GetSessionFunc: func(ctx context.Context, id uuid.UUID) (sessions.Session, error) {
				return sessions.Session{}, &sessions.Error{Reason: sessions.REASON_SESSION_DOES_NOT_EXIST}
			},
		}

		_, err := AddSessionToWishlist(context.Background(), "user-1", uuid.New(),
			missingProfileRepo(), sessionRepo)
		assert.Error(t, err)
		var registrationErr *Error
		assert.True(t, errors.As(err, &registrationErr))
		assert.Equal(t, REASON_SESSION_DOES_NOT_EXIST, registrationErr.Reason)
	})

	t.Run("duplicate add is a conflict", func(t *testing.T) {
		sessionID := uuid.New()
		profile := profiles.NewDefault("user-1")
		profile.Version = 1
		profile.AddToWishlist(sessionID)

		_, err := AddSessionToWishlist(context.Background(), "user-1", sessionID,
			existingProfileRepo(profile), existingSessionRepo(sessions.Session{ID: sessionID}))
		assert.Error(t, err)
		var registrationErr *Error
		assert.True(t, errors.As(err, &registrationErr))
		assert.Equal(t, REASON_SESSION_ALREADY_IN_WISHLIST, registrationErr.Reason)
	})

	t.Run("success persists the profile with a bumped version", func(t *testing.T) {
		sessionID := uuid.New()
		profileRepo := missingProfileRepo()
		profileRepo.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			assert.Equal(t, 1, profile.Version)
			assert.True(t, profile.HasWishlisted(sessionID))
			return nil
		}

		added, err := AddSessionToWishlist(context.Background(), "user-1", sessionID,
			profileRepo, existingSessionRepo(sessions.Session{ID: sessionID}))
		assert.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("retries on write conflict", func(t *testing.T) {
		sessionID := uuid.New()
		attempts := 0
		profileRepo := missingProfileRepo()
		profileRepo.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			attempts++
			if attempts == 1 {
				return &profiles.Error{Reason: profiles.REASON_WRITE_CONFLICT}
			}
			return nil
		}

		added, err := AddSessionToWishlist(context.Background(), "user-1", sessionID,
			profileRepo, existingSessionRepo(sessions.Session{ID: sessionID}))
		assert.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 2, attempts)
	})
}

func TestRemoveSessionFromWishlist(t *testing.T) {
	t.Run("absent session in wishlist is a benign no-op", func(t *testing.T) {
		sessionID := uuid.New()
		profileRepo := missingProfileRepo()
		profileRepo.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			t.Fatal("nothing should be written when the session is not wishlisted")
			return nil
		}

		removed, err := RemoveSessionFromWishlist(context.Background(), "user-1", sessionID,
			profileRepo, existingSessionRepo(sessions.Session{ID: sessionID}))
		assert.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("session does not exist", func(t *testing.T) {
		sessionRepo := &mockSessionRepository{
			GetSessionFunc: func(ctx context.Context, id uuid.UUID) (sessions.Session, error) {
				return sessions.Session{}, &sessions.Error{Reason: sessions.REASON_SESSION_DOES_NOT_EXIST}
			},
		}

		_, err := RemoveSessionFromWishlist(context.Background(), "user-1", uuid.New(),
			missingProfileRepo(), sessionRepo)
		assert.Error(t, err)
		var registrationErr *Error
		assert.True(t, errors.As(err, &registrationErr))
		assert.Equal(t, REASON_SESSION_DOES_NOT_EXIST, registrationErr.Reason)
	})

	t.Run("success removes the session", func(t *testing.T) {
		sessionID := uuid.New()
		profile := profiles.NewDefault("user-1")
		profile.Version = 3
		profile.AddToWishlist(sessionID)

		profileRepo := existingProfileRepo(profile)
		profileRepo.SaveProfileFunc = func(ctx context.Context, profile profiles.Profile) error {
			assert.Equal(t, 4, profile.Version)
			assert.False(t, profile.HasWishlisted(sessionID))
			return nil
		}

		removed, err := RemoveSessionFromWishlist(context.Background(), "user-1", sessionID,
			profileRepo, existingSessionRepo(sessions.Session{ID: sessionID}))
		assert.NoError(t, err)
		assert.True(t, removed)
	})
}
