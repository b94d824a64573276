package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(id string) profiles.Profile {
	return profiles.Profile{
		ID:                  id,
		Version:             1,
		DisplayName:         "Test User",
		Email:               "test@example.com",
		TeeShirtSize:        profiles.L,
		ConferencesToAttend: []uuid.UUID{uuid.New()},
		SessionWishlist:     []uuid.UUID{uuid.New(), uuid.New()},
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	ctx := context.Background()
	resetTable(ctx)

	profile := testProfile("user-1")
	require.NoError(t, db.SaveProfile(ctx, profile))

	got, err := db.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestGetProfileNotFound(t *testing.T) {
	ctx := context.Background()
	resetTable(ctx)

	_, err := db.GetProfile(ctx, "nobody")
	assert.Error(t, err)
	var profErr *profiles.Error
	assert.True(t, errors.As(err, &profErr))
	assert.Equal(t, profiles.REASON_PROFILE_DOES_NOT_EXIST, profErr.Reason)
}

func TestSaveProfileVersioning(t *testing.T) {
	ctx := context.Background()
	resetTable(ctx)

	profile := testProfile("user-1")
	require.NoError(t, db.SaveProfile(ctx, profile))

	t.Run("next version succeeds", func(t *testing.T) {
		updated := profile
		updated.DisplayName = "Renamed User"
		updated.Version = 2

		require.NoError(t, db.SaveProfile(ctx, updated))

		got, err := db.GetProfile(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed User", got.DisplayName)
	})

	t.Run("stale version is a write conflict", func(t *testing.T) {
		stale := profile
		stale.Version = 2 // stored version is already 2

		err := db.SaveProfile(ctx, stale)
		assert.Error(t, err)
		var profErr *profiles.Error
		assert.True(t, errors.As(err, &profErr))
		assert.Equal(t, profiles.REASON_WRITE_CONFLICT, profErr.Reason)
	})
}
