package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/google/uuid"
)

// AddSessionToWishlist appends a session to the profile's wishlist.
// Wishlists only touch the profile record, so single-record atomicity
// (the conditional profile put) is enough. Adding a session twice is a
// conflict, mirroring conference registration.
func AddSessionToWishlist(
	ctx context.Context,
	profileID string,
	sessionID uuid.UUID,
	profileRepo profiles.Repository,
	sessionRepo sessions.Repository,
) (bool, error) {
	if _, err := getSession(ctx, sessionID, sessionRepo); err != nil {
		return false, err
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		profile, err := getOrDefaultProfile(ctx, profileID, profileRepo)
		if err != nil {
			return false, err
		}

		if profile.HasWishlisted(sessionID) {
			return false, NewSessionAlreadyInWishlistError(
				fmt.Sprintf("Session %q is already in the wishlist of profile %q", sessionID, profileID))
		}

		profile.AddToWishlist(sessionID)
		profile.Version++

		err = profileRepo.SaveProfile(ctx, profile)
		if err == nil {
			return true, nil
		}
		if !isWriteConflict(err) {
			return false, NewFailedToWriteError("Failed to save wishlist addition", err)
		}
	}

	return false, NewFailedToWriteError(
		fmt.Sprintf("Gave up wishlisting session %q after %d write conflicts", sessionID, maxWriteAttempts), nil)
}

// RemoveSessionFromWishlist removes a session if present. Removing an
// absent session is a benign no-op returning false, symmetric with
// UnregisterFromConference rather than with the add.
func RemoveSessionFromWishlist(
	ctx context.Context,
	profileID string,
	sessionID uuid.UUID,
	profileRepo profiles.Repository,
	sessionRepo sessions.Repository,
) (bool, error) {
	if _, err := getSession(ctx, sessionID, sessionRepo); err != nil {
		return false, err
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		profile, err := getOrDefaultProfile(ctx, profileID, profileRepo)
		if err != nil {
			return false, err
		}

		if !profile.HasWishlisted(sessionID) {
			return false, nil
		}

		profile.RemoveFromWishlist(sessionID)
		profile.Version++

		err = profileRepo.SaveProfile(ctx, profile)
		if err == nil {
			return true, nil
		}
		if !isWriteConflict(err) {
			return false, NewFailedToWriteError("Failed to save wishlist removal", err)
		}
	}

	return false, NewFailedToWriteError(
		fmt.Sprintf("Gave up removing session %q from wishlist after %d write conflicts", sessionID, maxWriteAttempts), nil)
}

func getSession(ctx context.Context, sessionID uuid.UUID, sessionRepo sessions.Repository) (sessions.Session, error) {
	session, err := sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		var sessErr *sessions.Error
		if errors.As(err, &sessErr) && sessErr.Reason == sessions.REASON_SESSION_DOES_NOT_EXIST {
			return sessions.Session{}, NewSessionDoesNotExistError(
				fmt.Sprintf("No session found with ID %q", sessionID), err)
		}
		return sessions.Session{}, NewFailedToFetchError(
			fmt.Sprintf("Failed to fetch session with ID %q", sessionID), err)
	}
	return session, nil
}
