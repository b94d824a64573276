// Package registration is the inventory-consistent registration engine:
// conference attendance and session wishlists. It is the only writer of a
// conference's seat counter and of a profile's membership sets.
package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/google/uuid"
)

// Repository persists the outcome of a registration decision.
type Repository interface {
	// SaveAttendance writes the profile and the conference as one atomic
	// unit, each write conditional on the record's version being exactly
	// one behind. If either condition fails nothing is written and a
	// WRITE_CONFLICT error comes back.
	SaveAttendance(ctx context.Context, profile profiles.Profile, conference conferences.Conference) error
}

// How many times an operation re-reads and retries after losing a version
// race before giving up. Retries are invisible to the caller.
const maxWriteAttempts = 3

// RegisterForConference reserves a seat: it adds the conference to the
// profile's membership set and decrements the seat counter, atomically
// across both records. The profile is created with defaults on first
// touch. Duplicate registration and a sold-out conference are both
// conflicts, not no-ops.
func RegisterForConference(
	ctx context.Context,
	profileID string,
	conferenceID uuid.UUID,
	profileRepo profiles.Repository,
	conferenceRepo conferences.Repository,
	repo Repository,
) (bool, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		profile, err := getOrDefaultProfile(ctx, profileID, profileRepo)
		if err != nil {
			return false, err
		}

		conference, err := getConference(ctx, conferenceID, conferenceRepo)
		if err != nil {
			return false, err
		}

		if profile.IsAttending(conferenceID) {
			return false, NewAlreadyRegisteredError(
				fmt.Sprintf("Profile %q has already registered for conference %q", profileID, conferenceID))
		}
		if conference.SeatsAvailable <= 0 {
			return false, NewNoSeatsAvailableError(
				fmt.Sprintf("There are no seats available for conference %q", conferenceID))
		}

		profile.AddConference(conferenceID)
		conference.SeatsAvailable--
		profile.Version++
		conference.Version++

		err = repo.SaveAttendance(ctx, profile, conference)
		if err == nil {
			return true, nil
		}
		if !isWriteConflict(err) {
			return false, NewFailedToWriteError("Failed to save registration", err)
		}
		// Lost the version race to a concurrent writer; re-read and retry.
	}

	return false, NewFailedToWriteError(
		fmt.Sprintf("Gave up registering for conference %q after %d write conflicts", conferenceID, maxWriteAttempts), nil)
}

// UnregisterFromConference releases a seat. Unlike register, unregistering
// when not a member is a benign no-op that returns false; this asymmetry
// is deliberate and load-bearing for callers.
func UnregisterFromConference(
	ctx context.Context,
	profileID string,
	conferenceID uuid.UUID,
	profileRepo profiles.Repository,
	conferenceRepo conferences.Repository,
	repo Repository,
) (bool, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		profile, err := getOrDefaultProfile(ctx, profileID, profileRepo)
		if err != nil {
			return false, err
		}

		conference, err := getConference(ctx, conferenceID, conferenceRepo)
		if err != nil {
			return false, err
		}

		if !profile.IsAttending(conferenceID) {
			return false, nil
		}

		profile.RemoveConference(conferenceID)
		conference.SeatsAvailable++
		profile.Version++
		conference.Version++

		err = repo.SaveAttendance(ctx, profile, conference)
		if err == nil {
			return true, nil
		}
		if !isWriteConflict(err) {
			return false, NewFailedToWriteError("Failed to save unregistration", err)
		}
	}

	return false, NewFailedToWriteError(
		fmt.Sprintf("Gave up unregistering from conference %q after %d write conflicts", conferenceID, maxWriteAttempts), nil)
}

func getConference(ctx context.Context, conferenceID uuid.UUID, conferenceRepo conferences.Repository) (conferences.Conference, error) {
	conference, err := conferenceRepo.GetConference(ctx, conferenceID)
	if err != nil {
		var confErr *conferences.Error
		if errors.As(err, &confErr) && confErr.Reason == conferences.REASON_CONFERENCE_DOES_NOT_EXIST {
			return conferences.Conference{}, NewConferenceDoesNotExistError(
				fmt.Sprintf("No conference found with ID %q", conferenceID), err)
		}
		return conferences.Conference{}, NewFailedToFetchError(
			fmt.Sprintf("Failed to fetch conference with ID %q", conferenceID), err)
	}
	return conference, nil
}

// getOrDefaultProfile implements lazy profile creation: a missing profile
// is a fresh default, not an error. It is only persisted if the operation
// goes on to mutate it.
func getOrDefaultProfile(ctx context.Context, profileID string, profileRepo profiles.Repository) (profiles.Profile, error) {
	profile, err := profileRepo.GetProfile(ctx, profileID)
	if err != nil {
		var profErr *profiles.Error
		if errors.As(err, &profErr) && profErr.Reason == profiles.REASON_PROFILE_DOES_NOT_EXIST {
			return profiles.NewDefault(profileID), nil
		}
		return profiles.Profile{}, NewFailedToFetchError(
			fmt.Sprintf("Failed to fetch profile with ID %q", profileID), err)
	}
	return profile, nil
}

func isWriteConflict(err error) bool {
	var regErr *Error
	if errors.As(err, &regErr) && regErr.Reason == REASON_WRITE_CONFLICT {
		return true
	}
	var profErr *profiles.Error
	return errors.As(err, &profErr) && profErr.Reason == profiles.REASON_WRITE_CONFLICT
}
