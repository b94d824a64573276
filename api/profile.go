package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amharF/udacity-ND-P4/profiles"
)

func (a *API) getProfile(w http.ResponseWriter, r *http.Request) {
	p := getPrincipalFromCtx(r.Context())

	profile, err := a.db.GetProfile(r.Context(), p.ID)
	if err != nil {
		var profErr *profiles.Error
		if errors.As(err, &profErr) && profErr.Reason == profiles.REASON_PROFILE_DOES_NOT_EXIST {
			// First touch: hand back a default without persisting it.
			// The profile is only written once the user saves something.
			defaultProfile := profiles.NewDefault(p.ID)
			defaultProfile.Email = p.Email
			a.writeJSON(w, http.StatusOK, profileToApiProfile(defaultProfile))
			return
		}
		getLoggerFromCtx(r.Context()).Error("Failed to get profile", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get profile")
		return
	}

	a.writeJSON(w, http.StatusOK, profileToApiProfile(profile))
}

func (a *API) saveProfile(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	var body SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Warn("Invalid body for profile save", "error", err)
		a.writeError(w, http.StatusBadRequest, InvalidBody, "Must specify a valid JSON body")
		return
	}

	var teeShirtSize *profiles.TeeShirtSize
	if body.TeeShirtSize != nil {
		size, ok := profiles.ParseTeeShirtSize(*body.TeeShirtSize)
		if !ok {
			a.writeError(w, http.StatusBadRequest, InvalidBody, "Unknown tee shirt size")
			return
		}
		teeShirtSize = &size
	}

	profile, err := a.db.GetProfile(r.Context(), p.ID)
	if err != nil {
		var profErr *profiles.Error
		if errors.As(err, &profErr) && profErr.Reason == profiles.REASON_PROFILE_DOES_NOT_EXIST {
			profile = profiles.NewDefault(p.ID)
		} else {
			logger.Error("Failed to get profile for save", "error", err)
			a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to save profile")
			return
		}
	}

	if body.DisplayName != nil {
		profile.DisplayName = *body.DisplayName
	}
	if teeShirtSize != nil {
		profile.TeeShirtSize = *teeShirtSize
	}
	profile.Email = p.Email
	profile.Version++

	if err := a.db.SaveProfile(r.Context(), profile); err != nil {
		logger.Error("Failed to save profile", "error", err)

		var profErr *profiles.Error
		if errors.As(err, &profErr) && profErr.Reason == profiles.REASON_WRITE_CONFLICT {
			a.writeError(w, http.StatusConflict, AlreadyExists, "Profile was updated concurrently, try again")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to save profile")
		return
	}

	a.writeJSON(w, http.StatusOK, profileToApiProfile(profile))
}
