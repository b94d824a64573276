package api

import (
	"errors"
	"net/http"

	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/registration"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (a *API) addToWishlist(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	sessionID, ok := a.sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	added, err := registration.AddSessionToWishlist(r.Context(), p.ID, sessionID, a.db, a.db)
	if err != nil {
		logger.Error("Error adding session to wishlist", "error", err, "sessionId", sessionID)

		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) {
			switch registrationErr.Reason {
			case registration.REASON_SESSION_DOES_NOT_EXIST:
				a.writeError(w, http.StatusNotFound, NotFound, "Session to wishlist was not found")
				return
			case registration.REASON_SESSION_ALREADY_IN_WISHLIST:
				a.writeError(w, http.StatusConflict, AlreadyExists, "Session is already in the wishlist")
				return
			}
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to add session to wishlist")
		return
	}

	a.writeJSON(w, http.StatusOK, BooleanResult{Success: added})
}

func (a *API) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	sessionID, ok := a.sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	removed, err := registration.RemoveSessionFromWishlist(r.Context(), p.ID, sessionID, a.db, a.db)
	if err != nil {
		logger.Error("Error removing session from wishlist", "error", err, "sessionId", sessionID)

		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_SESSION_DOES_NOT_EXIST {
			a.writeError(w, http.StatusNotFound, NotFound, "Session to remove was not found")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to remove session from wishlist")
		return
	}

	a.writeJSON(w, http.StatusOK, BooleanResult{Success: removed})
}

func (a *API) getWishlist(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	profile, err := a.db.GetProfile(r.Context(), p.ID)
	if err != nil {
		var profErr *profiles.Error
		if errors.As(err, &profErr) && profErr.Reason == profiles.REASON_PROFILE_DOES_NOT_EXIST {
			a.writeJSON(w, http.StatusOK, []Session{})
			return
		}
		logger.Error("Failed to get profile for wishlist", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get wishlist")
		return
	}

	sess, err := a.db.GetSessionsByIDs(r.Context(), profile.SessionWishlist)
	if err != nil {
		logger.Error("Failed to get wishlisted sessions", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get wishlist")
		return
	}

	a.writeJSON(w, http.StatusOK, sessionsToApiSessions(sess))
}

func (a *API) sessionIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, InvalidID, "Session ID must be a valid UUID")
		return uuid.UUID{}, false
	}
	return id, true
}
