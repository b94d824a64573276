package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/amharF/udacity-ND-P4/registration"
)

func (a *API) registerForConference(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	id, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}

	registered, err := registration.RegisterForConference(r.Context(), p.ID, id, a.db, a.db, a.db)
	if err != nil {
		logger.Error("Error trying to register", "error", err, "conferenceId", id)

		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) {
			switch registrationErr.Reason {
			case registration.REASON_CONFERENCE_DOES_NOT_EXIST:
				a.writeError(w, http.StatusNotFound, NotFound, "Conference to register for was not found")
				return
			case registration.REASON_ALREADY_REGISTERED:
				a.writeError(w, http.StatusConflict, AlreadyExists, "Already registered for this conference")
				return
			case registration.REASON_NO_SEATS_AVAILABLE:
				a.writeError(w, http.StatusConflict, AlreadyExists, "There are no seats available")
				return
			}
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to register")
		return
	}

	a.refreshAnnouncementAsync(r.Context())

	a.writeJSON(w, http.StatusOK, BooleanResult{Success: registered})
}

func (a *API) unregisterFromConference(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	id, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}

	unregistered, err := registration.UnregisterFromConference(r.Context(), p.ID, id, a.db, a.db, a.db)
	if err != nil {
		logger.Error("Error trying to unregister", "error", err, "conferenceId", id)

		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_CONFERENCE_DOES_NOT_EXIST {
			a.writeError(w, http.StatusNotFound, NotFound, "Conference to unregister from was not found")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to unregister")
		return
	}

	if unregistered {
		a.refreshAnnouncementAsync(r.Context())
	}

	a.writeJSON(w, http.StatusOK, BooleanResult{Success: unregistered})
}

// refreshAnnouncementAsync recomputes the nearly-sold-out announcement off
// the request path. Seat counts just changed; the cache is best effort, so
// a failure here only gets logged.
func (a *API) refreshAnnouncementAsync(ctx context.Context) {
	refreshCtx := context.WithoutCancel(ctx)
	go func() {
		_, err := a.refresher.RefreshAnnouncement(refreshCtx)
		a.refresher.LogRefreshFailure(refreshCtx, "announcement", err)
	}()
}
