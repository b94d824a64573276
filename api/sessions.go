package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	conferenceID, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}

	var body Session
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Warn("Invalid body for session creation", "error", err)
		a.writeError(w, http.StatusBadRequest, InvalidBody, "Must specify a valid JSON body")
		return
	}
	if body.Name == "" {
		a.writeError(w, http.StatusBadRequest, NameRequired, "Session 'name' field required")
		return
	}

	conf, err := a.db.GetConference(r.Context(), conferenceID)
	if err != nil {
		logger.Error("Failed to fetch conference for session creation", "error", err, "conferenceId", conferenceID)

		var confErr *conferences.Error
		if errors.As(err, &confErr) && confErr.Reason == conferences.REASON_CONFERENCE_DOES_NOT_EXIST {
			a.writeError(w, http.StatusNotFound, NotFound, "Conference does not exist")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to create the session")
		return
	}

	if conf.OrganizerID != p.ID {
		a.writeError(w, http.StatusForbidden, Forbidden, "Only the conference organizer can add sessions")
		return
	}

	speakerGiven := body.Speaker != nil && *body.Speaker != ""

	session := apiSessionToSession(body)
	session.ID = uuid.New()
	session.Version = 1
	session.ConferenceID = conferenceID
	session.ApplyCreationDefaults()

	if err := a.db.CreateSession(r.Context(), session); err != nil {
		logger.Error("Failed to create session", "error", err, "conferenceId", conferenceID)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to create the session")
		return
	}

	// A named speaker may now have enough sessions here to be featured.
	if speakerGiven {
		refreshCtx := context.WithoutCancel(r.Context())
		go func() {
			_, err := a.refresher.RefreshFeaturedSpeaker(refreshCtx, conferenceID, session.Speaker)
			a.refresher.LogRefreshFailure(refreshCtx, "featured speaker", err)
		}()
	}

	a.writeJSON(w, http.StatusOK, sessionToApiSession(session))
}

func (a *API) getConferenceSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}

	sess, err := a.db.GetSessionsForConference(r.Context(), conferenceID)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to get sessions for conference", "error", err, "conferenceId", conferenceID)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get sessions")
		return
	}

	a.writeJSON(w, http.StatusOK, sessionsToApiSessions(sess))
}

func (a *API) getConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}
	sessionType := chi.URLParam(r, "sessionType")

	sess, err := a.db.GetSessionsForConferenceByType(r.Context(), conferenceID, sessionType)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to get sessions by type", "error", err, "conferenceId", conferenceID)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get sessions")
		return
	}

	a.writeJSON(w, http.StatusOK, sessionsToApiSessions(sess))
}

func (a *API) getConferenceSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}
	speaker := chi.URLParam(r, "speaker")

	sess, err := a.db.GetSessionsForConferenceBySpeaker(r.Context(), conferenceID, speaker)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to get sessions by speaker", "error", err, "conferenceId", conferenceID)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get sessions")
		return
	}

	a.writeJSON(w, http.StatusOK, sessionsToApiSessions(sess))
}

func (a *API) getSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := chi.URLParam(r, "speaker")

	sess, err := a.db.GetSessionsBySpeaker(r.Context(), speaker)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to get sessions by speaker", "error", err, "speaker", speaker)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get sessions")
		return
	}

	a.writeJSON(w, http.StatusOK, sessionsToApiSessions(sess))
}
