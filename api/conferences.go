package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (a *API) createConference(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	var body Conference
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Warn("Invalid body for conference creation", "error", err)
		a.writeError(w, http.StatusBadRequest, InvalidBody, "Must specify a valid JSON body")
		return
	}
	if body.Name == "" {
		a.writeError(w, http.StatusBadRequest, NameRequired, "Conference 'name' field required")
		return
	}

	conf := apiConferenceToConference(body)
	conf.ID = uuid.New()
	conf.Version = 1
	conf.OrganizerID = p.ID
	conf.ApplyCreationDefaults()

	if err := a.db.CreateConference(r.Context(), conf); err != nil {
		logger.Error("Failed to create conference", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to create the conference")
		return
	}

	if p.Email != "" {
		emailCtx := context.WithoutCancel(r.Context())
		go func() {
			err := conferences.SendCreationConfirmationEmail(emailCtx, a.emailSender, a.fromAddress, p.Email, conf)
			if err != nil {
				a.logger.Error("Failed to send conference creation email", "error", err, "conferenceId", conf.ID)
			}
		}()
	}

	a.writeJSON(w, http.StatusOK, conferenceToApiConference(conf))
}

func (a *API) updateConference(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	id, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}

	var body Conference
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Warn("Invalid body for conference update", "error", err)
		a.writeError(w, http.StatusBadRequest, InvalidBody, "Must specify a valid JSON body")
		return
	}

	conf, err := a.db.GetConference(r.Context(), id)
	if err != nil {
		logger.Error("Failed to fetch conference for update", "error", err, "conferenceId", id)

		var confErr *conferences.Error
		if errors.As(err, &confErr) && confErr.Reason == conferences.REASON_CONFERENCE_DOES_NOT_EXIST {
			a.writeError(w, http.StatusNotFound, NotFound, "Conference does not exist")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to update the conference")
		return
	}

	if conf.OrganizerID != p.ID {
		a.writeError(w, http.StatusForbidden, Forbidden, "Only the conference organizer can update it")
		return
	}

	// Only fields present in the request change. The month tracks the
	// start date; seat counts belong to the registration engine and are
	// never writable here.
	if body.Name != "" {
		conf.Name = body.Name
	}
	if body.Description != nil {
		conf.Description = *body.Description
	}
	if body.City != nil {
		conf.City = *body.City
	}
	if body.Topics != nil {
		conf.Topics = body.Topics
	}
	if body.StartDate != nil {
		conf.StartDate = body.StartDate
		conf.Month = conferences.MonthOf(body.StartDate)
	}
	if body.EndDate != nil {
		conf.EndDate = body.EndDate
	}
	if body.MaxAttendees != nil {
		conf.MaxAttendees = *body.MaxAttendees
	}
	conf.Version++

	if err := a.db.UpdateConference(r.Context(), conf); err != nil {
		logger.Error("Failed to update conference", "error", err, "conferenceId", id)

		var confErr *conferences.Error
		if errors.As(err, &confErr) && confErr.Reason == conferences.REASON_WRITE_CONFLICT {
			a.writeError(w, http.StatusConflict, AlreadyExists, "Conference was updated concurrently, try again")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to update the conference")
		return
	}

	a.writeJSON(w, http.StatusOK, conferenceToApiConference(conf))
}

func (a *API) getConference(w http.ResponseWriter, r *http.Request) {
	id, ok := a.conferenceIDFromRequest(w, r)
	if !ok {
		return
	}

	conf, err := a.db.GetConference(r.Context(), id)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to fetch conference", "error", err, "conferenceId", id)

		var confErr *conferences.Error
		if errors.As(err, &confErr) && confErr.Reason == conferences.REASON_CONFERENCE_DOES_NOT_EXIST {
			a.writeError(w, http.StatusNotFound, NotFound, "Conference does not exist")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get conference")
		return
	}

	a.writeJSON(w, http.StatusOK, conferenceToApiConference(conf))
}

func (a *API) getConferences(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())

	limit := 10
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		userLimit, err := strconv.Atoi(limitParam)
		if err != nil || userLimit < 1 || userLimit > 50 {
			logger.Warn("Limit out of bounds", "limit", limitParam)
			a.writeError(w, http.StatusBadRequest, LimitOutOfBounds, "Limit must be between 1 and 50")
			return
		}
		limit = userLimit
	}

	var cursor *string
	if cursorParam := r.URL.Query().Get("cursor"); cursorParam != "" {
		cursor = &cursorParam
	}

	result, err := a.db.GetConferences(r.Context(), int32(limit), cursor)
	if err != nil {
		logger.Error("Failed to get conferences from the DB", "error", err)

		var confErr *conferences.Error
		if errors.As(err, &confErr) && confErr.Reason == conferences.REASON_INVALID_CURSOR {
			a.writeError(w, http.StatusBadRequest, InvalidCursor, "Passed in cursor is invalid")
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get conferences")
		return
	}

	a.writeJSON(w, http.StatusOK, GetConferencesResponse{
		Data:        conferencesToApiConferences(result.Data),
		Cursor:      result.Cursor,
		HasNextPage: result.HasNextPage,
	})
}

func (a *API) getConferencesCreated(w http.ResponseWriter, r *http.Request) {
	p := getPrincipalFromCtx(r.Context())

	confs, err := a.db.GetConferencesByOrganizer(r.Context(), p.ID)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to get conferences by organizer", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get created conferences")
		return
	}

	a.writeJSON(w, http.StatusOK, conferencesToApiConferences(confs))
}

func (a *API) getConferencesToAttend(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())
	p := getPrincipalFromCtx(r.Context())

	profile, err := a.db.GetProfile(r.Context(), p.ID)
	if err != nil {
		var profErr *profiles.Error
		if errors.As(err, &profErr) && profErr.Reason == profiles.REASON_PROFILE_DOES_NOT_EXIST {
			// Never registered for anything.
			a.writeJSON(w, http.StatusOK, []Conference{})
			return
		}
		logger.Error("Failed to get profile", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get conferences to attend")
		return
	}

	confs, err := a.db.GetConferencesByIDs(r.Context(), profile.ConferencesToAttend)
	if err != nil {
		logger.Error("Failed to get conferences by IDs", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get conferences to attend")
		return
	}

	a.writeJSON(w, http.StatusOK, conferencesToApiConferences(confs))
}

func (a *API) queryConferences(w http.ResponseWriter, r *http.Request) {
	logger := getLoggerFromCtx(r.Context())

	var body QueryConferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Warn("Invalid body for conference query", "error", err)
		a.writeError(w, http.StatusBadRequest, InvalidBody, "Must specify a valid JSON body")
		return
	}

	query, err := conferences.CompileQuery(apiFiltersToRawFilters(body.Filters))
	if err != nil {
		logger.Warn("Failed to compile conference query", "error", err)

		var confErr *conferences.Error
		if errors.As(err, &confErr) && confErr.Reason == conferences.REASON_INVALID_FILTER {
			a.writeError(w, http.StatusBadRequest, InvalidFilter, confErr.Message)
			return
		}
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to query conferences")
		return
	}

	confs, err := a.db.QueryConferences(r.Context(), query)
	if err != nil {
		logger.Error("Failed to query conferences", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to query conferences")
		return
	}

	a.writeJSON(w, http.StatusOK, conferencesToApiConferences(confs))
}

func (a *API) conferenceIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "conferenceID"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, InvalidID, "Conference ID must be a valid UUID")
		return uuid.UUID{}, false
	}
	return id, true
}
