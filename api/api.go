// Package api is the HTTP surface: thin handlers that decode requests,
// call the domain packages, and map reason-coded errors to status codes.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/amharF/udacity-ND-P4/cache"
	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/registration"
	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/go-chi/chi/v5"
)

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

func ParseEnvironment(s string) Environment {
	if strings.EqualFold(s, "prod") {
		return PROD
	}
	return LOCAL
}

type DB interface {
	conferences.Repository
	profiles.Repository
	sessions.Repository
	registration.Repository
	cache.Cache
}

type API struct {
	db          DB
	logger      *slog.Logger
	env         Environment
	emailSender email.Sender
	refresher   *cache.Refresher
	fromAddress string
}

func NewAPI(
	db DB,
	logger *slog.Logger,
	env Environment,
	emailSender email.Sender,
	refresher *cache.Refresher,
	fromAddress string,
) *API {
	return &API{
		db:          db,
		logger:      logger,
		env:         env,
		emailSender: emailSender,
		refresher:   refresher,
		fromAddress: fromAddress,
	}
}

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(a.requestIDMiddleware, a.tracingMiddleware, a.loggingMiddleware, a.corsMiddleware())

	r.Get("/conferences", a.getConferences)
	r.Post("/conferences/query", a.queryConferences)
	r.Get("/conferences/{conferenceID}", a.getConference)
	r.Get("/conferences/{conferenceID}/sessions", a.getConferenceSessions)
	r.Get("/conferences/{conferenceID}/sessions/type/{sessionType}", a.getConferenceSessionsByType)
	r.Get("/conferences/{conferenceID}/sessions/speaker/{speaker}", a.getConferenceSessionsBySpeaker)
	r.Get("/sessions/speaker/{speaker}", a.getSessionsBySpeaker)
	r.Get("/announcement", a.getAnnouncement)
	r.Get("/featured-speaker", a.getFeaturedSpeaker)

	r.Group(func(r chi.Router) {
		r.Use(a.authMiddleware)

		r.Post("/conferences", a.createConference)
		r.Get("/conferences/created", a.getConferencesCreated)
		r.Get("/conferences/attending", a.getConferencesToAttend)
		r.Put("/conferences/{conferenceID}", a.updateConference)
		r.Post("/conferences/{conferenceID}/registration", a.registerForConference)
		r.Delete("/conferences/{conferenceID}/registration", a.unregisterFromConference)
		r.Post("/conferences/{conferenceID}/sessions", a.createSession)
		r.Get("/profile", a.getProfile)
		r.Put("/profile", a.saveProfile)
		r.Get("/profile/wishlist", a.getWishlist)
		r.Post("/profile/wishlist/{sessionID}", a.addToWishlist)
		r.Delete("/profile/wishlist/{sessionID}", a.removeFromWishlist)
	})

	return r
}
