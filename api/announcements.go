package api

import (
	"net/http"

	"github.com/amharF/udacity-ND-P4/cache"
)

// Reads come straight from the cache; the refresher is the only writer.
// An absent announcement entry means nothing is nearly sold out.
func (a *API) getAnnouncement(w http.ResponseWriter, r *http.Request) {
	value, _, err := a.db.Get(r.Context(), cache.AnnouncementKey)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to read announcement from cache", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get announcement")
		return
	}

	a.writeJSON(w, http.StatusOK, AnnouncementResponse{Announcement: value})
}

func (a *API) getFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	value, found, err := a.db.Get(r.Context(), cache.FeaturedSpeakerKey)
	if err != nil {
		getLoggerFromCtx(r.Context()).Error("Failed to read featured speaker from cache", "error", err)
		a.writeError(w, http.StatusInternalServerError, InternalError, "Failed to get featured speaker")
		return
	}
	if !found {
		value = "no featured speaker to return"
	}

	a.writeJSON(w, http.StatusOK, FeaturedSpeakerResponse{FeaturedSpeaker: value})
}
