package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_dispatch/internal/models"
)

//go:generate mockgen -source=location.go -destination=mocks/location_mock.go -package=mocks

// LocationReader - последние известные местоположения позывных (трекер хаба)
type LocationReader interface {
	Latest(ctx context.Context, eventID, callsignID int64) (*models.Message, bool, error)
	AllLatest(ctx context.Context, eventID int64) ([]*models.Message, error)
}

// @Summary Last known locations of all callsigns
// @Tags Locations
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Success 200 {array} LocationResponse
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{eventID}/locations [get]
func (h *Handler) listLocations(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listLocations").WithField("event_id", eventID)

	messages, err := h.locations.AllLatest(c.Request.Context(), eventID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "locations", MessagesToLocationResponses(messages))
}

// @Summary Last known location of a callsign
// @Tags Locations
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param callsignID path int true "Callsign ID"
// @Success 200 {object} LocationResponse
// @Failure 404 {object} ErrorResponse "Callsign not found or no location reported yet"
// @Router /events/{eventID}/locations/{callsignID} [get]
func (h *Handler) getLocation(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	callsignID, ok := pathID(c, "callsignID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getLocation").WithField("callsign_id", callsignID)

	msg, found, err := h.locations.Latest(c.Request.Context(), eventID, callsignID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	if !found {
		failure(c, http.StatusNotFound, "no location reported for callsign")
		return
	}
	success(c, http.StatusOK, "location", MessageToLocationResponse(msg))
}
