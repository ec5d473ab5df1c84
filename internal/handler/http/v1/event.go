package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new event
// @Description Create a dispatch event (race, rally). Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body CreateEventRequest true "Event creation request"
// @Success 201 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events [post]
func (h *Handler) createEvent(c *gin.Context) {
	log := h.logger.WithField("method", "createEvent")

	var input CreateEventRequest
	if !h.bind(c, log, &input) {
		return
	}

	event := DTOToEventModel(input)
	if err := h.eventService.CreateEvent(c.Request.Context(), event); err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusCreated, "event", ModelToEventResponse(event))
}

// @Summary List events
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} EventResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	log := h.logger.WithField("method", "listEvents")

	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "events", ModelsToEventResponses(events))
}

// @Summary Get event by ID
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{eventID} [get]
func (h *Handler) getEvent(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getEvent").WithField("event_id", eventID)

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "event", ModelToEventResponse(event))
}

// @Summary Update an event
// @Description Partial update of name and start time. Activity is changed by the toggle endpoint. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param event body UpdateEventRequest true "Event update request"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{eventID} [put]
func (h *Handler) updateEvent(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateEvent").WithField("event_id", eventID)

	var input UpdateEventRequest
	if !h.bind(c, log, &input) {
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), eventID, DTOToEventPatch(input))
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "event", ModelToEventResponse(event))
}

// @Summary Delete an event
// @Description Deletes the event with its callsigns, incidents and message log. Hub clients of the event are disconnected. Requires API key.
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} map[string]string "Status success"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{eventID} [delete]
func (h *Handler) deleteEvent(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteEvent").WithField("event_id", eventID)

	if err := h.eventService.DeleteEvent(c.Request.Context(), eventID); err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "", nil)
}

// @Summary Toggle event activity
// @Description Activate or deactivate an event. Deactivation disconnects hub clients of the event. Requires API key.
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{eventID}/toggle [post]
func (h *Handler) toggleEvent(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "toggleEvent").WithField("event_id", eventID)

	event, err := h.eventService.ToggleEvent(c.Request.Context(), eventID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "event", ModelToEventResponse(event))
}

// @Summary Register a callsign
// @Tags Callsigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param callsign body CreateCallsignRequest true "Callsign"
// @Success 201 {object} CallsignResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 409 {object} ErrorResponse "Callsign code already registered"
// @Router /events/{eventID}/callsigns [post]
func (h *Handler) createCallsign(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "createCallsign").WithField("event_id", eventID)

	var input CreateCallsignRequest
	if !h.bind(c, log, &input) {
		return
	}

	cs := DTOToCallsignModel(eventID, input)
	if err := h.eventService.CreateCallsign(c.Request.Context(), cs); err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusCreated, "callsign", ModelToCallsignResponse(cs))
}

// @Summary List callsigns of an event
// @Tags Callsigns
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Success 200 {array} CallsignResponse
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{eventID}/callsigns [get]
func (h *Handler) listCallsigns(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listCallsigns").WithField("event_id", eventID)

	callsigns, err := h.eventService.ListCallsigns(c.Request.Context(), eventID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "callsigns", ModelsToCallsignResponses(callsigns))
}

// @Summary Update a callsign
// @Description Partial update. Existing assignments keep the code and name they were created with.
// @Tags Callsigns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param callsignID path int true "Callsign ID"
// @Param callsign body UpdateCallsignRequest true "Callsign update request"
// @Success 200 {object} CallsignResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Callsign not found"
// @Failure 409 {object} ErrorResponse "Callsign code already registered"
// @Router /events/{eventID}/callsigns/{callsignID} [put]
func (h *Handler) updateCallsign(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	callsignID, ok := pathID(c, "callsignID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateCallsign").WithField("callsign_id", callsignID)

	var input UpdateCallsignRequest
	if !h.bind(c, log, &input) {
		return
	}

	cs, err := h.eventService.UpdateCallsign(c.Request.Context(), eventID, callsignID, DTOToCallsignPatch(input))
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "callsign", ModelToCallsignResponse(cs))
}

// @Summary Delete a callsign
// @Tags Callsigns
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param callsignID path int true "Callsign ID"
// @Success 200 {object} map[string]string "Status success"
// @Failure 404 {object} ErrorResponse "Callsign not found"
// @Router /events/{eventID}/callsigns/{callsignID} [delete]
func (h *Handler) deleteCallsign(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	callsignID, ok := pathID(c, "callsignID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteCallsign").WithField("callsign_id", callsignID)

	if err := h.eventService.DeleteCallsign(c.Request.Context(), eventID, callsignID); err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "", nil)
}
