package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// incidentIDs читает eventID и incidentID из пути
func incidentIDs(c *gin.Context) (eventID, incidentID int64, ok bool) {
	if eventID, ok = pathID(c, "eventID"); !ok {
		return 0, 0, false
	}
	if incidentID, ok = pathID(c, "incidentID"); !ok {
		return 0, 0, false
	}
	return eventID, incidentID, true
}

// respondIncident перечитывает инцидент вместе с назначениями
func (h *Handler) respondIncident(c *gin.Context, log *logrus.Entry, code int, incident *models.Incident) {
	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), incident.EventID, incident.ID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, code, "incident", ModelToIncidentResponse(incident, assignments))
}

// @Summary Create a new incident
// @Description Create an incident in the event. The incident number is allocated per event. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/{eventID}/incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "createIncident").WithField("event_id", eventID)

	var input CreateIncidentRequest
	if !h.bind(c, log, &input) {
		return
	}

	incident, initial := DTOToIncidentModel(eventID, input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), incident, initial); err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusCreated, "incident", ModelToIncidentResponse(incident, nil))
}

// @Summary List incidents of an event
// @Description Incidents ordered by number, each with its assignments. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param include_deleted query bool false "Include soft-deleted incidents" default(false)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/{eventID}/incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listIncidents").WithField("event_id", eventID)

	includeDeleted, err := strconv.ParseBool(c.DefaultQuery("include_deleted", "false"))
	if err != nil {
		failure(c, http.StatusBadRequest, "invalid include_deleted")
		return
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), eventID, includeDeleted)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	ids := make([]int64, len(incidents))
	for i, incident := range incidents {
		ids[i] = incident.ID
	}
	assignments, err := h.assignmentService.ListAssignmentsByIncidents(c.Request.Context(), ids)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "incidents", ModelsToIncidentResponses(incidents, assignments))
}

// @Summary Get incident by ID
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /events/{eventID}/incidents/{incidentID} [get]
func (h *Handler) getIncident(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("incident_id", incidentID)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), eventID, incidentID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	h.respondIncident(c, log, http.StatusOK, incident)
}

// @Summary Update an incident
// @Description Partial update. A state change stamps the state's timestamp, a coordinate change clears the address. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Incident update request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /events/{eventID}/incidents/{incidentID} [put]
func (h *Handler) updateIncident(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateIncident").WithField("incident_id", incidentID)

	var input UpdateIncidentRequest
	if !h.bind(c, log, &input) {
		return
	}

	incident, err := h.incidentService.UpdateIncident(c.Request.Context(), eventID, incidentID, DTOToIncidentPatch(input))
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	h.respondIncident(c, log, http.StatusOK, incident)
}

// @Summary Soft-delete an incident
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Success 200 {object} map[string]string "Status success"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /events/{eventID}/incidents/{incidentID} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("incident_id", incidentID)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), eventID, incidentID); err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "", nil)
}

// @Summary Restore a soft-deleted incident
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /events/{eventID}/incidents/{incidentID}/restore [post]
func (h *Handler) restoreIncident(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "restoreIncident").WithField("incident_id", incidentID)

	if err := h.incidentService.RestoreIncident(c.Request.Context(), eventID, incidentID); err != nil {
		h.serviceError(c, log, err)
		return
	}
	incident, err := h.incidentService.GetIncident(c.Request.Context(), eventID, incidentID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	h.respondIncident(c, log, http.StatusOK, incident)
}

// @Summary Get incident address
// @Description Stored address, resolved from the coordinates on demand when missing. Empty when unavailable.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Success 200 {object} map[string]string "Address"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /events/{eventID}/incidents/{incidentID}/address [get]
func (h *Handler) getIncidentAddress(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncidentAddress").WithField("incident_id", incidentID)

	address, err := h.incidentService.GetIncidentAddress(c.Request.Context(), eventID, incidentID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "address", address)
}
