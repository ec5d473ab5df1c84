package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_dispatch/internal/models"
)

// @Summary List assignments of an incident
// @Tags Assignments
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Success 200 {array} AssignmentResponse
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /events/{eventID}/incidents/{incidentID}/assignments [get]
func (h *Handler) listAssignments(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listAssignments").WithField("incident_id", incidentID)

	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), eventID, incidentID)
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "assignments", ModelsToAssignmentResponses(assignments))
}

// @Summary Assign a callsign or service to an incident
// @Description The target is matched against callsign display names and codes once; anything else becomes a service label. An assigned callsign receives an assign_service message. Requires API key.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Param assignment body CreateAssignmentRequest true "Assignment"
// @Success 201 {object} AssignmentResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /events/{eventID}/incidents/{incidentID}/assignments [post]
func (h *Handler) createAssignment(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "createAssignment").WithField("incident_id", incidentID)

	var input CreateAssignmentRequest
	if !h.bind(c, log, &input) {
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), eventID, incidentID, input.Target, models.AssignmentState(input.State))
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusCreated, "assignment", ModelToAssignmentResponse(assignment))
}

// @Summary Change assignment state
// @Tags Assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Param assignmentID path int true "Assignment ID"
// @Param assignment body UpdateAssignmentRequest true "New state"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Router /events/{eventID}/incidents/{incidentID}/assignments/{assignmentID} [put]
func (h *Handler) updateAssignment(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	assignmentID, ok := pathID(c, "assignmentID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateAssignment").WithField("assignment_id", assignmentID)

	var input UpdateAssignmentRequest
	if !h.bind(c, log, &input) {
		return
	}

	assignment, err := h.assignmentService.TransitionAssignment(c.Request.Context(), eventID, incidentID, assignmentID, models.AssignmentState(input.State))
	if err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "assignment", ModelToAssignmentResponse(assignment))
}

// @Summary Remove an assignment
// @Tags Assignments
// @Produce json
// @Security ApiKeyAuth
// @Param eventID path int true "Event ID"
// @Param incidentID path int true "Incident ID"
// @Param assignmentID path int true "Assignment ID"
// @Success 200 {object} map[string]string "Status success"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Router /events/{eventID}/incidents/{incidentID}/assignments/{assignmentID} [delete]
func (h *Handler) deleteAssignment(c *gin.Context) {
	eventID, incidentID, ok := incidentIDs(c)
	if !ok {
		return
	}
	assignmentID, ok := pathID(c, "assignmentID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteAssignment").WithField("assignment_id", assignmentID)

	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), eventID, incidentID, assignmentID); err != nil {
		h.serviceError(c, log, err)
		return
	}
	success(c, http.StatusOK, "", nil)
}
