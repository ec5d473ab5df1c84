package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1.
// Маршрут /ws регистрируется отдельно от защищенных: браузер не передает заголовки при handshake.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, protected ...gin.HandlerFunc) {
	api.GET("/system/health", h.healthCheck)
	if h.ws != nil {
		api.GET("/ws", gin.WrapH(h.ws))
	}

	secured := api.Group("", protected...)

	events := secured.Group("/events")
	{
		events.POST("", h.createEvent)
		events.GET("", h.listEvents)
		events.GET("/:eventID", h.getEvent)
		events.PUT("/:eventID", h.updateEvent)
		events.DELETE("/:eventID", h.deleteEvent)
		events.POST("/:eventID/toggle", h.toggleEvent)

		events.GET("/:eventID/callsigns", h.listCallsigns)
		events.POST("/:eventID/callsigns", h.createCallsign)
		events.PUT("/:eventID/callsigns/:callsignID", h.updateCallsign)
		events.DELETE("/:eventID/callsigns/:callsignID", h.deleteCallsign)

		events.GET("/:eventID/locations", h.listLocations)
		events.GET("/:eventID/locations/:callsignID", h.getLocation)
	}

	// Маршруты для управления инцидентами и назначениями
	incidents := events.Group("/:eventID/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.POST("", h.createIncident)
		incidents.GET("/:incidentID", h.getIncident)
		incidents.PUT("/:incidentID", h.updateIncident)
		incidents.DELETE("/:incidentID", h.deleteIncident)
		incidents.POST("/:incidentID/restore", h.restoreIncident)
		incidents.GET("/:incidentID/address", h.getIncidentAddress)

		incidents.GET("/:incidentID/assignments", h.listAssignments)
		incidents.POST("/:incidentID/assignments", h.createAssignment)
		incidents.PUT("/:incidentID/assignments/:assignmentID", h.updateAssignment)
		incidents.DELETE("/:incidentID/assignments/:assignmentID", h.deleteAssignment)
	}
}
