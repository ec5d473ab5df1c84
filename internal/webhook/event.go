package webhook

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/event_dispatch/internal/models"
)

// Типы исходящих событий диспетчеризации
const (
	EventIncidentCreated        = "incident.created"
	EventIncidentStateChanged   = "incident.state_changed"
	EventAssignmentCreated      = "assignment.created"
	EventAssignmentStateChanged = "assignment.state_changed"
	EventAssignmentDeleted      = "assignment.deleted"
)

// DispatchEvent - тело вебхука об изменении инцидента или назначения
type DispatchEvent struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	EventID        int64     `json:"event_id"`
	IncidentID     int64     `json:"incident_id"`
	IncidentNumber int       `json:"incident_number"`
	IncidentState  string    `json:"incident_state"`
	AssignmentID   *int64    `json:"assignment_id,omitempty"`
	Target         string    `json:"target,omitempty"`
	State          string    `json:"assignment_state,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewDispatchEvent собирает событие; assignment может быть nil
func NewDispatchEvent(eventType string, incident *models.Incident, assignment *models.Assignment) DispatchEvent {
	ev := DispatchEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
	if incident != nil {
		ev.EventID = incident.EventID
		ev.IncidentID = incident.ID
		ev.IncidentNumber = incident.IncidentNumber
		ev.IncidentState = string(incident.State)
	}
	if assignment != nil {
		id := assignment.ID
		ev.AssignmentID = &id
		ev.IncidentID = assignment.IncidentID
		ev.Target = assignment.DisplayName()
		ev.State = string(assignment.State)
	}
	return ev
}
