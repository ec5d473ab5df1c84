package models

import (
	"fmt"
	"time"
)

// AssignmentState - состояние назначения ресурса на инцидент
type AssignmentState string

const (
	AssignmentPreNotified AssignmentState = "pre-notified"
	AssignmentNotified    AssignmentState = "notified"
	AssignmentEnRoute     AssignmentState = "en-route"
	AssignmentOnScene     AssignmentState = "on-scene"
	AssignmentClosed      AssignmentState = "closed"
)

func ParseAssignmentState(s string) (AssignmentState, error) {
	switch state := AssignmentState(s); state {
	case AssignmentPreNotified, AssignmentNotified, AssignmentEnRoute, AssignmentOnScene, AssignmentClosed:
		return state, nil
	}
	return "", fmt.Errorf("%w: unknown assignment state %q", ErrValidation, s)
}

// Assignment связывает инцидент либо с позывным, либо с текстовой меткой службы.
// Цель разрешается один раз при создании: код и имя позывного сохраняются снимком.
type Assignment struct {
	ID           int64           `json:"id"`
	IncidentID   int64           `json:"incident_id"`
	CallsignID   *int64          `json:"callsign_id,omitempty"`
	ServiceLabel *string         `json:"service_label,omitempty"`
	TargetCode   string          `json:"target_code,omitempty"`
	TargetName   string          `json:"target_name,omitempty"`
	State        AssignmentState `json:"state"`
	CreatedAt    time.Time       `json:"created_at"`

	PreNotifiedAt *time.Time `json:"pre_notified_at,omitempty"`
	NotifiedAt    *time.Time `json:"notified_at,omitempty"`
	EnRouteAt     *time.Time `json:"en_route_at,omitempty"`
	OnSceneAt     *time.Time `json:"on_scene_at,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
}

// NewCallsignAssignment создает назначение на зарегистрированный позывной
func NewCallsignAssignment(incidentID int64, cs *Callsign) *Assignment {
	id := cs.ID
	return &Assignment{
		IncidentID: incidentID,
		CallsignID: &id,
		TargetCode: cs.Code,
		TargetName: cs.Name,
	}
}

// NewServiceAssignment создает назначение на службу, заданную свободным текстом
func NewServiceAssignment(incidentID int64, label string) *Assignment {
	return &Assignment{
		IncidentID:   incidentID,
		ServiceLabel: &label,
	}
}

// DisplayName зависит только от сохраненных полей
func (a *Assignment) DisplayName() string {
	if a.ServiceLabel != nil {
		return *a.ServiceLabel
	}
	return CallsignDisplayName(a.TargetCode, a.TargetName)
}

// Validate проверяет, что задана ровно одна цель
func (a *Assignment) Validate() error {
	if (a.CallsignID == nil) == (a.ServiceLabel == nil) {
		return fmt.Errorf("%w: assignment needs exactly one of callsign or service label", ErrValidation)
	}
	if a.ServiceLabel != nil && *a.ServiceLabel == "" {
		return fmt.Errorf("%w: service label is empty", ErrValidation)
	}
	return nil
}

func (a *Assignment) StateTimestamp(state AssignmentState) *time.Time {
	switch state {
	case AssignmentPreNotified:
		return a.PreNotifiedAt
	case AssignmentNotified:
		return a.NotifiedAt
	case AssignmentEnRoute:
		return a.EnRouteAt
	case AssignmentOnScene:
		return a.OnSceneAt
	case AssignmentClosed:
		return a.ClosedAt
	}
	return nil
}

func (a *Assignment) stamp(state AssignmentState, now time.Time) {
	t := now
	switch state {
	case AssignmentPreNotified:
		a.PreNotifiedAt = &t
	case AssignmentNotified:
		a.NotifiedAt = &t
	case AssignmentEnRoute:
		a.EnRouteAt = &t
	case AssignmentOnScene:
		a.OnSceneAt = &t
	case AssignmentClosed:
		a.ClosedAt = &t
	}
}

func (a *Assignment) Enter(state AssignmentState, now time.Time) {
	a.State = state
	a.stamp(state, now)
}

// Transition - те же правила, что и у инцидента: без изменения состояния это no-op
func (a *Assignment) Transition(state AssignmentState, now time.Time) bool {
	if a.State == state {
		return false
	}
	a.Enter(state, now)
	return true
}
