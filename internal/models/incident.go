package models

import (
	"fmt"
	"time"
)

// IncidentState - состояние жизненного цикла инцидента
type IncidentState string

const (
	IncidentPreIncident IncidentState = "pre-incident"
	IncidentActive      IncidentState = "active"
	IncidentStandby     IncidentState = "standby"
	IncidentResolved    IncidentState = "resolved"
)

// ParseIncidentState проверяет имя состояния; неизвестные имена отклоняются, а не подменяются дефолтом
func ParseIncidentState(s string) (IncidentState, error) {
	switch state := IncidentState(s); state {
	case IncidentPreIncident, IncidentActive, IncidentStandby, IncidentResolved:
		return state, nil
	}
	return "", fmt.Errorf("%w: unknown incident state %q", ErrValidation, s)
}

type Incident struct {
	ID             int64         `json:"id"`
	EventID        int64         `json:"event_id"`
	IncidentNumber int           `json:"incident_number"`
	State          IncidentState `json:"state"`
	ReportedBy     string        `json:"reported_by"`
	Type           string        `json:"type"`
	Description    string        `json:"description"`
	Latitude       *float64      `json:"lat,omitempty"`
	Longitude      *float64      `json:"lng,omitempty"`
	Address        string        `json:"address,omitempty"`
	LocationNote   string        `json:"location_note,omitempty"`
	BibNumber      string        `json:"bib_number,omitempty"`
	Pathology      string        `json:"pathology,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	PreIncidentAt *time.Time `json:"pre_incident_at,omitempty"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	StandbyAt     *time.Time `json:"standby_at,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`

	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// HasCoordinates сообщает, заданы ли обе координаты
func (i *Incident) HasCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// StateTimestamp возвращает время последнего входа в состояние
func (i *Incident) StateTimestamp(state IncidentState) *time.Time {
	switch state {
	case IncidentPreIncident:
		return i.PreIncidentAt
	case IncidentActive:
		return i.ActivatedAt
	case IncidentStandby:
		return i.StandbyAt
	case IncidentResolved:
		return i.ResolvedAt
	}
	return nil
}

func (i *Incident) stamp(state IncidentState, now time.Time) {
	t := now
	switch state {
	case IncidentPreIncident:
		i.PreIncidentAt = &t
	case IncidentActive:
		i.ActivatedAt = &t
	case IncidentStandby:
		i.StandbyAt = &t
	case IncidentResolved:
		i.ResolvedAt = &t
	}
}

// Enter устанавливает начальное состояние и отмечает его время
func (i *Incident) Enter(state IncidentState, now time.Time) {
	i.State = state
	i.stamp(state, now)
}

// Transition переводит инцидент в новое состояние.
// Повторный вход в текущее состояние ничего не меняет и возвращает false.
// Отметки времени других состояний сохраняются.
func (i *Incident) Transition(state IncidentState, now time.Time) bool {
	if i.State == state {
		return false
	}
	i.Enter(state, now)
	return true
}

// IncidentPatch - частичное обновление; nil означает "поле не передано"
type IncidentPatch struct {
	State        *IncidentState
	ReportedBy   *string
	Type         *string
	Description  *string
	Latitude     *float64
	Longitude    *float64
	LocationNote *string
	BibNumber    *string
	Pathology    *string
}

// Apply применяет переданные поля и сообщает, изменились ли координаты.
// Смена состояния сюда не входит: ее выполняет Transition.
func (p IncidentPatch) Apply(i *Incident) (coordsChanged bool) {
	if p.ReportedBy != nil {
		i.ReportedBy = *p.ReportedBy
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.LocationNote != nil {
		i.LocationNote = *p.LocationNote
	}
	if p.BibNumber != nil {
		i.BibNumber = *p.BibNumber
	}
	if p.Pathology != nil {
		i.Pathology = *p.Pathology
	}
	if p.Latitude != nil && !sameFloat(i.Latitude, *p.Latitude) {
		lat := *p.Latitude
		i.Latitude = &lat
		coordsChanged = true
	}
	if p.Longitude != nil && !sameFloat(i.Longitude, *p.Longitude) {
		lng := *p.Longitude
		i.Longitude = &lng
		coordsChanged = true
	}
	return coordsChanged
}

func sameFloat(current *float64, next float64) bool {
	return current != nil && *current == next
}
