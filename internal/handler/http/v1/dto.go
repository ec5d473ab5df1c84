package v1

import (
	"time"
)

// CreateEventRequest DTO для создания мероприятия
// @Description DTO для создания мероприятия
type CreateEventRequest struct {
	Name     string    `json:"name" validate:"required,min=2,max=255"`
	StartsAt time.Time `json:"starts_at"`
	Active   *bool     `json:"active,omitempty"`
}

// UpdateEventRequest DTO для частичного обновления мероприятия
// @Description DTO для частичного обновления мероприятия
type UpdateEventRequest struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
}

// EventResponse DTO для ответа с информацией о мероприятии
// @Description DTO для ответа с информацией о мероприятии
type EventResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartsAt  time.Time `json:"starts_at"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCallsignRequest DTO для регистрации позывного
// @Description DTO для регистрации позывного
type CreateCallsignRequest struct {
	Code       string     `json:"code" validate:"required,max=64"`
	Name       string     `json:"name,omitempty" validate:"max=255"`
	Location   string     `json:"location,omitempty" validate:"max=255"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Color      string     `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// UpdateCallsignRequest DTO для частичного обновления позывного
// @Description DTO для частичного обновления позывного
type UpdateCallsignRequest struct {
	Code       *string    `json:"code,omitempty" validate:"omitempty,max=64"`
	Name       *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	Location   *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Color      *string    `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type CallsignResponse struct {
	ID          int64      `json:"id"`
	EventID     int64      `json:"event_id"`
	Code        string     `json:"code"`
	Name        string     `json:"name,omitempty"`
	DisplayName string     `json:"display_name"`
	Location    string     `json:"location,omitempty"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	Color       string     `json:"color,omitempty"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	State        string   `json:"state,omitempty" validate:"omitempty,oneof=pre-incident active standby resolved"`
	ReportedBy   string   `json:"reported_by,omitempty" validate:"max=255"`
	Type         string   `json:"type,omitempty" validate:"max=255"`
	Description  string   `json:"description,omitempty"`
	Latitude     *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	LocationNote string   `json:"location_note,omitempty" validate:"max=255"`
	BibNumber    string   `json:"bib_number,omitempty" validate:"max=64"`
	Pathology    string   `json:"pathology,omitempty" validate:"max=255"`
}

// UpdateIncidentRequest DTO для частичного обновления инцидента; отсутствующие поля не меняются
// @Description DTO для частичного обновления инцидента
type UpdateIncidentRequest struct {
	State        *string  `json:"state,omitempty" validate:"omitempty,oneof=pre-incident active standby resolved"`
	ReportedBy   *string  `json:"reported_by,omitempty" validate:"omitempty,max=255"`
	Type         *string  `json:"type,omitempty" validate:"omitempty,max=255"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	LocationNote *string  `json:"location_note,omitempty" validate:"omitempty,max=255"`
	BibNumber    *string  `json:"bib_number,omitempty" validate:"omitempty,max=64"`
	Pathology    *string  `json:"pathology,omitempty" validate:"omitempty,max=255"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID             int64      `json:"id"`
	EventID        int64      `json:"event_id"`
	IncidentNumber int        `json:"incident_number"`
	State          string     `json:"state"`
	ReportedBy     string     `json:"reported_by,omitempty"`
	Type           string     `json:"type,omitempty"`
	Description    string     `json:"description,omitempty"`
	Latitude       *float64   `json:"lat,omitempty"`
	Longitude      *float64   `json:"lng,omitempty"`
	Address        string     `json:"address,omitempty"`
	LocationNote   string     `json:"location_note,omitempty"`
	BibNumber      string     `json:"bib_number,omitempty"`
	Pathology      string     `json:"pathology,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PreIncidentAt  *time.Time `json:"pre_incident_at,omitempty"`
	ActivatedAt    *time.Time `json:"activated_at,omitempty"`
	StandbyAt      *time.Time `json:"standby_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	Deleted        bool       `json:"deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`

	Assignments []*AssignmentResponse `json:"assignments"`
}

// CreateAssignmentRequest DTO для назначения ресурса.
// Target - код или отображаемое имя позывного либо произвольная метка службы.
type CreateAssignmentRequest struct {
	Target string `json:"target" validate:"required,max=255"`
	State  string `json:"state,omitempty" validate:"omitempty,oneof=pre-notified notified en-route on-scene closed"`
}

type UpdateAssignmentRequest struct {
	State string `json:"state" validate:"required,oneof=pre-notified notified en-route on-scene closed"`
}

// AssignmentResponse DTO для ответа с информацией о назначении
// @Description DTO для ответа с информацией о назначении
type AssignmentResponse struct {
	ID            int64      `json:"id"`
	IncidentID    int64      `json:"incident_id"`
	AssignedTo    string     `json:"assigned_to"`
	CallsignID    *int64     `json:"callsign_id,omitempty"`
	ServiceLabel  *string    `json:"service_label,omitempty"`
	State         string     `json:"state"`
	CreatedAt     time.Time  `json:"created_at"`
	PreNotifiedAt *time.Time `json:"pre_notified_at,omitempty"`
	NotifiedAt    *time.Time `json:"notified_at,omitempty"`
	EnRouteAt     *time.Time `json:"en_route_at,omitempty"`
	OnSceneAt     *time.Time `json:"on_scene_at,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
}

// LocationResponse - последнее известное местоположение позывного
type LocationResponse struct {
	CallsignID int64     `json:"callsign_id"`
	MessageID  int64     `json:"message_id"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lng"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorResponse - конверт ответа с ошибкой
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message"`
}
