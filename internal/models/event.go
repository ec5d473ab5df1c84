package models

import (
	"strings"
	"time"
)

// Event - мероприятие (гонка, ралли), в рамках которого ведется диспетчеризация
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartsAt  time.Time `json:"starts_at"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Callsign - зарегистрированный позывной (indicativo) внутри мероприятия
type Callsign struct {
	ID         int64      `json:"id"`
	EventID    int64      `json:"event_id"`
	Code       string     `json:"code"`
	Name       string     `json:"name,omitempty"`
	Location   string     `json:"location,omitempty"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Color      string     `json:"color,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// controlCenterMarkers - подстроки кода, которыми обозначаются центры управления
var controlCenterMarkers = []string{"CECOM", "CONTROL", "CCO"}

// DisplayName возвращает "code (name)" или просто code, если имени нет
func (c *Callsign) DisplayName() string {
	return CallsignDisplayName(c.Code, c.Name)
}

// IsControlCenter сообщает, обозначает ли код позывного центр управления
func (c *Callsign) IsControlCenter() bool {
	code := strings.ToUpper(c.Code)
	for _, marker := range controlCenterMarkers {
		if strings.Contains(code, marker) {
			return true
		}
	}
	return false
}

// CallsignDisplayName собирает отображаемое имя из кода и имени
func CallsignDisplayName(code, name string) string {
	if name == "" {
		return code
	}
	return code + " (" + name + ")"
}

// EventPatch - частичное обновление мероприятия; nil означает "не менять"
type EventPatch struct {
	Name     *string
	StartsAt *time.Time
}

func (p EventPatch) Apply(e *Event) {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.StartsAt != nil {
		e.StartsAt = *p.StartsAt
	}
}

// CallsignPatch - частичное обновление позывного.
// Переименование не затрагивает снимки в уже созданных назначениях.
type CallsignPatch struct {
	Code       *string
	Name       *string
	Location   *string
	ValidFrom  *time.Time
	ValidUntil *time.Time
	Color      *string
}

func (p CallsignPatch) Apply(c *Callsign) {
	if p.Code != nil {
		c.Code = strings.TrimSpace(*p.Code)
	}
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.ValidFrom != nil {
		from := *p.ValidFrom
		c.ValidFrom = &from
	}
	if p.ValidUntil != nil {
		until := *p.ValidUntil
		c.ValidUntil = &until
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
}
