package models

import (
	"fmt"
	"strings"
	"time"
)

// ContentType - вид содержимого сообщения (закрытый набор)
type ContentType string

const (
	ContentText          ContentType = "text"
	ContentLocation      ContentType = "location"
	ContentAssignService ContentType = "assign_service"
)

// Content - типизированное содержимое сообщения.
// text: Text; location: Lat, Lng; assign_service: Lat, Lng, Text.
type Content struct {
	Type ContentType `json:"type"`
	Text string      `json:"text,omitempty"`
	Lat  *float64    `json:"lat,omitempty"`
	Lng  *float64    `json:"lng,omitempty"`
}

// TextContent - текстовое сообщение
func TextContent(text string) Content {
	return Content{Type: ContentText, Text: text}
}

// LocationContent - сообщение о местоположении
func LocationContent(lat, lng float64) Content {
	return Content{Type: ContentLocation, Lat: &lat, Lng: &lng}
}

// AssignServiceContent - уведомление о назначении службы с точкой на карте
func AssignServiceContent(lat, lng float64, text string) Content {
	return Content{Type: ContentAssignService, Lat: &lat, Lng: &lng, Text: text}
}

// Normalize проверяет содержимое и отбрасывает поля, не относящиеся к его виду
func (c Content) Normalize() (Content, error) {
	switch c.Type {
	case "":
		return Content{}, fmt.Errorf("%w: content type is required", ErrValidation)
	case ContentText:
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return Content{}, fmt.Errorf("%w: text content requires text", ErrValidation)
		}
		return Content{Type: ContentText, Text: text}, nil
	case ContentLocation:
		if err := validateCoordinates(c.Lat, c.Lng); err != nil {
			return Content{}, err
		}
		return LocationContent(*c.Lat, *c.Lng), nil
	case ContentAssignService:
		if err := validateCoordinates(c.Lat, c.Lng); err != nil {
			return Content{}, err
		}
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return Content{}, fmt.Errorf("%w: assign_service content requires text", ErrValidation)
		}
		return AssignServiceContent(*c.Lat, *c.Lng, text), nil
	}
	return Content{}, fmt.Errorf("%w: unknown content type %q", ErrValidation, c.Type)
}

// ValidateCoordinates проверяет пару координат на наличие и диапазон
func ValidateCoordinates(lat, lng *float64) error {
	return validateCoordinates(lat, lng)
}

func validateCoordinates(lat, lng *float64) error {
	if lat == nil || lng == nil {
		return fmt.Errorf("%w: lat and lng are required", ErrValidation)
	}
	if *lat < -90 || *lat > 90 {
		return fmt.Errorf("%w: lat %v out of range", ErrValidation, *lat)
	}
	if *lng < -180 || *lng > 180 {
		return fmt.Errorf("%w: lng %v out of range", ErrValidation, *lng)
	}
	return nil
}

// Message - неизменяемая запись журнала сообщений мероприятия
type Message struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"event_id"`
	CallsignID   int64     `json:"callsign_id"`
	ToCallsignID *int64    `json:"to_callsign_id,omitempty"`
	Content      Content   `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
}

// IsTargeted сообщает, адресовано ли сообщение конкретному позывному
func (m *Message) IsTargeted() bool {
	return m.ToCallsignID != nil
}

// NewerThan сравнивает сообщения по времени, при равенстве - по порядку добавления
func (m *Message) NewerThan(other *Message) bool {
	if m.Timestamp.Equal(other.Timestamp) {
		return m.ID > other.ID
	}
	return m.Timestamp.After(other.Timestamp)
}
