package hub

import (
	"encoding/json"
	"errors"

	"github.com/shenikar/event_dispatch/internal/models"
)

// Типы кадров WebSocket
const (
	FrameJoinEvent   = "join_event"
	FrameLeaveEvent  = "leave_event"
	FrameSendMessage = "send_message"

	FrameMessageHistory = "message_history"
	FrameNewMessage     = "new_message"
	FrameUserJoined     = "user_joined"
	FrameUserLeft       = "user_left"
	FrameError          = "error"
)

// Коды ошибок в кадре error
const (
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeNotFound          = "NOT_FOUND"
	CodeEventInactive     = "EVENT_INACTIVE"
	CodeNotJoined         = "NOT_JOINED"
	CodeResourceExhausted = "RESOURCE_EXHAUSTED"
	CodeInternal          = "INTERNAL"
)

// Frame - конверт любого кадра в обе стороны
type Frame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type joinPayload struct {
	EventID    int64  `json:"event_id"`
	CallsignID *int64 `json:"callsign_id,omitempty"`
}

type leavePayload struct {
	EventID    int64  `json:"event_id"`
	CallsignID *int64 `json:"callsign_id,omitempty"`
}

type sendPayload struct {
	EventID      int64          `json:"event_id"`
	CallsignID   int64          `json:"callsign_id"`
	ToCallsignID *int64         `json:"to_callsign_id,omitempty"`
	Content      models.Content `json:"content"`
}

type historyPayload struct {
	EventID  int64             `json:"event_id"`
	Messages []*models.Message `json:"messages"`
}

type presencePayload struct {
	EventID     int64  `json:"event_id"`
	CallsignID  *int64 `json:"callsign_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func encodeFrame(frameType, requestID string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Type: frameType, RequestID: requestID, Payload: raw})
}

// errorCode сопоставляет класс ошибки домена с кодом кадра error
func errorCode(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		return CodeInvalidArgument
	case errors.Is(err, models.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, models.ErrEventInactive):
		return CodeEventInactive
	}
	return CodeInternal
}
