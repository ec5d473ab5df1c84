package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentNormalize(t *testing.T) {
	lat, lng := 41.4, 2.17

	tests := []struct {
		name    string
		in      Content
		want    Content
		wantErr bool
	}{
		{name: "text", in: Content{Type: ContentText, Text: " hola ", Lat: &lat}, want: TextContent("hola")},
		{name: "text without body", in: Content{Type: ContentText}, wantErr: true},
		{name: "location", in: Content{Type: ContentLocation, Lat: &lat, Lng: &lng, Text: "x"}, want: LocationContent(lat, lng)},
		{name: "location missing lng", in: Content{Type: ContentLocation, Lat: &lat}, wantErr: true},
		{name: "assign service", in: Content{Type: ContentAssignService, Lat: &lat, Lng: &lng, Text: "cover km 12"}, want: AssignServiceContent(lat, lng, "cover km 12")},
		{name: "assign service without text", in: Content{Type: ContentAssignService, Lat: &lat, Lng: &lng}, wantErr: true},
		{name: "missing type", in: Content{Text: "hola"}, wantErr: true},
		{name: "unknown type", in: Content{Type: "image"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentNormalize_RejectsOutOfRange(t *testing.T) {
	lat, lng := 91.0, 2.0
	_, err := Content{Type: ContentLocation, Lat: &lat, Lng: &lng}.Normalize()
	require.ErrorIs(t, err, ErrValidation)
}

func TestMessageWireShape(t *testing.T) {
	to := int64(5)
	msg := Message{
		ID:           1,
		EventID:      2,
		CallsignID:   3,
		ToCallsignID: &to,
		Content:      LocationContent(41.4, 2.17),
		Timestamp:    time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"event_id": 2,
		"callsign_id": 3,
		"to_callsign_id": 5,
		"content": {"type": "location", "lat": 41.4, "lng": 2.17},
		"timestamp": "2026-05-01T09:00:00Z"
	}`, string(raw))
}

func TestMessageNewerThan(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	older := &Message{ID: 1, Timestamp: t0}
	newer := &Message{ID: 2, Timestamp: t0.Add(time.Second)}
	sameTimeLater := &Message{ID: 3, Timestamp: t0}

	assert.True(t, newer.NewerThan(older))
	assert.False(t, older.NewerThan(newer))
	assert.True(t, sameTimeLater.NewerThan(older))
}
