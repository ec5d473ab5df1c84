package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncidentState(t *testing.T) {
	for _, name := range []string{"pre-incident", "active", "standby", "resolved"} {
		state, err := ParseIncidentState(name)
		require.NoError(t, err)
		assert.Equal(t, IncidentState(name), state)
	}

	_, err := ParseIncidentState("activo")
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParseIncidentState("")
	require.ErrorIs(t, err, ErrValidation)
}

func TestIncidentTransition_SameStateIsNoop(t *testing.T) {
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	inc := &Incident{}
	inc.Enter(IncidentActive, created)

	changed := inc.Transition(IncidentActive, created.Add(time.Minute))

	assert.False(t, changed)
	assert.Equal(t, IncidentActive, inc.State)
	require.NotNil(t, inc.ActivatedAt)
	assert.Equal(t, created, *inc.ActivatedAt)
}

func TestIncidentTransition_AccumulatesTimestamps(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	inc := &Incident{}
	inc.Enter(IncidentActive, t0)

	require.True(t, inc.Transition(IncidentResolved, t0.Add(10*time.Minute)))
	require.True(t, inc.Transition(IncidentActive, t0.Add(20*time.Minute)))

	assert.Equal(t, IncidentActive, inc.State)
	require.NotNil(t, inc.ResolvedAt)
	assert.Equal(t, t0.Add(10*time.Minute), *inc.ResolvedAt)
	assert.Equal(t, t0.Add(20*time.Minute), *inc.ActivatedAt)
	assert.Nil(t, inc.StandbyAt)
	assert.Nil(t, inc.PreIncidentAt)
}

func TestIncidentPatch_Apply(t *testing.T) {
	lat, lng := 41.39, 2.16
	inc := &Incident{Type: "medical", Latitude: &lat, Longitude: &lng}

	desc := "runner down"
	changed := IncidentPatch{Description: &desc}.Apply(inc)
	assert.False(t, changed)
	assert.Equal(t, "runner down", inc.Description)
	assert.Equal(t, "medical", inc.Type)

	sameLat := 41.39
	assert.False(t, IncidentPatch{Latitude: &sameLat}.Apply(inc))

	newLng := 2.17
	assert.True(t, IncidentPatch{Longitude: &newLng}.Apply(inc))
	assert.Equal(t, 2.17, *inc.Longitude)
}

func TestIncidentPatch_SetsCoordinatesOnEmptyIncident(t *testing.T) {
	inc := &Incident{}
	lat, lng := 41.4, 2.1
	assert.True(t, IncidentPatch{Latitude: &lat, Longitude: &lng}.Apply(inc))
	assert.True(t, inc.HasCoordinates())
}
