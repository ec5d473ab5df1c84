package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentDisplayName(t *testing.T) {
	cs := &Callsign{ID: 7, Code: "A1", Name: "Moto 1"}
	withName := NewCallsignAssignment(3, cs)
	assert.Equal(t, "A1 (Moto 1)", withName.DisplayName())

	cs.Name = ""
	withoutName := NewCallsignAssignment(3, cs)
	assert.Equal(t, "A1", withoutName.DisplayName())

	// переименование позывного не влияет на уже созданное назначение
	cs.Code = "B9"
	assert.Equal(t, "A1 (Moto 1)", withName.DisplayName())

	service := NewServiceAssignment(3, "CME")
	assert.Equal(t, "CME", service.DisplayName())
}

func TestAssignmentValidate_ExactlyOneTarget(t *testing.T) {
	require.NoError(t, NewServiceAssignment(1, "GUB").Validate())
	require.NoError(t, NewCallsignAssignment(1, &Callsign{ID: 2, Code: "A2"}).Validate())

	id := int64(2)
	label := "GUB"
	both := &Assignment{CallsignID: &id, ServiceLabel: &label}
	require.ErrorIs(t, both.Validate(), ErrValidation)

	require.ErrorIs(t, (&Assignment{}).Validate(), ErrValidation)
	require.ErrorIs(t, NewServiceAssignment(1, "").Validate(), ErrValidation)
}

func TestAssignmentTransition(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	a := NewServiceAssignment(1, "CME")
	a.Enter(AssignmentPreNotified, t0)

	assert.False(t, a.Transition(AssignmentPreNotified, t0.Add(time.Minute)))
	assert.Equal(t, t0, *a.PreNotifiedAt)

	assert.True(t, a.Transition(AssignmentEnRoute, t0.Add(2*time.Minute)))
	assert.True(t, a.Transition(AssignmentOnScene, t0.Add(5*time.Minute)))
	assert.Equal(t, AssignmentOnScene, a.State)
	assert.Equal(t, t0, *a.StateTimestamp(AssignmentPreNotified))
	assert.Equal(t, t0.Add(2*time.Minute), *a.StateTimestamp(AssignmentEnRoute))
	assert.Nil(t, a.StateTimestamp(AssignmentClosed))

	_, err := ParseAssignmentState("en el lugar")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCallsignIsControlCenter(t *testing.T) {
	assert.True(t, (&Callsign{Code: "CECOM"}).IsControlCenter())
	assert.True(t, (&Callsign{Code: "control-1"}).IsControlCenter())
	assert.False(t, (&Callsign{Code: "A1"}).IsControlCenter())
}
