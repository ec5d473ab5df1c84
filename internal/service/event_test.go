package service

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestEventService(t *testing.T) (EventService, *mocks.MockEventRepository, *mocks.MockRoomCloser) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockEventRepository(ctrl)
	roomsMock := mocks.NewMockRoomCloser(ctrl)
	return NewEventService(repoMock, roomsMock, testLogger()), repoMock, roomsMock
}

func TestToggleEvent_DeactivationClosesRoom(t *testing.T) {
	svc, repoMock, roomsMock := newTestEventService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetEvent(ctx, int64(3)).Return(&models.Event{ID: 3, Active: true}, nil)
	repoMock.EXPECT().SetEventActive(ctx, int64(3), false).Return(&models.Event{ID: 3, Active: false}, nil)
	roomsMock.EXPECT().CloseEvent(int64(3), gomock.Any())

	event, err := svc.ToggleEvent(ctx, 3)

	require.NoError(t, err)
	assert.False(t, event.Active)
}

func TestToggleEvent_Activation(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetEvent(ctx, int64(3)).Return(&models.Event{ID: 3, Active: false}, nil)
	repoMock.EXPECT().SetEventActive(ctx, int64(3), true).Return(&models.Event{ID: 3, Active: true}, nil)

	event, err := svc.ToggleEvent(ctx, 3)

	require.NoError(t, err)
	assert.True(t, event.Active)
}

func TestCreateEvent_RequiresName(t *testing.T) {
	svc, _, _ := newTestEventService(t)

	err := svc.CreateEvent(context.Background(), &models.Event{Name: "  ", StartsAt: time.Now()})

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateCallsign_Validation(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	ctx := context.Background()
	from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	until := from.Add(-time.Hour)

	tests := []struct {
		name string
		cs   *models.Callsign
	}{
		{"empty code", &models.Callsign{EventID: 1, Code: " "}},
		{"bad color", &models.Callsign{EventID: 1, Code: "A1", Color: "red"}},
		{"inverted window", &models.Callsign{EventID: 1, Code: "A1", ValidFrom: &from, ValidUntil: &until}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.CreateCallsign(ctx, tt.cs), models.ErrValidation)
		})
	}
}

func TestCreateCallsign_UnknownEvent(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()
	repoMock.EXPECT().GetEvent(ctx, int64(9)).Return(nil, models.ErrNotFound)

	err := svc.CreateCallsign(ctx, &models.Callsign{EventID: 9, Code: "A1", Color: "#00ff00"})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListCallsigns(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()
	repoMock.EXPECT().GetEvent(ctx, int64(1)).Return(&models.Event{ID: 1}, nil)
	repoMock.EXPECT().ListCallsigns(ctx, int64(1)).Return([]*models.Callsign{{ID: 1, Code: "A1"}}, nil)

	got, err := svc.ListCallsigns(ctx, 1)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdateEvent_AppliesPatch(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()
	starts := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	repoMock.EXPECT().GetEvent(ctx, int64(3)).Return(&models.Event{ID: 3, Name: "Old", Active: true}, nil)
	repoMock.EXPECT().UpdateEvent(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *models.Event) error {
		assert.Equal(t, "Marathon", e.Name)
		assert.Equal(t, starts, e.StartsAt)
		return nil
	})

	event, err := svc.UpdateEvent(ctx, 3, models.EventPatch{Name: ptr(" Marathon "), StartsAt: &starts})

	require.NoError(t, err)
	assert.True(t, event.Active)
}

func TestUpdateEvent_EmptyNameRejected(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()
	repoMock.EXPECT().GetEvent(ctx, int64(3)).Return(&models.Event{ID: 3, Name: "Old"}, nil)

	_, err := svc.UpdateEvent(ctx, 3, models.EventPatch{Name: ptr("  ")})

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteEvent_ClosesRoom(t *testing.T) {
	svc, repoMock, roomsMock := newTestEventService(t)
	ctx := context.Background()

	repoMock.EXPECT().DeleteEvent(ctx, int64(3)).Return(nil)
	roomsMock.EXPECT().CloseEvent(int64(3), gomock.Any())

	require.NoError(t, svc.DeleteEvent(ctx, 3))
}

func TestDeleteEvent_NotFound(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()
	repoMock.EXPECT().DeleteEvent(ctx, int64(3)).Return(models.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, 3), models.ErrNotFound)
}

func TestUpdateCallsign_RenameKeepsAssignmentSnapshot(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()
	stored := &models.Callsign{ID: 11, EventID: 1, Code: "A1", Name: "Alpha"}
	assignment := models.NewCallsignAssignment(100, stored)
	before := assignment.DisplayName()

	repoMock.EXPECT().GetCallsign(ctx, int64(11)).DoAndReturn(func(context.Context, int64) (*models.Callsign, error) {
		cp := *stored
		return &cp, nil
	})
	repoMock.EXPECT().UpdateCallsign(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, cs *models.Callsign) error {
		*stored = *cs
		return nil
	})

	cs, err := svc.UpdateCallsign(ctx, 1, 11, models.CallsignPatch{Code: ptr("MED1"), Name: ptr("Medic")})

	require.NoError(t, err)
	assert.Equal(t, "MED1 (Medic)", cs.DisplayName())
	assert.Equal(t, "A1 (Alpha)", before)
	assert.Equal(t, before, assignment.DisplayName())
}

func TestUpdateCallsign_Errors(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetCallsign(ctx, int64(21)).Return(&models.Callsign{ID: 21, EventID: 2, Code: "B1"}, nil)
	_, err := svc.UpdateCallsign(ctx, 1, 21, models.CallsignPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	repoMock.EXPECT().GetCallsign(ctx, int64(11)).Return(&models.Callsign{ID: 11, EventID: 1, Code: "A1"}, nil)
	_, err = svc.UpdateCallsign(ctx, 1, 11, models.CallsignPatch{Code: ptr(" ")})
	assert.ErrorIs(t, err, models.ErrValidation)

	repoMock.EXPECT().GetCallsign(ctx, int64(11)).Return(&models.Callsign{ID: 11, EventID: 1, Code: "A1"}, nil)
	repoMock.EXPECT().UpdateCallsign(ctx, gomock.Any()).Return(models.ErrConflict)
	_, err = svc.UpdateCallsign(ctx, 1, 11, models.CallsignPatch{Code: ptr("A2")})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestDeleteCallsign(t *testing.T) {
	svc, repoMock, _ := newTestEventService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetCallsign(ctx, int64(11)).Return(&models.Callsign{ID: 11, EventID: 1, Code: "A1"}, nil)
	repoMock.EXPECT().DeleteCallsign(ctx, int64(1), int64(11)).Return(nil)
	require.NoError(t, svc.DeleteCallsign(ctx, 1, 11))

	repoMock.EXPECT().GetCallsign(ctx, int64(21)).Return(&models.Callsign{ID: 21, EventID: 2, Code: "B1"}, nil)
	assert.ErrorIs(t, svc.DeleteCallsign(ctx, 1, 21), models.ErrNotFound)
}
