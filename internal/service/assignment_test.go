package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/service/mocks"
	"github.com/shenikar/event_dispatch/internal/webhook"
	webhook_mocks "github.com/shenikar/event_dispatch/internal/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type assignmentMocks struct {
	repo      *mocks.MockAssignmentRepository
	incidents *mocks.MockIncidentRepository
	events    *mocks.MockEventRepository
	notifier  *mocks.MockNotifier
	publisher *webhook_mocks.MockWebhookPublisher
}

func newTestAssignmentService(t *testing.T) (*assignmentService, assignmentMocks) {
	ctrl := gomock.NewController(t)
	m := assignmentMocks{
		repo:      mocks.NewMockAssignmentRepository(ctrl),
		incidents: mocks.NewMockIncidentRepository(ctrl),
		events:    mocks.NewMockEventRepository(ctrl),
		notifier:  mocks.NewMockNotifier(ctrl),
		publisher: webhook_mocks.NewMockWebhookPublisher(ctrl),
	}
	svc := NewAssignmentService(m.repo, m.incidents, m.events, m.notifier, testLogger(), m.publisher).(*assignmentService)
	svc.now = func() time.Time { return t0 }
	return svc, m
}

func eventCallsigns() []*models.Callsign {
	return []*models.Callsign{
		{ID: 1, EventID: 7, Code: "A1", Name: "Alpha"},
		{ID: 2, EventID: 7, Code: "CECOM-1"},
		{ID: 3, EventID: 7, Code: "M2", Name: "Moto"},
	}
}

func TestCreateAssignment_MatchesDisplayNameAndNotifies(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		ID: 11, EventID: 7, IncidentNumber: 3, State: models.IncidentActive,
		Type: "fall", Description: "runner down", LocationNote: "km 12",
		Latitude: ptr(40.1), Longitude: ptr(-8.2),
	}

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(incident, nil)
	m.events.EXPECT().ListCallsigns(ctx, int64(7)).Return(eventCallsigns(), nil)
	m.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *models.Assignment) error {
		a.ID = 21
		return nil
	})
	m.notifier.EXPECT().
		SendMessage(ctx, int64(7), int64(2), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, to *int64, content models.Content) (*models.Message, error) {
			require.NotNil(t, to)
			assert.EqualValues(t, 3, *to)
			assert.Equal(t, models.ContentAssignService, content.Type)
			assert.InDelta(t, 40.1, *content.Lat, 1e-9)
			assert.Contains(t, content.Text, "Incident #3")
			assert.Contains(t, content.Text, "km 12")
			return &models.Message{ID: 1}, nil
		})
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	a, err := svc.CreateAssignment(ctx, 7, 11, "  M2 (Moto) ", "")

	require.NoError(t, err)
	require.NotNil(t, a.CallsignID)
	assert.EqualValues(t, 3, *a.CallsignID)
	assert.Nil(t, a.ServiceLabel)
	assert.Equal(t, "M2 (Moto)", a.DisplayName())
	assert.Equal(t, models.AssignmentPreNotified, a.State)
	assert.Equal(t, t0, *a.PreNotifiedAt)
}

func TestCreateAssignment_MatchesCode(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()
	incident := &models.Incident{ID: 11, EventID: 7, IncidentNumber: 1}

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(incident, nil)
	m.events.EXPECT().ListCallsigns(ctx, int64(7)).Return(eventCallsigns(), nil)
	m.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.notifier.EXPECT().
		SendMessage(ctx, int64(7), int64(2), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, _ *int64, content models.Content) (*models.Message, error) {
			assert.Equal(t, models.ContentText, content.Type)
			return &models.Message{}, nil
		})
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	a, err := svc.CreateAssignment(ctx, 7, 11, "A1", models.AssignmentNotified)

	require.NoError(t, err)
	assert.EqualValues(t, 1, *a.CallsignID)
	assert.Equal(t, models.AssignmentNotified, a.State)
	assert.NotNil(t, a.NotifiedAt)
	assert.Nil(t, a.PreNotifiedAt)
}

func TestCreateAssignment_FreeTextBecomesServiceLabel(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(&models.Incident{ID: 11, EventID: 7}, nil)
	m.events.EXPECT().ListCallsigns(ctx, int64(7)).Return(eventCallsigns(), nil)
	m.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	a, err := svc.CreateAssignment(ctx, 7, 11, " Ambulance 2 ", "")

	require.NoError(t, err)
	assert.Nil(t, a.CallsignID)
	require.NotNil(t, a.ServiceLabel)
	assert.Equal(t, "Ambulance 2", *a.ServiceLabel)
	assert.Equal(t, "Ambulance 2", a.DisplayName())
}

func TestCreateAssignment_NotificationFailureIsNotFatal(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(&models.Incident{ID: 11, EventID: 7}, nil)
	m.events.EXPECT().ListCallsigns(ctx, int64(7)).Return(eventCallsigns(), nil)
	m.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.notifier.EXPECT().SendMessage(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, models.ErrEventInactive)
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	a, err := svc.CreateAssignment(ctx, 7, 11, "A1", "")

	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestCreateAssignment_EmptyTarget(t *testing.T) {
	svc, _ := newTestAssignmentService(t)

	_, err := svc.CreateAssignment(context.Background(), 7, 11, "   ", "")

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateAssignment_UnknownIncident(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()
	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(99)).Return(nil, models.ErrNotFound)

	_, err := svc.CreateAssignment(ctx, 7, 99, "A1", "")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTransitionAssignment_NoopKeepsTimestamp(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()
	earlier := t0.Add(-time.Minute)
	current := &models.Assignment{ID: 4, IncidentID: 11, State: models.AssignmentEnRoute, EnRouteAt: &earlier}

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(&models.Incident{ID: 11, EventID: 7}, nil)
	m.repo.EXPECT().UpdateWithLock(ctx, int64(11), int64(4), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, fn func(*models.Assignment) (bool, error)) (*models.Assignment, error) {
			a := *current
			changed, err := fn(&a)
			assert.False(t, changed)
			return &a, err
		})

	a, err := svc.TransitionAssignment(ctx, 7, 11, 4, models.AssignmentEnRoute)

	require.NoError(t, err)
	assert.Equal(t, earlier, *a.EnRouteAt)
}

func TestTransitionAssignment_PublishesChange(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()
	earlier := t0.Add(-time.Minute)
	current := &models.Assignment{ID: 4, IncidentID: 11, State: models.AssignmentPreNotified, PreNotifiedAt: &earlier}

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(&models.Incident{ID: 11, EventID: 7}, nil)
	m.repo.EXPECT().UpdateWithLock(ctx, int64(11), int64(4), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, fn func(*models.Assignment) (bool, error)) (*models.Assignment, error) {
			a := *current
			_, err := fn(&a)
			return &a, err
		})
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, ev webhook.DispatchEvent) error {
			assert.Equal(t, webhook.EventAssignmentStateChanged, ev.Type)
			assert.Equal(t, "on-scene", ev.State)
			return errors.New("redis down")
		})

	a, err := svc.TransitionAssignment(ctx, 7, 11, 4, models.AssignmentOnScene)

	require.NoError(t, err)
	assert.Equal(t, t0, *a.OnSceneAt)
	assert.Equal(t, earlier, *a.PreNotifiedAt)
}

func TestDeleteAssignment(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()
	label := "Fire brigade"

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(&models.Incident{ID: 11, EventID: 7}, nil)
	m.repo.EXPECT().GetByID(ctx, int64(11), int64(4)).Return(&models.Assignment{ID: 4, IncidentID: 11, ServiceLabel: &label}, nil)
	m.repo.EXPECT().Delete(ctx, int64(11), int64(4)).Return(nil)
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	require.NoError(t, svc.DeleteAssignment(ctx, 7, 11, 4))
}

func TestListAssignments(t *testing.T) {
	svc, m := newTestAssignmentService(t)
	ctx := context.Background()
	list := []*models.Assignment{{ID: 1, IncidentID: 11}}

	m.incidents.EXPECT().GetByID(ctx, int64(7), int64(11)).Return(&models.Incident{ID: 11, EventID: 7}, nil)
	m.repo.EXPECT().ListByIncidents(ctx, []int64{11}).Return(map[int64][]*models.Assignment{11: list}, nil)

	got, err := svc.ListAssignments(ctx, 7, 11)

	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestPickDispatcher(t *testing.T) {
	assert.EqualValues(t, 2, pickDispatcher(eventCallsigns()).ID)

	plain := []*models.Callsign{{ID: 5, Code: "A1"}, {ID: 6, Code: "A2"}}
	assert.EqualValues(t, 5, pickDispatcher(plain).ID)

	assert.Nil(t, pickDispatcher(nil))
}

func TestIncidentSummary(t *testing.T) {
	summary := IncidentSummary(&models.Incident{
		IncidentNumber: 4,
		Type:           "medical",
		Description:    "dizziness",
		Address:        "Av. da Liberdade",
		ReportedBy:     "A1",
		State:          models.IncidentStandby,
	})

	lines := strings.Split(summary, "\n")
	assert.Equal(t, "Incident #4 [medical]: dizziness", lines[0])
	assert.Contains(t, summary, "Location: Av. da Liberdade")
	assert.Contains(t, summary, "Reported by: A1")
	assert.True(t, strings.HasSuffix(summary, "State: standby"))
}
