package hub

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shenikar/event_dispatch/internal/config"
	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/service"
	"github.com/shenikar/event_dispatch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Мероприятие E1 с позывными A1 и A2: инцидент, назначение на A1,
// местоположение от A1 и вход A2 с воспроизведением истории.
func TestDispatchScenario(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	dir := newFakeDirectory()
	dir.addEvent(1, true)
	dir.addCallsign(11, 1, "A1", "")
	dir.addCallsign(12, 1, "A2", "")
	store := &memStore{}
	h := newTestHub(dir, store, 32)

	incidentRepo := mocks.NewMockIncidentRepository(ctrl)
	eventRepo := mocks.NewMockEventRepository(ctrl)
	assignmentRepo := mocks.NewMockAssignmentRepository(ctrl)

	var created *models.Incident
	incidentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inc *models.Incident) error {
		inc.ID = 100
		inc.IncidentNumber = 1
		created = inc
		return nil
	})
	incidentRepo.EXPECT().GetByID(gomock.Any(), int64(1), int64(100)).DoAndReturn(func(context.Context, int64, int64) (*models.Incident, error) {
		return created, nil
	}).AnyTimes()
	eventRepo.EXPECT().ListCallsigns(gomock.Any(), int64(1)).Return([]*models.Callsign{
		{ID: 11, EventID: 1, Code: "A1"},
		{ID: 12, EventID: 1, Code: "A2"},
	}, nil)
	assignmentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *models.Assignment) error {
		a.ID = 500
		return nil
	})

	incidents := service.NewIncidentService(incidentRepo, nil, log, &config.Config{GeocodeTimeout: time.Second}, nil)
	assignments := service.NewAssignmentService(assignmentRepo, incidentRepo, eventRepo, h, log, nil)

	a1 := h.NewClient()
	require.NoError(t, h.Join(ctx, a1, 1, id(11)))
	drain(t, a1)

	incident := &models.Incident{EventID: 1, Type: "medical", Latitude: ptrFloat(41.39), Longitude: ptrFloat(2.16)}
	require.NoError(t, incidents.CreateIncident(ctx, incident, ""))
	assert.Equal(t, 1, incident.IncidentNumber)
	assert.Equal(t, models.IncidentActive, incident.State)
	assert.NotNil(t, incident.ActivatedAt)

	assignment, err := assignments.CreateAssignment(ctx, 1, 100, "A1", "")
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentPreNotified, assignment.State)

	// диспетчер - A1 (центра управления нет), он же адресат: ровно одна доставка
	notified := framesOfType(drain(t, a1), FrameNewMessage)
	require.Len(t, notified, 1)
	notice := decodeMessage(t, notified[0])
	assert.Equal(t, models.ContentAssignService, notice.Content.Type)
	require.NotNil(t, notice.ToCallsignID)
	assert.EqualValues(t, 11, *notice.ToCallsignID)

	_, err = h.SendMessage(ctx, 1, 11, nil, models.LocationContent(41.40, 2.17))
	require.NoError(t, err)
	latest, ok, err := h.Latest(ctx, 1, 11)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 41.40, *latest.Content.Lat)
	assert.Equal(t, 2.17, *latest.Content.Lng)

	// уведомление адресовано A1, в истории A2 остается только широковещательное
	a2 := h.NewClient()
	require.NoError(t, h.Join(ctx, a2, 1, id(12)))
	history := decodeHistory(t, drain(t, a2)[0])
	require.Len(t, history.Messages, 1)
	assert.Equal(t, models.ContentLocation, history.Messages[0].Content.Type)
}

func ptrFloat(v float64) *float64 { return &v }
