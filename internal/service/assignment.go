package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=assignment.go -destination=mocks/assignment_mock.go -package=mocks

// AssignmentRepository определяет контракт для хранения назначений
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, incidentID, id int64) (*models.Assignment, error)
	ListByIncidents(ctx context.Context, incidentIDs []int64) (map[int64][]*models.Assignment, error)
	UpdateWithLock(ctx context.Context, incidentID, id int64, fn func(*models.Assignment) (bool, error)) (*models.Assignment, error)
	Delete(ctx context.Context, incidentID, id int64) error
}

// Notifier отправляет сообщение через хаб так же, как это делает участник
type Notifier interface {
	SendMessage(ctx context.Context, eventID, senderID int64, to *int64, content models.Content) (*models.Message, error)
}

// AssignmentService определяет контракт для диспетчеризации ресурсов на инциденты
type AssignmentService interface {
	CreateAssignment(ctx context.Context, eventID, incidentID int64, target string, initial models.AssignmentState) (*models.Assignment, error)
	TransitionAssignment(ctx context.Context, eventID, incidentID, id int64, state models.AssignmentState) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, eventID, incidentID, id int64) error
	ListAssignments(ctx context.Context, eventID, incidentID int64) ([]*models.Assignment, error)
	ListAssignmentsByIncidents(ctx context.Context, incidentIDs []int64) (map[int64][]*models.Assignment, error)
}

type assignmentService struct {
	repo      AssignmentRepository
	incidents IncidentRepository
	events    EventRepository
	notifier  Notifier
	publisher webhook.WebhookPublisher
	logger    *logrus.Logger
	now       func() time.Time
}

func NewAssignmentService(repo AssignmentRepository, incidents IncidentRepository, events EventRepository, notifier Notifier, logger *logrus.Logger, publisher webhook.WebhookPublisher) AssignmentService {
	return &assignmentService{
		repo:      repo,
		incidents: incidents,
		events:    events,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// CreateAssignment разрешает цель один раз: точное совпадение с отображаемым именем
// или кодом позывного дает назначение на позывной, иначе текст становится меткой службы.
func (s *assignmentService) CreateAssignment(ctx context.Context, eventID, incidentID int64, target string, initial models.AssignmentState) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "assignment",
		"method":      "CreateAssignment",
		"event_id":    eventID,
		"incident_id": incidentID,
	})

	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("service: could not create assignment: %w: target is required", models.ErrValidation)
	}
	if initial == "" {
		initial = models.AssignmentPreNotified
	}
	if _, err := models.ParseAssignmentState(string(initial)); err != nil {
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}

	incident, err := s.incidents.GetByID(ctx, eventID, incidentID)
	if err != nil {
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}
	callsigns, err := s.events.ListCallsigns(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}

	var assignment *models.Assignment
	if cs := matchCallsign(callsigns, target); cs != nil {
		assignment = models.NewCallsignAssignment(incidentID, cs)
	} else {
		assignment = models.NewServiceAssignment(incidentID, target)
	}
	if err := assignment.Validate(); err != nil {
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}

	now := s.now()
	assignment.CreatedAt = now
	assignment.Enter(initial, now)

	if err := s.repo.Create(ctx, assignment); err != nil {
		log.WithError(err).Error("Failed to create assignment in repository")
		return nil, fmt.Errorf("service: could not create assignment: %w", err)
	}
	log.WithFields(logrus.Fields{
		"assignment_id": assignment.ID,
		"target":        assignment.DisplayName(),
	}).Info("Assignment created successfully")

	if assignment.CallsignID != nil {
		// уведомление не влияет на результат: назначение уже сохранено
		if err := s.notifyAssignee(ctx, incident, assignment, callsigns); err != nil {
			log.WithError(err).Warn("Failed to notify assigned callsign")
		}
	}
	s.publish(ctx, webhook.EventAssignmentCreated, incident, assignment)
	return assignment, nil
}

// TransitionAssignment - те же правила накопления отметок времени, что и у инцидентов
func (s *assignmentService) TransitionAssignment(ctx context.Context, eventID, incidentID, id int64, state models.AssignmentState) (*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "assignment",
		"method":        "TransitionAssignment",
		"incident_id":   incidentID,
		"assignment_id": id,
		"state":         state,
	})

	if _, err := models.ParseAssignmentState(string(state)); err != nil {
		return nil, fmt.Errorf("service: could not transition assignment: %w", err)
	}
	incident, err := s.incidents.GetByID(ctx, eventID, incidentID)
	if err != nil {
		return nil, fmt.Errorf("service: could not transition assignment: %w", err)
	}

	var changed bool
	updated, err := s.repo.UpdateWithLock(ctx, incidentID, id, func(a *models.Assignment) (bool, error) {
		changed = a.Transition(state, s.now())
		return changed, nil
	})
	if err != nil {
		log.WithError(err).Warn("Failed to transition assignment")
		return nil, fmt.Errorf("service: could not transition assignment: %w", err)
	}

	if changed {
		log.Info("Assignment state changed")
		s.publish(ctx, webhook.EventAssignmentStateChanged, incident, updated)
	}
	return updated, nil
}

// DeleteAssignment удаляет назначение безвозвратно
func (s *assignmentService) DeleteAssignment(ctx context.Context, eventID, incidentID, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "assignment",
		"method":        "DeleteAssignment",
		"incident_id":   incidentID,
		"assignment_id": id,
	})

	incident, err := s.incidents.GetByID(ctx, eventID, incidentID)
	if err != nil {
		return fmt.Errorf("service: could not delete assignment: %w", err)
	}
	assignment, err := s.repo.GetByID(ctx, incidentID, id)
	if err != nil {
		return fmt.Errorf("service: could not delete assignment: %w", err)
	}
	if err := s.repo.Delete(ctx, incidentID, id); err != nil {
		log.WithError(err).Warn("Failed to delete assignment")
		return fmt.Errorf("service: could not delete assignment: %w", err)
	}

	log.Info("Assignment deleted")
	s.publish(ctx, webhook.EventAssignmentDeleted, incident, assignment)
	return nil
}

// ListAssignments возвращает назначения одного инцидента мероприятия
func (s *assignmentService) ListAssignments(ctx context.Context, eventID, incidentID int64) ([]*models.Assignment, error) {
	if _, err := s.incidents.GetByID(ctx, eventID, incidentID); err != nil {
		return nil, fmt.Errorf("service: could not list assignments: %w", err)
	}
	byIncident, err := s.repo.ListByIncidents(ctx, []int64{incidentID})
	if err != nil {
		return nil, fmt.Errorf("service: could not list assignments: %w", err)
	}
	return byIncident[incidentID], nil
}

func (s *assignmentService) ListAssignmentsByIncidents(ctx context.Context, incidentIDs []int64) (map[int64][]*models.Assignment, error) {
	byIncident, err := s.repo.ListByIncidents(ctx, incidentIDs)
	if err != nil {
		return nil, fmt.Errorf("service: could not list assignments: %w", err)
	}
	return byIncident, nil
}

func (s *assignmentService) notifyAssignee(ctx context.Context, incident *models.Incident, assignment *models.Assignment, callsigns []*models.Callsign) error {
	if s.notifier == nil {
		return nil
	}
	dispatcher := pickDispatcher(callsigns)
	if dispatcher == nil {
		return fmt.Errorf("event %d has no callsigns to send from", incident.EventID)
	}

	summary := IncidentSummary(incident)
	content := models.TextContent(summary)
	if incident.HasCoordinates() {
		content = models.AssignServiceContent(*incident.Latitude, *incident.Longitude, summary)
	}

	_, err := s.notifier.SendMessage(ctx, incident.EventID, dispatcher.ID, assignment.CallsignID, content)
	return err
}

func (s *assignmentService) publish(ctx context.Context, eventType string, incident *models.Incident, assignment *models.Assignment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, webhook.NewDispatchEvent(eventType, incident, assignment)); err != nil {
		s.logger.WithError(err).WithField("type", eventType).Warn("Failed to publish dispatch webhook")
	}
}

// matchCallsign ищет точное совпадение по отображаемому имени, затем по коду
func matchCallsign(callsigns []*models.Callsign, target string) *models.Callsign {
	for _, cs := range callsigns {
		if cs.DisplayName() == target {
			return cs
		}
	}
	for _, cs := range callsigns {
		if cs.Code == target {
			return cs
		}
	}
	return nil
}

// pickDispatcher - первый центр управления, иначе первый позывной мероприятия
func pickDispatcher(callsigns []*models.Callsign) *models.Callsign {
	for _, cs := range callsigns {
		if cs.IsControlCenter() {
			return cs
		}
	}
	if len(callsigns) > 0 {
		return callsigns[0]
	}
	return nil
}

// IncidentSummary - текст уведомления о назначении
func IncidentSummary(incident *models.Incident) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Incident #%d", incident.IncidentNumber)
	if incident.Type != "" {
		fmt.Fprintf(&b, " [%s]", incident.Type)
	}
	if incident.Description != "" {
		fmt.Fprintf(&b, ": %s", incident.Description)
	}
	location := incident.LocationNote
	if location == "" {
		location = incident.Address
	}
	if location != "" {
		fmt.Fprintf(&b, "\nLocation: %s", location)
	}
	if incident.BibNumber != "" {
		fmt.Fprintf(&b, "\nBib: %s", incident.BibNumber)
	}
	if incident.ReportedBy != "" {
		fmt.Fprintf(&b, "\nReported by: %s", incident.ReportedBy)
	}
	fmt.Fprintf(&b, "\nState: %s", incident.State)
	return b.String()
}
