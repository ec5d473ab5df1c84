package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=event.go -destination=mocks/event_mock.go -package=mocks

// EventRepository - справочник мероприятий и позывных
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	SetEventActive(ctx context.Context, id int64, active bool) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	CreateCallsign(ctx context.Context, cs *models.Callsign) error
	GetCallsign(ctx context.Context, id int64) (*models.Callsign, error)
	ListCallsigns(ctx context.Context, eventID int64) ([]*models.Callsign, error)
	UpdateCallsign(ctx context.Context, cs *models.Callsign) error
	DeleteCallsign(ctx context.Context, eventID, id int64) error
}

// RoomCloser выгоняет участников комнаты деактивированного мероприятия
type RoomCloser interface {
	CloseEvent(eventID int64, reason string)
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	ToggleEvent(ctx context.Context, id int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	CreateCallsign(ctx context.Context, cs *models.Callsign) error
	ListCallsigns(ctx context.Context, eventID int64) ([]*models.Callsign, error)
	UpdateCallsign(ctx context.Context, eventID, id int64, patch models.CallsignPatch) (*models.Callsign, error)
	DeleteCallsign(ctx context.Context, eventID, id int64) error
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type eventService struct {
	repo   EventRepository
	rooms  RoomCloser
	logger *logrus.Logger
}

func NewEventService(repo EventRepository, rooms RoomCloser, logger *logrus.Logger) EventService {
	return &eventService{repo: repo, rooms: rooms, logger: logger}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return fmt.Errorf("service: could not create event: %w: name is required", models.ErrValidation)
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("service: could not create event: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"service": "event", "event_id": event.ID}).Info("Event created")
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list events: %w", err)
	}
	return events, nil
}

// ToggleEvent переключает активность; при выключении участники комнаты отключаются, история остается
func (s *eventService) ToggleEvent(ctx context.Context, id int64) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "ToggleEvent",
		"event_id": id,
	})

	current, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not toggle event: %w", err)
	}
	event, err := s.repo.SetEventActive(ctx, id, !current.Active)
	if err != nil {
		return nil, fmt.Errorf("service: could not toggle event: %w", err)
	}

	if !event.Active && s.rooms != nil {
		s.rooms.CloseEvent(id, "event is inactive")
	}
	log.WithField("active", event.Active).Info("Event activation toggled")
	return event, nil
}

// UpdateEvent меняет название и время начала; активность меняется только через ToggleEvent
func (s *eventService) UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not update event: %w", err)
	}
	patch.Apply(event)
	if event.Name == "" {
		return nil, fmt.Errorf("service: could not update event: %w: name is required", models.ErrValidation)
	}
	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("service: could not update event: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"service": "event", "method": "UpdateEvent", "event_id": id}).Info("Event updated")
	return event, nil
}

// DeleteEvent удаляет мероприятие и отключает участников его комнаты
func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("service: could not delete event: %w", err)
	}
	if s.rooms != nil {
		s.rooms.CloseEvent(id, "event was deleted")
	}
	s.logger.WithFields(logrus.Fields{"service": "event", "method": "DeleteEvent", "event_id": id}).Info("Event deleted")
	return nil
}

func validateCallsign(cs *models.Callsign) error {
	if cs.Code == "" {
		return fmt.Errorf("%w: code is required", models.ErrValidation)
	}
	if cs.Color != "" && !colorPattern.MatchString(cs.Color) {
		return fmt.Errorf("%w: color must be #rrggbb", models.ErrValidation)
	}
	if cs.ValidFrom != nil && cs.ValidUntil != nil && cs.ValidUntil.Before(*cs.ValidFrom) {
		return fmt.Errorf("%w: valid_until precedes valid_from", models.ErrValidation)
	}
	return nil
}

func (s *eventService) CreateCallsign(ctx context.Context, cs *models.Callsign) error {
	cs.Code = strings.TrimSpace(cs.Code)
	cs.Name = strings.TrimSpace(cs.Name)
	if err := validateCallsign(cs); err != nil {
		return fmt.Errorf("service: could not create callsign: %w", err)
	}
	if _, err := s.repo.GetEvent(ctx, cs.EventID); err != nil {
		return fmt.Errorf("service: could not create callsign: %w", err)
	}
	if err := s.repo.CreateCallsign(ctx, cs); err != nil {
		return fmt.Errorf("service: could not create callsign: %w", err)
	}
	return nil
}

func (s *eventService) ListCallsigns(ctx context.Context, eventID int64) ([]*models.Callsign, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("service: could not list callsigns: %w", err)
	}
	callsigns, err := s.repo.ListCallsigns(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list callsigns: %w", err)
	}
	return callsigns, nil
}

// eventCallsign возвращает позывной только если он принадлежит мероприятию
func (s *eventService) eventCallsign(ctx context.Context, eventID, id int64) (*models.Callsign, error) {
	cs, err := s.repo.GetCallsign(ctx, id)
	if err != nil {
		return nil, err
	}
	if cs.EventID != eventID {
		return nil, fmt.Errorf("callsign %d in event %d: %w", id, eventID, models.ErrNotFound)
	}
	return cs, nil
}

// UpdateCallsign меняет позывной. Назначения хранят код и имя снимком, поэтому их отображение не меняется.
func (s *eventService) UpdateCallsign(ctx context.Context, eventID, id int64, patch models.CallsignPatch) (*models.Callsign, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "event",
		"method":      "UpdateCallsign",
		"event_id":    eventID,
		"callsign_id": id,
	})

	cs, err := s.eventCallsign(ctx, eventID, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not update callsign: %w", err)
	}
	patch.Apply(cs)
	if err := validateCallsign(cs); err != nil {
		return nil, fmt.Errorf("service: could not update callsign: %w", err)
	}
	if err := s.repo.UpdateCallsign(ctx, cs); err != nil {
		log.WithError(err).Warn("Failed to update callsign in repository")
		return nil, fmt.Errorf("service: could not update callsign: %w", err)
	}
	log.Info("Callsign updated")
	return cs, nil
}

// DeleteCallsign удаляет позывной; журнал сообщений и назначения остаются
func (s *eventService) DeleteCallsign(ctx context.Context, eventID, id int64) error {
	if _, err := s.eventCallsign(ctx, eventID, id); err != nil {
		return fmt.Errorf("service: could not delete callsign: %w", err)
	}
	if err := s.repo.DeleteCallsign(ctx, eventID, id); err != nil {
		return fmt.Errorf("service: could not delete callsign: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"service": "event", "method": "DeleteCallsign", "callsign_id": id}).Info("Callsign deleted")
	return nil
}
