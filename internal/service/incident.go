package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/event_dispatch/internal/config"
	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=mocks/incident_mock.go -package=mocks

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, eventID, id int64) (*models.Incident, error)
	List(ctx context.Context, eventID int64, includeDeleted bool) ([]*models.Incident, error)
	UpdateWithLock(ctx context.Context, eventID, id int64, fn func(*models.Incident) (bool, error)) (*models.Incident, error)
	SetAddress(ctx context.Context, id int64, lat, lng float64, address string) (bool, error)

	GetIncidentFromCache(ctx context.Context, eventID, id int64) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, eventID, id int64) error
}

// AddressResolver - внешний сервис обратного геокодирования
type AddressResolver interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident, initial models.IncidentState) error
	GetIncident(ctx context.Context, eventID, id int64) (*models.Incident, error)
	ListIncidents(ctx context.Context, eventID int64, includeDeleted bool) ([]*models.Incident, error)
	UpdateIncident(ctx context.Context, eventID, id int64, patch models.IncidentPatch) (*models.Incident, error)
	TransitionIncident(ctx context.Context, eventID, id int64, state models.IncidentState) (*models.Incident, error)
	DeleteIncident(ctx context.Context, eventID, id int64) error
	RestoreIncident(ctx context.Context, eventID, id int64) error
	GetIncidentAddress(ctx context.Context, eventID, id int64) (string, error)
	Wait()
}

type incidentService struct {
	repo      IncidentRepository
	resolver  AddressResolver
	publisher webhook.WebhookPublisher
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time

	// фоновые запросы геокодирования; Wait дожидается их при остановке
	pending sync.WaitGroup
}

func NewIncidentService(repo IncidentRepository, resolver AddressResolver, logger *logrus.Logger, cfg *config.Config, publisher webhook.WebhookPublisher) IncidentService {
	return &incidentService{
		repo:      repo,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// CreateIncident создает инцидент; номер внутри мероприятия выделяет репозиторий атомарно
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident, initial models.IncidentState) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "CreateIncident",
		"event_id": incident.EventID,
	})
	log.Info("Attempting to create a new incident")

	if initial == "" {
		initial = models.IncidentActive
	}
	if _, err := models.ParseIncidentState(string(initial)); err != nil {
		return fmt.Errorf("service: could not create incident: %w", err)
	}
	if (incident.Latitude == nil) != (incident.Longitude == nil) {
		return fmt.Errorf("service: could not create incident: %w: lat and lng must be set together", models.ErrValidation)
	}
	if incident.HasCoordinates() {
		if err := models.ValidateCoordinates(incident.Latitude, incident.Longitude); err != nil {
			return fmt.Errorf("service: could not create incident: %w", err)
		}
	}

	now := s.now()
	incident.CreatedAt = now
	incident.UpdatedAt = now
	incident.Address = ""
	incident.Deleted = false
	incident.DeletedAt = nil
	incident.Enter(initial, now)

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithFields(logrus.Fields{
		"incident_id":     incident.ID,
		"incident_number": incident.IncidentNumber,
	}).Info("Incident created successfully")

	if incident.HasCoordinates() {
		s.resolveAddressAsync(incident.EventID, incident.ID, *incident.Latitude, *incident.Longitude)
	}
	s.publish(ctx, webhook.EventIncidentCreated, incident, nil)
	return nil
}

// GetIncident получает инцидент по ID (в том числе удаленный)
func (s *incidentService) GetIncident(ctx context.Context, eventID, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"event_id":    eventID,
		"incident_id": id,
	})
	log.Debug("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, eventID, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, eventID, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает инциденты мероприятия по возрастанию номера
func (s *incidentService) ListIncidents(ctx context.Context, eventID int64, includeDeleted bool) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":         "incident",
		"method":          "ListIncidents",
		"event_id":        eventID,
		"include_deleted": includeDeleted,
	})

	incidents, err := s.repo.List(ctx, eventID, includeDeleted)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Debug("Incidents listed successfully")
	return incidents, nil
}

// UpdateIncident применяет только переданные поля; смена координат сбрасывает адрес и запускает геокодирование
func (s *incidentService) UpdateIncident(ctx context.Context, eventID, id int64, patch models.IncidentPatch) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"event_id":    eventID,
		"incident_id": id,
	})
	log.Info("Attempting to update incident")

	if patch.State != nil {
		if _, err := models.ParseIncidentState(string(*patch.State)); err != nil {
			return nil, fmt.Errorf("service: could not update incident: %w", err)
		}
	}
	if err := validatePatchCoordinates(patch); err != nil {
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}

	var coordsChanged, stateChanged bool
	updated, err := s.repo.UpdateWithLock(ctx, eventID, id, func(inc *models.Incident) (bool, error) {
		before := *inc
		coordsChanged = patch.Apply(inc)
		if (inc.Latitude == nil) != (inc.Longitude == nil) {
			return false, fmt.Errorf("%w: lat and lng must be set together", models.ErrValidation)
		}
		if coordsChanged {
			inc.Address = ""
		}
		if patch.State != nil {
			stateChanged = inc.Transition(*patch.State, s.now())
		}
		return coordsChanged || stateChanged || fieldsChanged(&before, inc), nil
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}
	s.invalidate(ctx, log, eventID, id)

	if coordsChanged && updated.HasCoordinates() {
		s.resolveAddressAsync(eventID, updated.ID, *updated.Latitude, *updated.Longitude)
	}
	if stateChanged {
		s.publish(ctx, webhook.EventIncidentStateChanged, updated, nil)
	}
	log.Info("Incident updated successfully")
	return updated, nil
}

// TransitionIncident переводит инцидент в состояние; повтор текущего состояния ничего не меняет
func (s *incidentService) TransitionIncident(ctx context.Context, eventID, id int64, state models.IncidentState) (*models.Incident, error) {
	return s.UpdateIncident(ctx, eventID, id, models.IncidentPatch{State: &state})
}

// DeleteIncident выполняет мягкое удаление
func (s *incidentService) DeleteIncident(ctx context.Context, eventID, id int64) error {
	return s.setDeleted(ctx, eventID, id, true)
}

// RestoreIncident снимает отметку удаления
func (s *incidentService) RestoreIncident(ctx context.Context, eventID, id int64) error {
	return s.setDeleted(ctx, eventID, id, false)
}

func (s *incidentService) setDeleted(ctx context.Context, eventID, id int64, deleted bool) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "setDeleted",
		"event_id":    eventID,
		"incident_id": id,
		"deleted":     deleted,
	})

	_, err := s.repo.UpdateWithLock(ctx, eventID, id, func(inc *models.Incident) (bool, error) {
		if inc.Deleted == deleted {
			return false, nil
		}
		inc.Deleted = deleted
		if deleted {
			at := s.now()
			inc.DeletedAt = &at
		} else {
			inc.DeletedAt = nil
		}
		return true, nil
	})
	if err != nil {
		log.WithError(err).Warn("Failed to toggle incident deletion")
		return fmt.Errorf("service: could not change deletion of incident %d: %w", id, err)
	}
	s.invalidate(ctx, log, eventID, id)

	log.Info("Incident deletion flag changed")
	return nil
}

// GetIncidentAddress возвращает сохраненный адрес; при его отсутствии определяет адрес синхронно
func (s *incidentService) GetIncidentAddress(ctx context.Context, eventID, id int64) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncidentAddress",
		"event_id":    eventID,
		"incident_id": id,
	})

	incident, err := s.repo.GetByID(ctx, eventID, id)
	if err != nil {
		return "", fmt.Errorf("service: could not get incident address: %w", err)
	}
	if incident.Address != "" || !incident.HasCoordinates() {
		return incident.Address, nil
	}

	address, ok := s.resolveAddress(ctx, eventID, incident.ID, *incident.Latitude, *incident.Longitude)
	if !ok {
		log.Warn("Address is not available for incident")
		return "", nil
	}
	return address, nil
}

// Wait дожидается завершения фоновых запросов геокодирования
func (s *incidentService) Wait() {
	s.pending.Wait()
}

func (s *incidentService) resolveAddressAsync(eventID, id int64, lat, lng float64) {
	if s.resolver == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.resolveAddress(context.Background(), eventID, id, lat, lng)
	}()
}

// resolveAddress ошибки внешнего сервиса только логирует: на инцидент они не влияют.
// Сохраненный адрес сбрасывает кэш инцидента.
func (s *incidentService) resolveAddress(ctx context.Context, eventID, id int64, lat, lng float64) (string, bool) {
	if s.resolver == nil {
		return "", false
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "resolveAddress",
		"event_id":    eventID,
		"incident_id": id,
	})

	ctx, cancel := context.WithTimeout(ctx, s.cfg.GeocodeTimeout)
	defer cancel()

	address, err := s.resolver.Reverse(ctx, lat, lng)
	if err != nil {
		log.WithError(err).Warn("Address resolution failed")
		return "", false
	}
	if address == "" {
		return "", false
	}

	stored, err := s.repo.SetAddress(ctx, id, lat, lng, address)
	if err != nil {
		log.WithError(err).Warn("Failed to store resolved address")
		return "", false
	}
	if !stored {
		// координаты успели измениться, адрес устарел
		log.Debug("Discarding address for outdated coordinates")
		return "", false
	}
	s.invalidate(ctx, log, eventID, id)
	return address, true
}

func (s *incidentService) invalidate(ctx context.Context, log *logrus.Entry, eventID, id int64) {
	if err := s.repo.InvalidateIncidentCache(ctx, eventID, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
}

func (s *incidentService) publish(ctx context.Context, eventType string, incident *models.Incident, assignment *models.Assignment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, webhook.NewDispatchEvent(eventType, incident, assignment)); err != nil {
		s.logger.WithError(err).WithField("type", eventType).Warn("Failed to publish dispatch webhook")
	}
}

func validatePatchCoordinates(patch models.IncidentPatch) error {
	if patch.Latitude != nil && (*patch.Latitude < -90 || *patch.Latitude > 90) {
		return fmt.Errorf("%w: lat %v out of range", models.ErrValidation, *patch.Latitude)
	}
	if patch.Longitude != nil && (*patch.Longitude < -180 || *patch.Longitude > 180) {
		return fmt.Errorf("%w: lng %v out of range", models.ErrValidation, *patch.Longitude)
	}
	return nil
}

func fieldsChanged(before, after *models.Incident) bool {
	return before.ReportedBy != after.ReportedBy ||
		before.Type != after.Type ||
		before.Description != after.Description ||
		before.LocationNote != after.LocationNote ||
		before.BibNumber != after.BibNumber ||
		before.Pathology != after.Pathology
}
