package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/service"
)

// maxNumberingAttempts - сколько раз повторять выделение номера при конфликте
const maxNumberingAttempts = 5

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

const incidentColumns = `
	id, event_id, incident_number, state, reported_by, type, description,
	lat, lng, address, location_note, bib_number, pathology,
	created_at, updated_at,
	pre_incident_at, activated_at, standby_at, resolved_at,
	deleted, deleted_at`

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.EventID,
		&incident.IncidentNumber,
		&incident.State,
		&incident.ReportedBy,
		&incident.Type,
		&incident.Description,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Address,
		&incident.LocationNote,
		&incident.BibNumber,
		&incident.Pathology,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&incident.PreIncidentAt,
		&incident.ActivatedAt,
		&incident.StandbyAt,
		&incident.ResolvedAt,
		&incident.Deleted,
		&incident.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// Create создает инцидент и атомарно выделяет ему следующий номер внутри мероприятия.
// Строка счетчика блокируется до конца транзакции; уникальный индекс
// (event_id, incident_number) страхует от рассинхронизации счетчика.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	var lastErr error
	for attempt := 0; attempt < maxNumberingAttempts; attempt++ {
		err := r.createOnce(ctx, incident)
		if err == nil {
			return nil
		}
		if !isRetryableNumbering(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("failed to allocate incident number after %d attempts: %w (%v)", maxNumberingAttempts, models.ErrConflict, lastErr)
}

func (r *IncidentRepository) createOnce(ctx context.Context, incident *models.Incident) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	counterQuery := `
		INSERT INTO event_incident_counters (event_id, last_number)
		VALUES ($1, (SELECT COALESCE(MAX(incident_number), 0) + 1 FROM incidents WHERE event_id = $1))
		ON CONFLICT (event_id) DO UPDATE
			SET last_number = GREATEST(event_incident_counters.last_number + 1, EXCLUDED.last_number)
		RETURNING last_number;
	`
	var number int
	if err := tx.QueryRow(ctx, counterQuery, incident.EventID).Scan(&number); err != nil {
		if isPgCode(err, pgerrcode.ForeignKeyViolation) {
			return fmt.Errorf("event %d: %w", incident.EventID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to allocate incident number: %w", err)
	}

	insertQuery := `
		INSERT INTO incidents (
			event_id, incident_number, state, reported_by, type, description,
			lat, lng, address, location_note, bib_number, pathology,
			created_at, updated_at,
			pre_incident_at, activated_at, standby_at, resolved_at,
			deleted, deleted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		incident.EventID,
		number,
		incident.State,
		incident.ReportedBy,
		incident.Type,
		incident.Description,
		incident.Latitude,
		incident.Longitude,
		incident.Address,
		incident.LocationNote,
		incident.BibNumber,
		incident.Pathology,
		incident.CreatedAt,
		incident.UpdatedAt,
		incident.PreIncidentAt,
		incident.ActivatedAt,
		incident.StandbyAt,
		incident.ResolvedAt,
		incident.Deleted,
		incident.DeletedAt,
	).Scan(&incident.ID)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit incident: %w", err)
	}
	incident.IncidentNumber = number
	return nil
}

func isRetryableNumbering(err error) bool {
	return isPgCode(err, pgerrcode.UniqueViolation) ||
		isPgCode(err, pgerrcode.SerializationFailure) ||
		isPgCode(err, pgerrcode.DeadlockDetected)
}

// GetByID возвращает инцидент мероприятия, включая удаленные
func (r *IncidentRepository) GetByID(ctx context.Context, eventID, id int64) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE event_id = $1 AND id = $2;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, eventID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %d in event %d: %w", id, eventID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// List возвращает инциденты мероприятия по возрастанию номера
func (r *IncidentRepository) List(ctx context.Context, eventID int64, includeDeleted bool) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE event_id = $1 AND ($2 OR NOT deleted)
		ORDER BY incident_number ASC;
	`
	rows, err := r.db.Query(ctx, query, eventID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// UpdateWithLock читает инцидент под SELECT ... FOR UPDATE, передает его в fn
// и сохраняет, если fn сообщила об изменениях.
func (r *IncidentRepository) UpdateWithLock(ctx context.Context, eventID, id int64, fn func(*models.Incident) (bool, error)) (*models.Incident, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE event_id = $1 AND id = $2 FOR UPDATE;`
	incident, err := scanIncident(tx.QueryRow(ctx, query, eventID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %d in event %d: %w", id, eventID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock incident: %w", err)
	}

	changed, err := fn(incident)
	if err != nil {
		return nil, err
	}
	if !changed {
		return incident, nil
	}

	update := `
		UPDATE incidents SET
			state = $1,
			reported_by = $2,
			type = $3,
			description = $4,
			lat = $5,
			lng = $6,
			address = $7,
			location_note = $8,
			bib_number = $9,
			pathology = $10,
			pre_incident_at = $11,
			activated_at = $12,
			standby_at = $13,
			resolved_at = $14,
			deleted = $15,
			deleted_at = $16,
			updated_at = NOW()
		WHERE id = $17
		RETURNING updated_at;
	`
	err = tx.QueryRow(ctx, update,
		incident.State,
		incident.ReportedBy,
		incident.Type,
		incident.Description,
		incident.Latitude,
		incident.Longitude,
		incident.Address,
		incident.LocationNote,
		incident.BibNumber,
		incident.Pathology,
		incident.PreIncidentAt,
		incident.ActivatedAt,
		incident.StandbyAt,
		incident.ResolvedAt,
		incident.Deleted,
		incident.DeletedAt,
		incident.ID,
	).Scan(&incident.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit incident update: %w", err)
	}
	return incident, nil
}

// SetAddress сохраняет адрес, только если координаты инцидента не изменились с момента запроса
func (r *IncidentRepository) SetAddress(ctx context.Context, id int64, lat, lng float64, address string) (bool, error) {
	query := `UPDATE incidents SET address = $1 WHERE id = $2 AND lat = $3 AND lng = $4;`
	cmdTag, err := r.db.Exec(ctx, query, address, id, lat, lng)
	if err != nil {
		return false, fmt.Errorf("failed to set incident address: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func incidentCacheKey(eventID, id int64) string {
	return fmt.Sprintf("incident:%d:%d", eventID, id)
}

// GetIncidentFromCache пытается получить инцидент из Redis; промах - это (nil, nil)
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, eventID, id int64) (*models.Incident, error) {
	if r.redisClient == nil {
		return nil, nil
	}
	val, err := r.redisClient.Get(ctx, incidentCacheKey(eventID, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	if r.redisClient == nil {
		return nil
	}
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, incidentCacheKey(incident.EventID, incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, eventID, id int64) error {
	if r.redisClient == nil {
		return nil
	}
	if err := r.redisClient.Del(ctx, incidentCacheKey(eventID, id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
