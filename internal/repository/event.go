package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/service"
)

// EventRepository хранит мероприятия и их позывные
type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

var _ service.EventRepository = (*EventRepository)(nil)

const callsignColumns = `id, event_id, code, name, location, valid_from, valid_until, color, created_at`

// CreateEvent создает мероприятие
func (r *EventRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, starts_at, active)
		VALUES ($1, $2, $3) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query, event.Name, event.StartsAt, event.Active).
		Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetEvent возвращает мероприятие по ID
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event := &models.Event{}
	query := `SELECT id, name, starts_at, active, created_at FROM events WHERE id = $1;`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&event.ID, &event.Name, &event.StartsAt, &event.Active, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return event, nil
}

// ListEvents возвращает мероприятия, ближайшие по времени начала первыми
func (r *EventRepository) ListEvents(ctx context.Context) ([]*models.Event, error) {
	query := `SELECT id, name, starts_at, active, created_at FROM events ORDER BY starts_at DESC, id DESC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event := &models.Event{}
		if err := rows.Scan(&event.ID, &event.Name, &event.StartsAt, &event.Active, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return events, nil
}

// SetEventActive включает или выключает мероприятие
func (r *EventRepository) SetEventActive(ctx context.Context, id int64, active bool) (*models.Event, error) {
	event := &models.Event{}
	query := `
		UPDATE events SET active = $1 WHERE id = $2
		RETURNING id, name, starts_at, active, created_at;
	`
	err := r.db.QueryRow(ctx, query, active, id).
		Scan(&event.ID, &event.Name, &event.StartsAt, &event.Active, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// UpdateEvent сохраняет название и время начала мероприятия
func (r *EventRepository) UpdateEvent(ctx context.Context, event *models.Event) error {
	query := `UPDATE events SET name = $1, starts_at = $2 WHERE id = $3 RETURNING active, created_at;`
	err := r.db.QueryRow(ctx, query, event.Name, event.StartsAt, event.ID).
		Scan(&event.Active, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("event %d: %w", event.ID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteEvent удаляет мероприятие вместе с позывными, инцидентами и журналом (ON DELETE CASCADE)
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// CreateCallsign регистрирует позывной; код уникален в пределах мероприятия
func (r *EventRepository) CreateCallsign(ctx context.Context, cs *models.Callsign) error {
	query := `
		INSERT INTO callsigns (event_id, code, name, location, valid_from, valid_until, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		cs.EventID,
		cs.Code,
		cs.Name,
		cs.Location,
		cs.ValidFrom,
		cs.ValidUntil,
		cs.Color,
	).Scan(&cs.ID, &cs.CreatedAt)
	if err != nil {
		switch {
		case isPgCode(err, pgerrcode.UniqueViolation):
			return fmt.Errorf("callsign %q already registered: %w", cs.Code, models.ErrConflict)
		case isPgCode(err, pgerrcode.ForeignKeyViolation):
			return fmt.Errorf("event %d: %w", cs.EventID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to create callsign: %w", err)
	}
	return nil
}

// UpdateCallsign сохраняет все изменяемые поля позывного
func (r *EventRepository) UpdateCallsign(ctx context.Context, cs *models.Callsign) error {
	query := `
		UPDATE callsigns SET
			code = $1, name = $2, location = $3, valid_from = $4, valid_until = $5, color = $6
		WHERE id = $7 AND event_id = $8;
	`
	tag, err := r.db.Exec(ctx, query,
		cs.Code,
		cs.Name,
		cs.Location,
		cs.ValidFrom,
		cs.ValidUntil,
		cs.Color,
		cs.ID,
		cs.EventID,
	)
	if err != nil {
		if isPgCode(err, pgerrcode.UniqueViolation) {
			return fmt.Errorf("callsign %q already registered: %w", cs.Code, models.ErrConflict)
		}
		return fmt.Errorf("failed to update callsign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("callsign %d: %w", cs.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteCallsign удаляет позывной. Сообщения и назначения хранят его ID без внешнего ключа и остаются.
func (r *EventRepository) DeleteCallsign(ctx context.Context, eventID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM callsigns WHERE id = $1 AND event_id = $2;`, id, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete callsign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("callsign %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// GetCallsign возвращает позывной по ID
func (r *EventRepository) GetCallsign(ctx context.Context, id int64) (*models.Callsign, error) {
	query := `SELECT ` + callsignColumns + ` FROM callsigns WHERE id = $1;`
	cs, err := scanCallsign(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("callsign %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get callsign by id: %w", err)
	}
	return cs, nil
}

// ListCallsigns возвращает позывные мероприятия в порядке регистрации
func (r *EventRepository) ListCallsigns(ctx context.Context, eventID int64) ([]*models.Callsign, error) {
	query := `SELECT ` + callsignColumns + ` FROM callsigns WHERE event_id = $1 ORDER BY id ASC;`
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list callsigns: %w", err)
	}
	defer rows.Close()

	callsigns := make([]*models.Callsign, 0)
	for rows.Next() {
		cs, err := scanCallsign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan callsign row: %w", err)
		}
		callsigns = append(callsigns, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return callsigns, nil
}

func scanCallsign(row pgx.Row) (*models.Callsign, error) {
	cs := &models.Callsign{}
	err := row.Scan(
		&cs.ID,
		&cs.EventID,
		&cs.Code,
		&cs.Name,
		&cs.Location,
		&cs.ValidFrom,
		&cs.ValidUntil,
		&cs.Color,
		&cs.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cs, nil
}
