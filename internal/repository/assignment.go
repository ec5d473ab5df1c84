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

type AssignmentRepository struct {
	db *pgxpool.Pool
}

func NewAssignmentRepository(db *pgxpool.Pool) service.AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `
	id, incident_id, callsign_id, service_label, target_code, target_name, state, created_at,
	pre_notified_at, notified_at, en_route_at, on_scene_at, closed_at`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	a := &models.Assignment{}
	err := row.Scan(
		&a.ID,
		&a.IncidentID,
		&a.CallsignID,
		&a.ServiceLabel,
		&a.TargetCode,
		&a.TargetName,
		&a.State,
		&a.CreatedAt,
		&a.PreNotifiedAt,
		&a.NotifiedAt,
		&a.EnRouteAt,
		&a.OnSceneAt,
		&a.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create сохраняет назначение вместе со снимком цели
func (r *AssignmentRepository) Create(ctx context.Context, a *models.Assignment) error {
	query := `
		INSERT INTO incident_assignments (
			incident_id, callsign_id, service_label, target_code, target_name, state, created_at,
			pre_notified_at, notified_at, en_route_at, on_scene_at, closed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		a.IncidentID,
		a.CallsignID,
		a.ServiceLabel,
		a.TargetCode,
		a.TargetName,
		a.State,
		a.CreatedAt,
		a.PreNotifiedAt,
		a.NotifiedAt,
		a.EnRouteAt,
		a.OnSceneAt,
		a.ClosedAt,
	).Scan(&a.ID)
	if err != nil {
		if isPgCode(err, pgerrcode.ForeignKeyViolation) {
			return fmt.Errorf("incident %d: %w", a.IncidentID, models.ErrNotFound)
		}
		if isPgCode(err, pgerrcode.CheckViolation) {
			return fmt.Errorf("invalid assignment: %w", models.ErrValidation)
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// GetByID возвращает назначение инцидента
func (r *AssignmentRepository) GetByID(ctx context.Context, incidentID, id int64) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM incident_assignments WHERE incident_id = $1 AND id = $2;`
	a, err := scanAssignment(r.db.QueryRow(ctx, query, incidentID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("assignment %d in incident %d: %w", id, incidentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assignment by id: %w", err)
	}
	return a, nil
}

// ListByIncidents возвращает назначения, сгруппированные по ID инцидента.
// Каждый запрошенный ID присутствует в результате, даже без назначений.
func (r *AssignmentRepository) ListByIncidents(ctx context.Context, incidentIDs []int64) (map[int64][]*models.Assignment, error) {
	result := make(map[int64][]*models.Assignment, len(incidentIDs))
	for _, id := range incidentIDs {
		result[id] = make([]*models.Assignment, 0)
	}
	if len(incidentIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + assignmentColumns + `
		FROM incident_assignments
		WHERE incident_id = ANY($1)
		ORDER BY incident_id ASC, id ASC;
	`
	rows, err := r.db.Query(ctx, query, incidentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		result[a.IncidentID] = append(result[a.IncidentID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return result, nil
}

// UpdateWithLock блокирует родительский инцидент, так что изменения назначений
// одного инцидента выполняются строго по очереди.
func (r *AssignmentRepository) UpdateWithLock(ctx context.Context, incidentID, id int64, fn func(*models.Assignment) (bool, error)) (*models.Assignment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var locked int64
	if err := tx.QueryRow(ctx, `SELECT id FROM incidents WHERE id = $1 FOR UPDATE;`, incidentID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %d: %w", incidentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock incident: %w", err)
	}

	query := `SELECT ` + assignmentColumns + ` FROM incident_assignments WHERE incident_id = $1 AND id = $2;`
	a, err := scanAssignment(tx.QueryRow(ctx, query, incidentID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("assignment %d in incident %d: %w", id, incidentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	changed, err := fn(a)
	if err != nil {
		return nil, err
	}
	if !changed {
		return a, nil
	}

	update := `
		UPDATE incident_assignments SET
			state = $1,
			pre_notified_at = $2,
			notified_at = $3,
			en_route_at = $4,
			on_scene_at = $5,
			closed_at = $6
		WHERE id = $7;
	`
	if _, err := tx.Exec(ctx, update,
		a.State,
		a.PreNotifiedAt,
		a.NotifiedAt,
		a.EnRouteAt,
		a.OnSceneAt,
		a.ClosedAt,
		a.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit assignment update: %w", err)
	}
	return a, nil
}

// Delete удаляет назначение безвозвратно
func (r *AssignmentRepository) Delete(ctx context.Context, incidentID, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM incident_assignments WHERE incident_id = $1 AND id = $2;`, incidentID, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %d in incident %d: %w", id, incidentID, models.ErrNotFound)
	}
	return nil
}
