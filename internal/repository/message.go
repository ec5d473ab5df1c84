package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/event_dispatch/internal/models"
)

// MessageRepository - журнал сообщений, только добавление
type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append сохраняет сообщение и заполняет его ID
func (r *MessageRepository) Append(ctx context.Context, msg *models.Message) error {
	content, err := json.Marshal(msg.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal message content: %w", err)
	}

	query := `
		INSERT INTO messages (event_id, callsign_id, to_callsign_id, kind, content, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;
	`
	err = r.db.QueryRow(ctx, query,
		msg.EventID,
		msg.CallsignID,
		msg.ToCallsignID,
		string(msg.Content.Type),
		content,
		msg.Timestamp,
	).Scan(&msg.ID)
	if err != nil {
		if isPgCode(err, pgerrcode.ForeignKeyViolation) {
			return fmt.Errorf("event %d: %w", msg.EventID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListByEvent возвращает историю мероприятия по времени, при равенстве - по ID.
// Строки с неразбираемым содержимым возвращаются с пустым Content:
// вызывающий проверяет содержимое сам и пропускает такие записи.
func (r *MessageRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Message, error) {
	query := `
		SELECT id, event_id, callsign_id, to_callsign_id, content, sent_at
		FROM messages
		WHERE event_id = $1
		ORDER BY sent_at ASC, id ASC;
	`
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		msg := &models.Message{}
		var raw []byte
		if err := rows.Scan(&msg.ID, &msg.EventID, &msg.CallsignID, &msg.ToCallsignID, &raw, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		if err := json.Unmarshal(raw, &msg.Content); err != nil {
			msg.Content = models.Content{}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return messages, nil
}
