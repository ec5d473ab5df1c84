package hub

import (
	"sort"

	"github.com/shenikar/event_dispatch/internal/models"
)

// Tracker - проекция "последнее местоположение каждого позывного" для одного мероприятия.
// Не потокобезопасен: доступ сериализует мьютекс комнаты.
type Tracker struct {
	latest map[int64]*models.Message
}

func NewTracker() *Tracker {
	return &Tracker{latest: make(map[int64]*models.Message)}
}

// Update учитывает сообщение с местоположением; более старые сообщения игнорируются
func (t *Tracker) Update(msg *models.Message) bool {
	if msg == nil || msg.Content.Type != models.ContentLocation {
		return false
	}
	if current, ok := t.latest[msg.CallsignID]; ok && !msg.NewerThan(current) {
		return false
	}
	t.latest[msg.CallsignID] = msg
	return true
}

// Rebuild пересобирает проекцию из полной истории
func (t *Tracker) Rebuild(history []*models.Message) {
	t.latest = make(map[int64]*models.Message)
	for _, msg := range history {
		t.Update(msg)
	}
}

func (t *Tracker) Latest(callsignID int64) (*models.Message, bool) {
	msg, ok := t.latest[callsignID]
	return msg, ok
}

// All возвращает последние местоположения, упорядоченные по ID позывного
func (t *Tracker) All() []*models.Message {
	out := make([]*models.Message, 0, len(t.latest))
	for _, msg := range t.latest {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CallsignID < out[j].CallsignID })
	return out
}
