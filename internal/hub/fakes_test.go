package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	mu        sync.Mutex
	events    map[int64]*models.Event
	callsigns map[int64]*models.Callsign

	// afterGetEvent вызывается после каждого чтения мероприятия, без блокировки справочника
	afterGetEvent func(id int64)
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		events:    make(map[int64]*models.Event),
		callsigns: make(map[int64]*models.Callsign),
	}
}

func (d *fakeDirectory) addEvent(id int64, active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events[id] = &models.Event{ID: id, Name: fmt.Sprintf("E%d", id), Active: active}
}

func (d *fakeDirectory) addCallsign(id, eventID int64, code, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callsigns[id] = &models.Callsign{ID: id, EventID: eventID, Code: code, Name: name}
}

func (d *fakeDirectory) setActive(id int64, active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events[id].Active = active
}

func (d *fakeDirectory) GetEvent(_ context.Context, id int64) (*models.Event, error) {
	d.mu.Lock()
	ev, ok := d.events[id]
	var cp models.Event
	if ok {
		cp = *ev
	}
	hook := d.afterGetEvent
	d.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("event %d: %w", id, models.ErrNotFound)
	}
	if hook != nil {
		hook(id)
	}
	return &cp, nil
}

func (d *fakeDirectory) GetCallsign(_ context.Context, id int64) (*models.Callsign, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cs, ok := d.callsigns[id]
	if !ok {
		return nil, fmt.Errorf("callsign %d: %w", id, models.ErrNotFound)
	}
	cp := *cs
	return &cp, nil
}

// memStore - журнал в памяти с той же сортировкой, что и у PostgreSQL
type memStore struct {
	mu        sync.Mutex
	seq       int64
	messages  []*models.Message
	appendErr error
	// ошибка контекста в момент записи; после возврата SendMessage контекст уже отменен
	appendCtxErr error
}

func (s *memStore) Append(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendCtxErr = ctx.Err()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.seq++
	msg.ID = s.seq
	cp := *msg
	s.messages = append(s.messages, &cp)
	return nil
}

func (s *memStore) ListByEvent(_ context.Context, eventID int64) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Message, 0)
	for _, m := range s.messages {
		if m.EventID == eventID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (s *memStore) raw(msg *models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	msg.ID = s.seq
	s.messages = append(s.messages, msg)
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

var errStoreDown = errors.New("store down")

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestHub(dir *fakeDirectory, store *memStore, buffer int) *Hub {
	return New(dir, store, quietLogger(), Options{SendBuffer: buffer, WriteTimeout: time.Second})
}

// drain читает все кадры, уже стоящие в очереди клиента
func drain(t *testing.T, c *Client) []Frame {
	t.Helper()
	var frames []Frame
	for {
		select {
		case raw := <-c.Send():
			var f Frame
			require.NoError(t, json.Unmarshal(raw, &f))
			frames = append(frames, f)
		default:
			return frames
		}
	}
}

func framesOfType(frames []Frame, typ string) []Frame {
	var out []Frame
	for _, f := range frames {
		if f.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

func decodeMessage(t *testing.T, f Frame) *models.Message {
	t.Helper()
	var msg models.Message
	require.NoError(t, json.Unmarshal(f.Payload, &msg))
	return &msg
}

func decodeHistory(t *testing.T, f Frame) historyPayload {
	t.Helper()
	var p historyPayload
	require.NoError(t, json.Unmarshal(f.Payload, &p))
	return p
}

func id(v int64) *int64 { return &v }
