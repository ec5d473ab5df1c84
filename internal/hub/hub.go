package hub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Directory - справочник мероприятий и позывных, которым хаб проверяет входящие данные
type Directory interface {
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	GetCallsign(ctx context.Context, id int64) (*models.Callsign, error)
}

// MessageStore - журнал сообщений, только добавление
type MessageStore interface {
	Append(ctx context.Context, msg *models.Message) error
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Message, error)
}

// Metrics - счетчики хаба; по умолчанию ничего не делает
type Metrics interface {
	ClientConnected()
	ClientDisconnected()
	MessageSent(contentType string)
	ClientDropped()
	HistoryRowSkipped()
}

type noopMetrics struct{}

func (noopMetrics) ClientConnected()    {}
func (noopMetrics) ClientDisconnected() {}
func (noopMetrics) MessageSent(string)  {}
func (noopMetrics) ClientDropped()      {}
func (noopMetrics) HistoryRowSkipped()  {}

type Options struct {
	SendBuffer   int
	WriteTimeout time.Duration
	Metrics      Metrics
}

// Hub - диспетчерская шина сообщений: комнаты мероприятий, личные комнаты позывных,
// воспроизведение истории при входе и трекер последних местоположений.
type Hub struct {
	directory Directory
	store     MessageStore
	logger    *logrus.Logger
	metrics   Metrics
	opts      Options
	now       func() time.Time

	mu    sync.Mutex
	rooms map[int64]*room
}

func New(directory Directory, store MessageStore, logger *logrus.Logger, opts Options) *Hub {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 256
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Hub{
		directory: directory,
		store:     store,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
		now:       time.Now,
		rooms:     make(map[int64]*room),
	}
}

// NewClient регистрирует новое подключение
func (h *Hub) NewClient() *Client {
	h.metrics.ClientConnected()
	return newClient(h.opts.SendBuffer)
}

func (h *Hub) room(eventID int64) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[eventID]
	if !ok {
		r = newRoom(eventID)
		h.rooms[eventID] = r
	}
	return r
}

func (h *Hub) existingRoom(eventID int64) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[eventID]
}

func (h *Hub) activeEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := h.directory.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Active {
		return nil, fmt.Errorf("event %d: %w", eventID, models.ErrEventInactive)
	}
	return event, nil
}

func (h *Hub) eventCallsign(ctx context.Context, eventID, callsignID int64) (*models.Callsign, error) {
	cs, err := h.directory.GetCallsign(ctx, callsignID)
	if err != nil {
		return nil, err
	}
	if cs.EventID != eventID {
		return nil, fmt.Errorf("%w: callsign %d does not belong to event %d", models.ErrValidation, callsignID, eventID)
	}
	return cs, nil
}

// loadHistoryLocked читает журнал и отбрасывает записи с некорректным содержимым
func (h *Hub) loadHistoryLocked(ctx context.Context, r *room) ([]*models.Message, error) {
	rows, err := h.store.ListByEvent(ctx, r.eventID)
	if err != nil {
		return nil, fmt.Errorf("hub: failed to load history: %w", err)
	}

	valid := make([]*models.Message, 0, len(rows))
	for _, msg := range rows {
		content, err := msg.Content.Normalize()
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"service":    "hub",
				"event_id":   r.eventID,
				"message_id": msg.ID,
			}).WithError(err).Warn("Skipping invalid stored message")
			h.metrics.HistoryRowSkipped()
			continue
		}
		msg.Content = content
		valid = append(valid, msg)
		if msg.Timestamp.After(r.last) {
			r.last = msg.Timestamp
		}
	}

	r.tracker.Rebuild(valid)
	r.hydrated = true
	return valid, nil
}

// visibleTo оставляет широковещательные сообщения и адресные, где позывной - отправитель или адресат
func visibleTo(history []*models.Message, callsignID *int64) []*models.Message {
	out := make([]*models.Message, 0, len(history))
	for _, msg := range history {
		if !msg.IsTargeted() {
			out = append(out, msg)
			continue
		}
		if callsignID != nil && (msg.CallsignID == *callsignID || *msg.ToCallsignID == *callsignID) {
			out = append(out, msg)
		}
	}
	return out
}

// Join присоединяет подключение к мероприятию (и, если задан, к личной комнате позывного).
// История отправляется только присоединившемуся и раньше любого последующего сообщения.
func (h *Hub) Join(ctx context.Context, c *Client, eventID int64, callsignID *int64) error {
	log := h.logger.WithFields(logrus.Fields{
		"service":   "hub",
		"method":    "Join",
		"client_id": c.ID,
		"event_id":  eventID,
	})

	if _, err := h.activeEvent(ctx, eventID); err != nil {
		return fmt.Errorf("hub: could not join: %w", err)
	}
	var cs *models.Callsign
	if callsignID != nil {
		var err error
		if cs, err = h.eventCallsign(ctx, eventID, *callsignID); err != nil {
			return fmt.Errorf("hub: could not join: %w", err)
		}
	}

	h.Leave(c)

	r := h.room(eventID)
	r.mu.Lock()
	defer r.mu.Unlock()

	// CloseEvent мог выполниться между проверкой и захватом комнаты
	if _, err := h.activeEvent(ctx, eventID); err != nil {
		return fmt.Errorf("hub: could not join: %w", err)
	}

	history, err := h.loadHistoryLocked(ctx, r)
	if err != nil {
		return err
	}

	visible := visibleTo(history, callsignID)
	frame, err := encodeFrame(FrameMessageHistory, "", historyPayload{EventID: eventID, Messages: visible})
	if err != nil {
		return fmt.Errorf("hub: failed to encode history: %w", err)
	}
	if !c.enqueue(frame) {
		h.metrics.ClientDropped()
		return fmt.Errorf("hub: client %s is disconnected", c.ID)
	}

	r.addLocked(c, callsignID)
	c.setRoom(eventID, callsignID)

	presence := presencePayload{EventID: eventID, CallsignID: callsignID}
	if cs != nil {
		presence.DisplayName = cs.DisplayName()
	}
	if joined, err := encodeFrame(FrameUserJoined, "", presence); err == nil {
		h.evictLocked(r, r.broadcastLocked(joined, c))
	}

	log.WithField("history", len(visible)).Info("Client joined event")
	return nil
}

// Leave убирает подключение из текущей комнаты; журнал и трекер не меняются
func (h *Hub) Leave(c *Client) {
	eventID, callsignID := c.Room()
	if eventID == 0 {
		return
	}
	c.setRoom(0, nil)

	r := h.existingRoom(eventID)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.removeLocked(c) {
		return
	}

	if left, err := encodeFrame(FrameUserLeft, "", presencePayload{EventID: eventID, CallsignID: callsignID}); err == nil {
		h.evictLocked(r, r.broadcastLocked(left, nil))
	}
	h.logger.WithFields(logrus.Fields{
		"service":   "hub",
		"client_id": c.ID,
		"event_id":  eventID,
	}).Info("Client left event")
}

// Unregister вызывается при закрытии подключения
func (h *Hub) Unregister(c *Client) {
	h.Leave(c)
	c.Close()
	h.metrics.ClientDisconnected()
}

// SendMessage проверяет и сохраняет сообщение, затем рассылает его и обновляет трекер.
// После начала записи операция не зависит от отмены ctx вызывающего.
func (h *Hub) SendMessage(ctx context.Context, eventID, senderID int64, to *int64, content models.Content) (*models.Message, error) {
	content, err := content.Normalize()
	if err != nil {
		return nil, fmt.Errorf("hub: could not send message: %w", err)
	}
	if _, err := h.activeEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("hub: could not send message: %w", err)
	}
	if _, err := h.eventCallsign(ctx, eventID, senderID); err != nil {
		return nil, fmt.Errorf("hub: could not send message: sender: %w", err)
	}
	if to != nil {
		if _, err := h.eventCallsign(ctx, eventID, *to); err != nil {
			return nil, fmt.Errorf("hub: could not send message: target: %w", err)
		}
	}

	r := h.room(eventID)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := h.activeEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("hub: could not send message: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.opts.WriteTimeout)
	defer cancel()

	ts := h.now().UTC().Truncate(time.Microsecond)
	if ts.Before(r.last) {
		ts = r.last
	}
	msg := &models.Message{
		EventID:      eventID,
		CallsignID:   senderID,
		ToCallsignID: to,
		Content:      content,
		Timestamp:    ts,
	}
	if err := h.store.Append(writeCtx, msg); err != nil {
		return nil, fmt.Errorf("hub: could not persist message: %w", err)
	}
	r.last = ts

	frame, err := encodeFrame(FrameNewMessage, "", msg)
	if err != nil {
		return nil, fmt.Errorf("hub: failed to encode message: %w", err)
	}
	h.evictLocked(r, r.deliverLocked(r.recipientsLocked(msg), frame))

	if r.hydrated {
		r.tracker.Update(msg)
	}
	h.metrics.MessageSent(string(content.Type))
	return msg, nil
}

// CloseEvent отключает всех участников мероприятия от его комнаты с кадром error
func (h *Hub) CloseEvent(eventID int64, reason string) {
	r := h.existingRoom(eventID)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	frame, err := encodeFrame(FrameError, "", errorPayload{Message: reason, Code: CodeEventInactive})
	if err != nil {
		return
	}
	for c := range r.members {
		r.removeLocked(c)
		c.setRoom(0, nil)
		if !c.enqueue(frame) {
			h.metrics.ClientDropped()
		}
	}
	h.logger.WithFields(logrus.Fields{"service": "hub", "event_id": eventID}).Info("Event room closed")
}

// Latest - последнее местоположение позывного
func (h *Hub) Latest(ctx context.Context, eventID, callsignID int64) (*models.Message, bool, error) {
	cs, err := h.directory.GetCallsign(ctx, callsignID)
	if err != nil {
		return nil, false, fmt.Errorf("hub: could not get location: %w", err)
	}
	if cs.EventID != eventID {
		return nil, false, fmt.Errorf("hub: callsign %d in event %d: %w", callsignID, eventID, models.ErrNotFound)
	}
	r, err := h.hydratedRoom(ctx, eventID)
	if err != nil {
		return nil, false, err
	}
	defer r.mu.Unlock()
	msg, ok := r.tracker.Latest(callsignID)
	return msg, ok, nil
}

// AllLatest - последние местоположения всех позывных мероприятия
func (h *Hub) AllLatest(ctx context.Context, eventID int64) ([]*models.Message, error) {
	if _, err := h.directory.GetEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("hub: could not list locations: %w", err)
	}
	r, err := h.hydratedRoom(ctx, eventID)
	if err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	return r.tracker.All(), nil
}

// hydratedRoom возвращает комнату под блокировкой, при необходимости загрузив трекер из журнала
func (h *Hub) hydratedRoom(ctx context.Context, eventID int64) (*room, error) {
	r := h.room(eventID)
	r.mu.Lock()
	if !r.hydrated {
		if _, err := h.loadHistoryLocked(ctx, r); err != nil {
			r.mu.Unlock()
			return nil, err
		}
	}
	return r, nil
}

// Members - число подключений в комнате мероприятия
func (h *Hub) Members(eventID int64) int {
	r := h.existingRoom(eventID)
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size()
}

// evictLocked сбрасывает комнату у отключенных клиентов и сообщает остальным user_left.
// Рассылка user_left сама может отключить следующих медленных клиентов.
func (h *Hub) evictLocked(r *room, dropped []*Client) {
	for len(dropped) > 0 {
		c := dropped[0]
		dropped = dropped[1:]
		h.metrics.ClientDropped()

		_, callsignID := c.Room()
		c.setRoom(0, nil)
		left, err := encodeFrame(FrameUserLeft, "", presencePayload{EventID: r.eventID, CallsignID: callsignID})
		if err != nil {
			continue
		}
		dropped = append(dropped, r.broadcastLocked(left, nil)...)
		h.logger.WithFields(logrus.Fields{
			"service":   "hub",
			"client_id": c.ID,
			"event_id":  r.eventID,
		}).Warn("Slow client dropped")
	}
}
