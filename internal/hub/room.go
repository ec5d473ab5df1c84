package hub

import (
	"sync"
	"time"

	"github.com/shenikar/event_dispatch/internal/models"
)

// room - состояние одного мероприятия. mu сериализует запись в журнал,
// рассылку и обновление трекера, поэтому порядок доставки совпадает с порядком записи.
type room struct {
	eventID int64

	mu       sync.Mutex
	members  map[*Client]struct{}
	private  map[int64]map[*Client]struct{}
	tracker  *Tracker
	hydrated bool
	last     time.Time
}

func newRoom(eventID int64) *room {
	return &room{
		eventID: eventID,
		members: make(map[*Client]struct{}),
		private: make(map[int64]map[*Client]struct{}),
		tracker: NewTracker(),
	}
}

func (r *room) addLocked(c *Client, callsignID *int64) {
	r.members[c] = struct{}{}
	if callsignID != nil {
		set, ok := r.private[*callsignID]
		if !ok {
			set = make(map[*Client]struct{})
			r.private[*callsignID] = set
		}
		set[c] = struct{}{}
	}
}

func (r *room) removeLocked(c *Client) bool {
	if _, ok := r.members[c]; !ok {
		return false
	}
	delete(r.members, c)
	for id, set := range r.private {
		delete(set, c)
		if len(set) == 0 {
			delete(r.private, id)
		}
	}
	return true
}

// recipientsLocked - адресаты сообщения: для адресного - личные комнаты отправителя
// и получателя без повторов, иначе все участники мероприятия.
func (r *room) recipientsLocked(msg *models.Message) []*Client {
	if !msg.IsTargeted() {
		out := make([]*Client, 0, len(r.members))
		for c := range r.members {
			out = append(out, c)
		}
		return out
	}

	seen := make(map[*Client]struct{})
	out := make([]*Client, 0)
	for _, id := range []int64{msg.CallsignID, *msg.ToCallsignID} {
		for c := range r.private[id] {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// deliverLocked возвращает клиентов, отключенных из-за переполненной очереди
func (r *room) deliverLocked(recipients []*Client, frame []byte) []*Client {
	var dropped []*Client
	for _, c := range recipients {
		if !c.enqueue(frame) {
			r.removeLocked(c)
			dropped = append(dropped, c)
		}
	}
	return dropped
}

func (r *room) broadcastLocked(frame []byte, except *Client) []*Client {
	recipients := make([]*Client, 0, len(r.members))
	for c := range r.members {
		if c != except {
			recipients = append(recipients, c)
		}
	}
	return r.deliverLocked(recipients, frame)
}

func (r *room) size() int {
	return len(r.members)
}
