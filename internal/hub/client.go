package hub

import (
	"sync"

	"github.com/google/uuid"
)

// Client - одно подключение. Исходящие кадры идут через ограниченную очередь send;
// переполнение очереди отключает клиента, а не блокирует комнату.
type Client struct {
	ID uuid.UUID

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	mu         sync.Mutex
	eventID    int64
	callsignID *int64
}

func newClient(buffer int) *Client {
	if buffer < 1 {
		buffer = 1
	}
	return &Client{
		ID:   uuid.New(),
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Send - очередь кадров для писателя
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Done закрывается, когда клиент отключен
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// enqueue не блокируется; false означает, что кадр не доставлен и клиент закрыт
func (c *Client) enqueue(frame []byte) bool {
	if c.closed() {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		c.Close()
		return false
	}
}

// Room возвращает мероприятие и позывной, к которым присоединено подключение
func (c *Client) Room() (eventID int64, callsignID *int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventID, c.callsignID
}

func (c *Client) setRoom(eventID int64, callsignID *int64) {
	c.mu.Lock()
	c.eventID = eventID
	c.callsignID = callsignID
	c.mu.Unlock()
}
