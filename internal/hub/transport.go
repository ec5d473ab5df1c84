package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait              = 10 * time.Second
	pongWait               = 60 * time.Second
	pingPeriod             = (pongWait * 9) / 10
	maxFrameBytes          = 16 * 1024
	maxFramesPerSecond     = 20
	maxDecodeErrorsPerConn = 5
)

// Transport обслуживает WebSocket-подключения поверх Hub
type Transport struct {
	hub      *Hub
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

// NewTransport; пустой allowedOrigins разрешает только запросы с того же хоста
func NewTransport(h *Hub, allowedOrigins []string, logger *logrus.Logger) *Transport {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(strings.ToLower(origin), "/")] = struct{}{}
	}
	return &Transport{
		hub:    h,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowed),
		},
	}
}

func originChecker(allowed map[string]struct{}) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed["*"]; ok {
			return true
		}
		if _, ok := allowed[strings.ToLower(origin)]; ok {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

func (t *Transport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := t.hub.NewClient()
	t.logger.WithFields(logrus.Fields{
		"service":   "hub",
		"client_id": c.ID,
		"remote":    r.RemoteAddr,
	}).Debug("WebSocket client connected")

	go t.writePump(conn, c)
	t.readPump(conn, c)
}

// readPump разбирает входящие кадры до ошибки чтения; затем клиент снимается с регистрации,
// а соединение закрывает writePump после отправки оставшихся кадров
func (t *Transport) readPump(conn *websocket.Conn, c *Client) {
	defer t.hub.Unregister(c)

	conn.SetReadLimit(maxFrameBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				t.logger.WithError(err).WithField("client_id", c.ID).Debug("WebSocket read failed")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			decodeErrors++
			t.writeError(c, "", CodeInvalidArgument, "invalid frame payload")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			t.writeError(c, frame.RequestID, CodeResourceExhausted, "rate limit exceeded")
			return
		}

		t.handleFrame(c, frame)
	}
}

func (t *Transport) writePump(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case frame := <-c.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.Done():
			t.flush(conn, c)
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// flush дописывает кадры, уже стоящие в очереди на момент закрытия
func (t *Transport) flush(conn *websocket.Conn, c *Client) {
	for {
		select {
		case frame := <-c.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (t *Transport) handleFrame(c *Client, frame Frame) {
	ctx, cancel := context.WithTimeout(context.Background(), t.hub.opts.WriteTimeout)
	defer cancel()

	switch frame.Type {
	case FrameJoinEvent:
		var payload joinPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.EventID <= 0 {
			t.writeError(c, frame.RequestID, CodeInvalidArgument, "event_id is required")
			return
		}
		if err := t.hub.Join(ctx, c, payload.EventID, payload.CallsignID); err != nil {
			t.writeHubError(c, frame.RequestID, err)
		}

	case FrameLeaveEvent:
		var payload leavePayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			t.writeError(c, frame.RequestID, CodeInvalidArgument, "invalid leave payload")
			return
		}
		if eventID, _ := c.Room(); eventID == payload.EventID {
			t.hub.Leave(c)
		}

	case FrameSendMessage:
		var payload sendPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			t.writeError(c, frame.RequestID, CodeInvalidArgument, "invalid message payload")
			return
		}
		if eventID, _ := c.Room(); eventID == 0 || eventID != payload.EventID {
			t.writeError(c, frame.RequestID, CodeNotJoined, "join the event before sending")
			return
		}
		if _, err := t.hub.SendMessage(ctx, payload.EventID, payload.CallsignID, payload.ToCallsignID, payload.Content); err != nil {
			t.writeHubError(c, frame.RequestID, err)
		}

	default:
		t.writeError(c, frame.RequestID, CodeInvalidArgument, "unsupported frame type")
	}
}

func (t *Transport) writeHubError(c *Client, requestID string, err error) {
	code := errorCode(err)
	message := err.Error()
	if code == CodeInternal {
		t.logger.WithError(err).WithField("client_id", c.ID).Error("Hub operation failed")
		message = "internal error"
	}
	t.writeError(c, requestID, code, message)
}

func (t *Transport) writeError(c *Client, requestID, code, message string) {
	frame, err := encodeFrame(FrameError, requestID, errorPayload{Message: message, Code: code})
	if err != nil {
		return
	}
	if !c.enqueue(frame) {
		t.hub.metrics.ClientDropped()
	}
}
