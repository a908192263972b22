package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	xlogger "StockLens/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsSendBuffer = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var errSlowConsumer = errors.New("websocket client is not keeping up")

// streamEvent is one frame sent to a WebSocket client.
type streamEvent struct {
	Type  string            `json:"type"`
	View  *models.ViewModel `json:"view,omitempty"`
	Error string            `json:"error,omitempty"`
}

// streamRequest is what a client may send: a symbol to load.
type streamRequest struct {
	Symbol string `json:"symbol"`
}

// wsClient presents committed views to one connection.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (w *wsClient) Present(_ context.Context, vm *models.ViewModel) error {
	return w.enqueue(streamEvent{Type: "view", View: vm})
}

func (w *wsClient) enqueue(ev streamEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	select {
	case <-w.done:
		return nil
	case w.send <- b:
		return nil
	default:
		return errSlowConsumer
	}
}

func (w *wsClient) close() {
	w.once.Do(func() { close(w.done) })
}

// Stream upgrades to a WebSocket and pushes every view committed to the
// session. The last committed view, if any, is sent first. Clients may send
// {"symbol": "..."} to start a load. Error frames use the locale of the
// upgrade request.
func (h *ViewHandler) Stream(c echo.Context) error {
	id := sessionID(c)
	lang := h.msgs.locale(c)
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, wsSendBuffer),
		done: make(chan struct{}),
	}
	sess := h.sessions.Get(id)
	if last := sess.Last(); last != nil {
		_ = client.Present(c.Request().Context(), last)
	}
	unsubscribe := sess.Subscribe(client)

	log := h.logger.With(xlogger.String("session", id))
	log.Debug("websocket connected")

	go h.writePump(client, log)
	h.readPump(client, id, lang)

	unsubscribe()
	client.close()
	log.Debug("websocket disconnected")
	return nil
}

func (h *ViewHandler) readPump(client *wsClient, id, lang string) {
	conn := client.conn
	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req streamRequest
		if err := json.Unmarshal(data, &req); err != nil || strings.TrimSpace(req.Symbol) == "" {
			_ = client.enqueue(streamEvent{Type: "error", Error: message(lang, msgInvalidSymbol)})
			continue
		}
		if h.limiter != nil && !h.limiter.Allow(id) {
			_ = client.enqueue(streamEvent{Type: "error", Error: message(lang, msgRateLimited)})
			continue
		}
		go func(symbol string) {
			// Success reaches the client through the session subscription.
			_, err := h.orch.LoadSymbol(context.Background(), h.sessions.Get(id), symbol)
			if err != nil && !errors.Is(err, models.ErrSuperseded) {
				key := msgNotFound
				if errors.Is(err, models.ErrValidation) {
					key = msgInvalidSymbol
				}
				_ = client.enqueue(streamEvent{Type: "error", Error: message(lang, key)})
			}
		}(req.Symbol)
	}
}

func (h *ViewHandler) writePump(client *wsClient, log *xlogger.Logger) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case <-client.done:
			_ = client.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteWait))
			return
		case msg := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug("websocket write failed", xlogger.Error(err))
				client.close()
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				client.close()
				return
			}
		}
	}
}
