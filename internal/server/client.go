package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/internal/engine"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Session.
// Вход: текстовый JSON (команды). Выход: бинарные кадры (см. pkg/wire).
type Client struct {
	Session *engine.Session
	Conn    *websocket.Conn
	Send    chan []byte
	ConnID  string
}

func NewClient(session *engine.Session, conn *websocket.Conn) *Client {
	return &Client{
		Session: session,
		Conn:    conn,
		Send:    make(chan []byte, 256),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		if c.ConnID != "" {
			// Сообщаем ядру об уходе; обработается на границе тика.
			select {
			case c.Session.LeaveChan <- c.ConnID:
			default:
			}
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE: первым сообщением обязан прийти JOIN с именем.
	var joinCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&joinCmd); err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}
	var join api.JoinPayload
	if len(joinCmd.Payload) > 0 {
		if err := json.Unmarshal(joinCmd.Payload, &join); err != nil {
			logger.Log.Warn("Handshake payload invalid")
			return
		}
	}
	if err := join.Validate(); err != nil {
		logger.Log.WithError(err).Warn("Handshake rejected")
		return
	}
	if join.Name == "" {
		join.Name = "survivr"
	}

	// Токен соединения - серверный, клиент его не выбирает.
	c.ConnID = uuid.NewString()

	// 2. ПОДПИСКА НА КАДРЫ ядра до входа, чтобы не потерять join-буфер.
	frames := c.Session.Hub.Register(c.ConnID)
	go relayFrames(frames, c.Send)

	// 3. ВХОД В МАТЧ (на границе следующего тика).
	c.Session.JoinChan <- engine.JoinRequest{ConnID: c.ConnID, Name: join.Name}

	logger.Log.WithFields(logrus.Fields{
		"conn_id": c.ConnID,
		"name":    join.Name,
	}).Info("Client connected")

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		c.Session.ProcessCommand(c.ConnID, cmd)
	}
}

// relayFrames переливает кадры ядра в исходящий буфер соединения.
// Политика та же, что у Broadcaster: переполненный буфер теряет кадр,
// но перелив не блокируется - иначе после выхода writePump горутина
// зависла бы на send навсегда и пережила бы соединение.
func relayFrames(frames <-chan []byte, send chan<- []byte) {
	for frame := range frames {
		select {
		case send <- frame:
		default:
		}
	}
	close(send)
}

// writePump отправляет бинарные кадры клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				logger.Log.WithError(err).Debug("write frame failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
