package agent

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/wire"
)

// Bot - безголовый игрок для нагрузочных прогонов и пустых лобби.
// Это внешний клиент: он подключается к серверу по WebSocket ровно так
// же, как настоящий игрок, и для ядра неотличим от него.
type Bot struct {
	Name string

	conn *websocket.Conn
	rng  *rand.Rand

	// moveDx/moveDy - текущее 8-направленное намерение. Бот меняет
	// направление редко, чтобы траектории были похожи на игрока.
	moveDx int
	moveDy int
	firing bool
}

// Dial подключает бота к серверу и выполняет JOIN-рукопожатие.
func Dial(url, name string, seed int64) (*Bot, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	b := &Bot{
		Name: name,
		conn: conn,
		rng:  rand.New(rand.NewSource(seed)),
	}

	if err := b.send("JOIN", api.JoinPayload{Name: name}); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "agent",
		"bot":       name,
	}).Info("Bot joined the match")
	return b, nil
}

// Run крутит цикл принятия решений до конца матча.
// Блокирует; запускать в отдельной горутине.
func (b *Bot) Run(decisionEvery time.Duration) {
	defer b.conn.Close()

	done := make(chan struct{})
	go b.readPump(done)

	ticker := time.NewTicker(decisionEvery)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := b.decide(); err != nil {
				return
			}
		}
	}
}

// readPump выгребает бинарные кадры сервера. Состояние мира боту не
// нужно, но поток надо читать, иначе сервер начнет терять кадры.
func (b *Bot) readPump(done chan struct{}) {
	defer close(done)
	for {
		_, frame, err := b.conn.ReadMessage()
		if err != nil {
			return
		}
		// GAME_OVER сервер всегда шлет отдельным кадром.
		if len(frame) > 0 && wire.NewReader(frame).ReadUint8() == wire.MsgGameOver {
			logger.Log.WithFields(logrus.Fields{
				"component": "agent",
				"bot":       b.Name,
			}).Info("Match over, bot leaving")
			return
		}
	}
}

// decide - один шаг "мозга": иногда сменить направление,
// иногда пострелять, иногда подобрать то, что лежит рядом.
func (b *Bot) decide() error {
	roll := b.rng.Float64()

	switch {
	case roll < 0.25:
		// Новое направление. Нулевой вектор допустим - бот стоит.
		b.moveDx = b.rng.Intn(3) - 1
		b.moveDy = b.rng.Intn(3) - 1
		return b.sendMove()

	case roll < 0.35:
		return b.toggleFire()

	case roll < 0.45:
		return b.send("INTERACT", api.InteractPayload{})

	case roll < 0.48:
		return b.send("EMOTE", api.EmotePayload{Type: uint8(b.rng.Intn(4))})

	default:
		// Держим прежний курс: повторный MOVE подтверждает намерение.
		return b.sendMove()
	}
}

func (b *Bot) sendMove() error {
	return b.send("MOVE", api.MovePayload{Dx: b.moveDx, Dy: b.moveDy})
}

func (b *Bot) toggleFire() error {
	if b.firing {
		b.firing = false
		return b.send("FIRE_STOP", api.FirePayload{})
	}
	b.firing = true
	dx, dy := float64(b.moveDx), float64(b.moveDy)
	if dx == 0 && dy == 0 {
		dx = 1
	}
	return b.send("FIRE_START", api.FirePayload{DirX: dx, DirY: dy})
}

func (b *Bot) send(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return b.conn.WriteJSON(api.ClientCommand{
		Action:  action,
		Payload: raw,
	})
}

// Spawn подключает count ботов к серверу. Возвращается сразу;
// не сумевшие подключиться боты только логируются.
func Spawn(url string, count int, decisionEvery time.Duration) {
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("bot%02d", i+1)
		bot, err := Dial(url, name, time.Now().UnixNano()+int64(i))
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "agent",
				"bot":       name,
				"error":     err,
			}).Warn("Bot failed to connect")
			continue
		}
		go bot.Run(decisionEvery)
	}
}
