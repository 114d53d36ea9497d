package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers/actions"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers/admin"
	"github.com/Viswas-Programs/survivreloaded-server/internal/network"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/arena"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/utils"
)

// sessionCommand - команда игрока вместе с соединением-источником.
// Привязка соединение -> игрок разрешается на границе тика.
type sessionCommand struct {
	ConnID  string
	Action  domain.ActionType
	Payload []byte
}

// JoinRequest - запрос на вход нового игрока.
type JoinRequest struct {
	ConnID string
	Name   string
}

// connState - состояние одного подписанного соединения:
// к какому игроку оно привязано и что этот игрок уже видел.
type connState struct {
	ID       string
	PlayerID domain.ObjectID

	// Visible - набор видимости прошлой отправки. Сравнивается с новым
	// набором, чтобы слать появления/исчезновения только по факту.
	Visible map[domain.ObjectID]struct{}

	// freshJoin: полное состояние ушло в этом тике, обычный Update
	// этого тика пропускается.
	freshJoin bool
}

// Session - один авторитетный матч: мир, физика, соединения и игровой цикл.
// Все мутации мира происходят в горутине Run; транспорт только кладет
// команды в каналы.
type Session struct {
	Cfg     Config
	World   *domain.World
	Physics *systems.Physics
	Hub     *network.Broadcaster

	CommandChan chan sessionCommand
	JoinChan    chan JoinRequest
	LeaveChan   chan string // ConnID

	handlers map[domain.ActionType]handlers.HandlerFunc
	conns    map[string]*connState
	expiry   *ExpiryQueue

	Journal *domain.JournalSession

	// everJoined: матч стартовал, если входил хотя бы второй игрок;
	// до этого условие победы не проверяется.
	everJoined int
	gameOver   bool
	stopChan   chan struct{}
}

// NewSession генерирует арену по сиду и собирает матч.
func NewSession(cfg Config, hub *network.Broadcaster) *Session {
	seed := utils.StringToSeed(cfg.Seed)
	if cfg.Seed == "" {
		seed = time.Now().UnixNano()
	}

	w := domain.NewWorld(seed, cfg.MapSize, domain.DefaultTable())
	ph := systems.NewPhysics(systems.PhysicsConfig{
		MapSize:        cfg.MapSize,
		Matrix:         systems.DefaultCollisionMatrix(),
		LootCorrection: 0.2,
		LootDrag:       0.9,
	})

	// Статическая часть арены: препятствия и предзаложенный лут.
	arena.Generate(w, ph, arena.Params{
		ObstacleCount: cfg.ObstacleCount,
		LootSpawns:    cfg.LootSpawns,
	})

	s := &Session{
		Cfg:         cfg,
		World:       w,
		Physics:     ph,
		Hub:         hub,
		CommandChan: make(chan sessionCommand, 256),
		JoinChan:    make(chan JoinRequest, 16),
		LeaveChan:   make(chan string, 16),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		conns:       make(map[string]*connState),
		expiry:      NewExpiryQueue(),
		Journal: &domain.JournalSession{
			Seed:      seed,
			MapSize:   cfg.MapSize,
			Timestamp: time.Now().Unix(),
		},
		stopChan: make(chan struct{}),
	}
	s.registerHandlers()

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"seed":      seed,
		"map_size":  cfg.MapSize,
		"objects":   len(w.Objects),
	}).Info("Match session created")
	return s
}

func (s *Session) registerHandlers() {
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionFireStart] = handlers.WithPayload(actions.HandleFireStart)
	s.handlers[domain.ActionFireStop] = handlers.WithEmptyPayload(actions.HandleFireStop)
	s.handlers[domain.ActionSwitchSlot] = handlers.WithPayload(actions.HandleSwitchSlot)
	s.handlers[domain.ActionInteract] = handlers.WithPayload(actions.HandleInteract)
	s.handlers[domain.ActionUseItem] = handlers.WithPayload(actions.HandleUseItem)
	s.handlers[domain.ActionDrop] = handlers.WithPayload(actions.HandleDrop)
	s.handlers[domain.ActionEmote] = handlers.WithPayload(actions.HandleEmote)

	if s.Cfg.DebugCheats {
		s.handlers[domain.ActionAdminTeleport] = handlers.WithPayload(admin.HandleTeleport)
		s.handlers[domain.ActionAdminGive] = handlers.WithPayload(admin.HandleGive)
	}
}

// ProcessCommand принимает команду от транспорта (WebSocket).
// Ничего не мутирует: команда буферизуется до границы тика.
func (s *Session) ProcessCommand(connID string, cmd api.ClientCommand) {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		logger.Log.WithFields(logrus.Fields{
			"component": "session",
			"conn_id":   connID,
			"action":    cmd.Action,
		}).Debug("Unknown action dropped")
		return
	}

	select {
	case s.CommandChan <- sessionCommand{ConnID: connID, Action: action, Payload: cmd.Payload}:
	default:
		// Переполненный буфер - защита от клиента-флудера: команда теряется.
		logger.Log.WithField("conn_id", connID).Warn("Command buffer full, dropping")
	}
}

// Stop просит игровой цикл остановиться; флаг проверяется в начале тика.
func (s *Session) Stop() {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
}

// --- ВХОД / ВЫХОД (только из потока симуляции) ---

func (s *Session) addPlayer(req JoinRequest) {
	if len(s.conns) >= s.Cfg.MaxPlayers {
		logger.Log.WithField("conn_id", req.ConnID).Warn("Join rejected: match full")
		s.Hub.Unregister(req.ConnID)
		return
	}

	pos := arena.SpawnPoint(s.World)
	p := domain.NewPlayer(s.World.NextID(), req.Name, pos)
	p.ConnID = req.ConnID
	s.World.Register(p)
	s.Physics.AddBody(p)
	s.World.AliveCount++
	s.World.AliveDirty = true
	s.everJoined++

	s.conns[req.ConnID] = &connState{
		ID:       req.ConnID,
		PlayerID: p.ID(),
		Visible:  make(map[domain.ObjectID]struct{}),
	}

	// Последовательность входа уходит одним буфером:
	// подтверждение, карта, полное состояние, счетчик живых.
	s.sendJoinSequence(s.conns[req.ConnID], p)

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"conn_id":   req.ConnID,
		"player_id": p.ID(),
		"name":      p.Name,
		"alive":     s.World.AliveCount,
	}).Info("Player joined")
}

// removeConn обрабатывает дисконнект. Труп и игрок с пустым инвентарем
// выбывают из мира; игрок с добычей остается (ConnID = "") и может быть
// убит ради лута - это полноценный объект без соединения.
func (s *Session) removeConn(connID string) {
	conn, ok := s.conns[connID]
	if !ok {
		return
	}
	delete(s.conns, connID)
	s.Hub.Unregister(connID)

	p, ok := s.World.Players[conn.PlayerID]
	if !ok {
		return
	}
	p.ConnID = ""
	p.Intent = domain.MoveIntent{}
	p.Vel = domain.Vec2{}
	p.Firing = false
	p.FirePressed = false

	if p.Dead || p.InventoryEmpty() {
		s.Physics.RemoveBody(p.ID())
		s.World.Unregister(p)
		if !p.Dead {
			if !s.World.DecrementAlive() {
				logger.Log.WithField("player_id", p.ID()).Error("alive count underflow on leave")
			}
		}
	} else {
		// Остается в мире: наблюдатели должны увидеть "замершего" игрока.
		s.World.MarkFull(p)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"conn_id":   connID,
		"player_id": p.ID(),
		"persisted": !p.Dead && !p.InventoryEmpty(),
	}).Info("Player disconnected")
}

// --- КОМАНДЫ ---

func (s *Session) executeCommand(cmd sessionCommand) {
	conn, ok := s.conns[cmd.ConnID]
	if !ok {
		return
	}
	p, ok := s.World.Players[conn.PlayerID]
	if !ok || p.Dead {
		return
	}

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	s.Journal.Actions = append(s.Journal.Actions, domain.JournalAction{
		Tick:     s.World.Tick,
		PlayerID: p.ID(),
		Action:   cmd.Action,
		Payload:  cmd.Payload,
	})

	ctx := handlers.Context{
		World:   s.World,
		Physics: s.Physics,
		Actor:   p,
	}
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		// Invalid-intent: команда отбрасывается, мир не тронут.
		logger.Log.WithFields(logrus.Fields{
			"component": "session",
			"player_id": p.ID(),
			"action":    cmd.Action.String(),
			"error":     err,
		}).Debug("Command rejected")
		return
	}
	if result.Msg != "" {
		logger.Log.WithFields(logrus.Fields{
			"component": "session",
			"player_id": p.ID(),
			"action":    cmd.Action.String(),
		}).Debug(result.Msg)
	}
}
