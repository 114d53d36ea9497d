package handlers

import (
	"encoding/json"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
)

// Context передает хендлеру состояние матча.
// Хендлеры вызываются строго из потока симуляции на границе тика,
// поэтому мутируют мир без синхронизации.
type Context struct {
	World   *domain.World
	Physics *systems.Physics

	// Actor - игрок, от имени которого пришла команда. Никогда не nil
	// и никогда не труп: фильтрация выполняется до диспетчеризации.
	Actor *domain.Player
}

// Result - результат выполнения команды.
// Хендлер НЕ пишет в логи напрямую, он возвращает данные;
// игровые события уходят через очереди мира (Kills, PickupResults, ...).
type Result struct {
	Msg string // отладочное сообщение, пишется на уровне Debug
}

// HandlerFunc - контракт любой команды (MOVE, FIRE_START, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
