package admin

import (
	"fmt"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
)

// Читы для отладочных матчей. Регистрируются только при
// Config.DebugCheats; в боевом матче этих действий нет.

// TeleportPayload: { "x": 120.5, "y": 80.0 }
type TeleportPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func HandleTeleport(ctx handlers.Context, p TeleportPayload) (handlers.Result, error) {
	w := ctx.World

	// Зажимаем в границы арены, чтобы не вылететь за стены.
	pos := domain.Vec2{X: p.X, Y: p.Y}
	if pos.X < domain.PlayerRadius {
		pos.X = domain.PlayerRadius
	}
	if pos.Y < domain.PlayerRadius {
		pos.Y = domain.PlayerRadius
	}
	if pos.X > w.MapSize-domain.PlayerRadius {
		pos.X = w.MapSize - domain.PlayerRadius
	}
	if pos.Y > w.MapSize-domain.PlayerRadius {
		pos.Y = w.MapSize - domain.PlayerRadius
	}

	ctx.Actor.SetPos(pos)
	ctx.Physics.SyncPlayer(ctx.Actor)

	// Телепорт обесценивает набор видимости: форсируем пересчет.
	ctx.Actor.MovedSinceVis = domain.VisMoveThreshold
	w.MarkFull(ctx.Actor)

	return handlers.Result{Msg: fmt.Sprintf("Teleported to (%.1f, %.1f)", pos.X, pos.Y)}, nil
}

// GivePayload: { "item": "ak47", "count": 1 }
type GivePayload struct {
	Item  string `json:"item"`
	Count int    `json:"count,omitempty"`
}

func HandleGive(ctx handlers.Context, p GivePayload) (handlers.Result, error) {
	w := ctx.World
	it := domain.ItemType(p.Item)

	if w.Items.Category(it) == domain.CategoryNone {
		return handlers.Result{Msg: fmt.Sprintf("Unknown item %q", p.Item)}, nil
	}

	count := p.Count
	if count <= 0 {
		count = 1
	}

	// Кладем предмет под ноги: дальше работает обычный подбор,
	// со всеми его правилами слотов и вместимости.
	systems.SpawnLoot(w, ctx.Physics, it, count, ctx.Actor.Pos())

	return handlers.Result{Msg: fmt.Sprintf("Spawned %s x%d", p.Item, count)}, nil
}
