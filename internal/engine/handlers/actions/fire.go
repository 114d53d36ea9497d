package actions

import (
	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
)

// HandleFireStart: нажатие курка. Направление взгляда обновляется из
// команды; сам выстрел происходит в боевой фазе тика с учетом кулдауна.
func HandleFireStart(ctx handlers.Context, p api.FirePayload) (handlers.Result, error) {
	dir := domain.Vec2{X: p.DirX, Y: p.DirY}
	if dir.X != 0 || dir.Y != 0 {
		ctx.Actor.Dir = dir.Normalize()
	}
	ctx.Actor.FirePressed = true
	ctx.Actor.Firing = true
	return handlers.EmptyResult(), nil
}

// HandleFireStop: курок отпущен.
func HandleFireStop(ctx handlers.Context) (handlers.Result, error) {
	ctx.Actor.Firing = false
	return handlers.EmptyResult(), nil
}

// HandleSwitchSlot меняет активный слот оружия. Пустой слот не выбирается;
// смена оружия прерывает длительное действие.
func HandleSwitchSlot(ctx handlers.Context, p api.SwitchSlotPayload) (handlers.Result, error) {
	if ctx.Actor.Weapons[p.Slot] == "" {
		return handlers.Result{Msg: "switch to empty slot ignored"}, nil
	}
	if p.Slot == ctx.Actor.ActiveSlot {
		return handlers.EmptyResult(), nil
	}
	ctx.Actor.ActiveSlot = p.Slot
	ctx.Actor.Action = domain.PlayerAction{}
	ctx.World.MarkFull(ctx.Actor)
	return handlers.EmptyResult(), nil
}
