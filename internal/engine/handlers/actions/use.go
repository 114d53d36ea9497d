package actions

import (
	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
)

// HandleUseItem начинает длительное применение расходника.
// Отказ (нет предмета, полное HP, другое действие) - не ошибка.
func HandleUseItem(ctx handlers.Context, p api.UseItemPayload) (handlers.Result, error) {
	if !systems.StartConsumable(ctx.World, ctx.Actor, domain.ItemType(p.Item)) {
		return handlers.Result{Msg: "consumable start rejected"}, nil
	}
	return handlers.EmptyResult(), nil
}
